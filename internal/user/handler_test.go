package user

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/pawmart/pawmart-backend/internal/auth"
)

const testSecret = "test-secret"

func newTestApp(seed []User) (*fiber.App, *Service, *auth.Middleware) {
	authMW := auth.NewMiddleware(testSecret)
	service := NewService(NewInMemoryRepository(seed))
	handler := NewHandler(service, authMW)

	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterProtectedRoutes(app, authMW)
	return app, service, authMW
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}

	raw, _ := io.ReadAll(res.Body)
	decoded := map[string]any{}
	json.Unmarshal(raw, &decoded)
	return res.StatusCode, decoded
}

func TestRegister(t *testing.T) {
	app, _, _ := newTestApp(nil)

	payload := map[string]string{
		"username":     "jane",
		"email":        "jane@example.com",
		"mobileNumber": "0812345678",
		"password":     "hunter22",
	}

	status, body := doJSON(t, app, "POST", "/users/register", payload, "")
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", status, body)
	}

	// same email again must be rejected
	status, _ = doJSON(t, app, "POST", "/users/register", payload, "")
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", status)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	app, _, _ := newTestApp(nil)

	status, _ := doJSON(t, app, "POST", "/users/register", map[string]string{"email": "x@y.com"}, "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	status, _ = doJSON(t, app, "POST", "/users/register", map[string]string{
		"username": "x", "email": "not-an-email", "mobileNumber": "1", "password": "p",
	}, "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d", status)
	}
}

func TestRegister_ForcesUserRole(t *testing.T) {
	app, service, _ := newTestApp(nil)

	status, _ := doJSON(t, app, "POST", "/users/register", map[string]string{
		"username":     "mallory",
		"email":        "mallory@example.com",
		"mobileNumber": "1",
		"password":     "pw",
		"userRole":     "Admin",
	}, "")
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	created, err := service.repo.GetByEmail("mallory@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if created.Role != auth.RoleUser {
		t.Fatalf("registration must not grant %q", created.Role)
	}
}

func TestLogin(t *testing.T) {
	app, service, _ := newTestApp(nil)

	if _, err := service.Register(User{
		ID:       5,
		Username: "jane",
		Email:    "jane@example.com",
		Password: "hunter22",
		Role:     auth.RoleAdmin,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	status, body := doJSON(t, app, "POST", "/users/login", map[string]string{
		"email":    "jane@example.com",
		"password": "hunter22",
	}, "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}

	signed, ok := body["token"].(string)
	if !ok || signed == "" {
		t.Fatalf("expected a token in the response, got %v", body)
	}

	// token must decode back to the same user id and role
	tok, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if int(claims["user_id"].(float64)) != 5 {
		t.Fatalf("token user_id = %v, want 5", claims["user_id"])
	}
	if claims["role"] != "Admin" {
		t.Fatalf("token role = %v, want Admin", claims["role"])
	}

	if userBody, ok := body["user"].(map[string]any); ok {
		if pw, present := userBody["password"]; present && pw != "" {
			t.Fatalf("login response leaked a password: %v", pw)
		}
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	app, service, _ := newTestApp(nil)

	if _, err := service.Register(User{Email: "jane@example.com", Password: "hunter22"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	status, body := doJSON(t, app, "POST", "/users/login", map[string]string{
		"email":    "jane@example.com",
		"password": "wrong",
	}, "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for bad credentials, got %d", status)
	}
	if body["message"] != "User not found" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestResetPasswordEndpoint(t *testing.T) {
	app, service, _ := newTestApp(nil)

	if _, err := service.Register(User{Email: "jane@example.com", Password: "oldpass"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	status, body := doJSON(t, app, "PUT", "/users/reset-password", map[string]string{
		"email":    "jane@example.com",
		"password": "newpass",
	}, "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["message"] != "Password updated successfully" {
		t.Fatalf("unexpected message %v", body["message"])
	}

	status, _ = doJSON(t, app, "PUT", "/users/reset-password", map[string]string{
		"email":    "nobody@example.com",
		"password": "x",
	}, "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown email, got %d", status)
	}
}

func TestGetUsers_AdminOnly(t *testing.T) {
	app, _, authMW := newTestApp([]User{{ID: 1, Email: "a@b.com", Role: auth.RoleUser}})

	status, _ := doJSON(t, app, "GET", "/users", nil, "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	userToken, _ := authMW.IssueToken(1, auth.RoleUser)
	status, _ = doJSON(t, app, "GET", "/users", nil, userToken)
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", status)
	}

	adminToken, _ := authMW.IssueToken(2, auth.RoleAdmin)
	status, _ = doJSON(t, app, "GET", "/users", nil, adminToken)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", status)
	}
}
