package dog

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/pawmart/pawmart-backend/internal/auth"
)

func newTestApp(t *testing.T, seed []Dog) (*fiber.App, string, string) {
	t.Helper()

	authMW := auth.NewMiddleware("test-secret")
	handler := NewHandler(NewService(NewInMemoryRepository(seed)), t.TempDir())

	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterProtectedRoutes(app, authMW)

	adminToken, err := authMW.IssueToken(1, auth.RoleAdmin)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	userToken, err := authMW.IssueToken(2, auth.RoleUser)
	if err != nil {
		t.Fatalf("issue user token: %v", err)
	}

	return app, adminToken, userToken
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, []byte) {
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
	return res.StatusCode, raw
}

func validDogPayload(name string) map[string]any {
	return map[string]any{
		"dogName":       name,
		"breed":         "Labrador",
		"age":           2,
		"price":         100.0,
		"stockQuantity": 5,
		"category":      "Puppy",
		"coverImage":    "/uploads/dogs/rex.jpg",
	}
}

func TestAddDog_AndGetByID(t *testing.T) {
	app, adminToken, _ := newTestApp(t, nil)

	status, raw := doJSON(t, app, "POST", "/dogs", validDogPayload("Rex"), adminToken)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", status, raw)
	}

	var created struct {
		Dog Dog `json:"dog"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Dog.ID == 0 || created.Dog.Name != "Rex" {
		t.Fatalf("unexpected created dog %+v", created.Dog)
	}

	status, raw = doJSON(t, app, "GET", "/dogs/1", nil, "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var fetched Dog
	if err := json.Unmarshal(raw, &fetched); err != nil {
		t.Fatalf("decode dog: %v", err)
	}
	if fetched.Name != "Rex" || fetched.Category != CategoryPuppy {
		t.Fatalf("unexpected dog %+v", fetched)
	}
}

func TestAddDog_DuplicateName(t *testing.T) {
	app, adminToken, _ := newTestApp(t, []Dog{{ID: 1, Name: "Rex", Breed: "Lab", Price: 100, StockQuantity: 5, Category: CategoryPuppy, CoverImage: "x"}})

	status, raw := doJSON(t, app, "POST", "/dogs", validDogPayload("Rex"), adminToken)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate name, got %d (%s)", status, raw)
	}
}

func TestAddDog_Validation(t *testing.T) {
	app, adminToken, _ := newTestApp(t, nil)

	payload := validDogPayload("Rex")
	delete(payload, "breed")
	status, _ := doJSON(t, app, "POST", "/dogs", payload, adminToken)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing breed, got %d", status)
	}

	payload = validDogPayload("Rex")
	payload["category"] = "Gigantic"
	status, _ = doJSON(t, app, "POST", "/dogs", payload, adminToken)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", status)
	}

	payload = validDogPayload("Rex")
	payload["price"] = -1
	status, _ = doJSON(t, app, "POST", "/dogs", payload, adminToken)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", status)
	}
}

func TestDogAdminRoutes_RejectNonAdmin(t *testing.T) {
	app, _, userToken := newTestApp(t, []Dog{{ID: 1, Name: "Rex"}})

	status, _ := doJSON(t, app, "DELETE", "/dogs/1", nil, userToken)
	if status != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin delete, got %d", status)
	}

	status, _ = doJSON(t, app, "POST", "/dogs", validDogPayload("Buddy"), "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}

func TestUpdateDog_Partial(t *testing.T) {
	app, adminToken, _ := newTestApp(t, []Dog{{ID: 1, Name: "Rex", Breed: "Lab", Age: 2, Price: 100, StockQuantity: 5, Category: CategoryPuppy, CoverImage: "x"}})

	status, raw := doJSON(t, app, "PUT", "/dogs/1", map[string]any{"price": 120.0}, adminToken)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, raw)
	}

	var updated struct {
		Dog Dog `json:"dog"`
	}
	if err := json.Unmarshal(raw, &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Dog.Price != 120 {
		t.Fatalf("price not updated: %+v", updated.Dog)
	}
	if updated.Dog.Name != "Rex" || updated.Dog.StockQuantity != 5 {
		t.Fatalf("partial update clobbered other fields: %+v", updated.Dog)
	}
}

func TestDeleteDog_NotFound(t *testing.T) {
	app, adminToken, _ := newTestApp(t, nil)

	status, _ := doJSON(t, app, "DELETE", "/dogs/99", nil, adminToken)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}
