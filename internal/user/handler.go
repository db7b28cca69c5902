package user

import (
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pawmart/pawmart-backend/internal/auth"
)

type Handler struct {
	service *Service
	tokens  *auth.Middleware
}

type registerRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Password     string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func NewHandler(service *Service, tokens *auth.Middleware) *Handler {
	return &Handler{service: service, tokens: tokens}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/users/register", h.register)
	app.Post("/users/login", h.login)
	app.Put("/users/reset-password", h.resetPassword)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, authMW *auth.Middleware) {
	app.Get("/users", authMW.Required(), authMW.AdminOnly(), h.getUsers)
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Username == "" || payload.Email == "" || payload.MobileNumber == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing required fields"})
	}
	if !emailPattern.MatchString(payload.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid email address"})
	}

	// registration never grants admin; admins are seeded out of band
	created, err := h.service.Register(User{
		Username:     payload.Username,
		Email:        payload.Email,
		MobileNumber: payload.MobileNumber,
		Password:     payload.Password,
		Role:         auth.RoleUser,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		if err == ErrEmailExists {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Success",
		"user":    sanitizeUser(created),
	})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	u, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		// the client contract answers not-found for bad credentials
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	signed, err := h.tokens.IssueToken(u.ID, u.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"message": "Success",
		"user":    sanitizeUser(u),
		"token":   signed,
	})
}

func (h *Handler) resetPassword(c *fiber.Ctx) error {
	payload := new(resetPasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing required fields"})
	}

	if err := h.service.ResetPassword(payload.Email, payload.Password); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	response := make([]User, 0, len(users))
	for _, u := range users {
		response = append(response, sanitizeUser(u))
	}
	return c.JSON(response)
}

func sanitizeUser(u User) User {
	u.Password = ""
	return u
}
