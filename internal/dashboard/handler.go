package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawmart/pawmart-backend/internal/auth"
	"github.com/pawmart/pawmart-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, authMW *auth.Middleware) {
	app.Get("/dashboard/stats", authMW.Required(), authMW.AdminOnly(), h.getStats)
	app.Get("/dashboard/users", authMW.Required(), authMW.AdminOnly(), h.getUsers)
}

func (h *Handler) getStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(stats)
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	customers, err := h.service.Customers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	response := make([]user.User, 0, len(customers))
	for _, u := range customers {
		u.Password = ""
		response = append(response, u)
	}
	return c.JSON(response)
}
