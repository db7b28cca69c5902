package order

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pawmart/pawmart-backend/internal/auth"
)

type Handler struct {
	service *Service
}

type placeOrderRequest struct {
	OrderItems      []Line `json:"orderItems"`
	ShippingAddress string `json:"shippingAddress"`
	BillingAddress  string `json:"billingAddress"`
}

type updateOrderRequest struct {
	Status          *string `json:"orderStatus,omitempty"`
	ShippingAddress *string `json:"shippingAddress,omitempty"`
	BillingAddress  *string `json:"billingAddress,omitempty"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, authMW *auth.Middleware) {
	app.Post("/orders", authMW.Required(), h.addOrder)
	app.Get("/orders", authMW.Required(), authMW.AdminOnly(), h.getOrders)
	app.Get("/orders/user/:userId", authMW.Required(), h.getOrdersByUser)
	app.Get("/orders/:id", authMW.Required(), h.getOrder)
	app.Put("/orders/:id", authMW.Required(), authMW.AdminOnly(), h.updateOrder)
	app.Delete("/orders/:id", authMW.Required(), authMW.AdminOnly(), h.deleteOrder)
}

func (h *Handler) addOrder(c *fiber.Ctx) error {
	// the owner comes from the token, never from the body
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}

	payload := new(placeOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.ShippingAddress == "" || payload.BillingAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "shippingAddress and billingAddress are required"})
	}

	ord, err := h.service.Place(userID, payload.OrderItems, payload.ShippingAddress, payload.BillingAddress)
	if err != nil {
		var notFound *DogNotFoundError
		var noStock *InsufficientStockError
		switch {
		case errors.Is(err, ErrEmptyOrder):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Order must contain at least one item"})
		case errors.Is(err, ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Quantity must be at least 1"})
		case errors.As(err, &notFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": notFound.Error()})
		case errors.As(err, &noStock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": noStock.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order Added Successfully",
		"order":   ord,
	})
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	ord, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any order with ID %d", id)})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(ord)
}

func (h *Handler) getOrdersByUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	// no orders is a valid answer, not an error
	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(orders)
}

func (h *Handler) updateOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any order with ID %d", id)})
	}

	payload := new(updateOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Status != nil {
		existing.Status = *payload.Status
	}
	if payload.ShippingAddress != nil {
		existing.ShippingAddress = *payload.ShippingAddress
	}
	if payload.BillingAddress != nil {
		existing.BillingAddress = *payload.BillingAddress
	}

	updated, err := h.service.Update(id, existing)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any order with ID %d", id)})
	}

	return c.JSON(fiber.Map{
		"message": "Order Updated Successfully",
		"order":   updated,
	})
}

func (h *Handler) deleteOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any order with ID %d", id)})
	}

	return c.JSON(fiber.Map{"message": "Order Deleted Successfully"})
}
