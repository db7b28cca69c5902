package review

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

type createReviewRequest struct {
	Text   string `json:"reviewText"`
	Rating *int   `json:"rating"`
	DogID  int    `json:"dog"`
}

type updateReviewRequest struct {
	Text   *string `json:"reviewText,omitempty"`
	Rating *int    `json:"rating,omitempty"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes must run before RegisterProtectedRoutes so the
// literal /reviews/dog prefix wins over the :id parameter.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/reviews/dog/:dogId", h.getReviewsByDog)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, authMW *auth.Middleware) {
	app.Get("/reviews", authMW.Required(), authMW.AdminOnly(), h.getReviews)
	app.Get("/reviews/user/:userId", authMW.Required(), h.getReviewsByUser)
	app.Get("/reviews/:id", h.getReview)
	app.Post("/reviews", authMW.Required(), h.addReview)
	app.Put("/reviews/:id", authMW.Required(), h.updateReview)
	app.Delete("/reviews/:id", authMW.Required(), h.deleteReview)
}

func (h *Handler) getReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(reviews)
}

func (h *Handler) getReview(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	rev, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any review with ID %d", id)})
	}

	return c.JSON(rev)
}

func (h *Handler) getReviewsByUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	reviews, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(reviews)
}

func (h *Handler) getReviewsByDog(c *fiber.Ctx) error {
	dogID, err := strconv.Atoi(c.Params("dogId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid dog id"})
	}

	reviews, err := h.service.ListByDog(dogID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(reviews)
}

func (h *Handler) addReview(c *fiber.Ctx) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}

	payload := new(createReviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Text == "" || payload.Rating == nil || payload.DogID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing required fields"})
	}

	created, err := h.service.Create(Review{
		Text:   payload.Text,
		Rating: *payload.Rating,
		UserID: userID,
		DogID:  payload.DogID,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRating) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		var notFound *DogNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": notFound.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review Added Successfully",
		"review":  created,
	})
}

func (h *Handler) updateReview(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any review with ID %d", id)})
	}

	if err := h.requireOwnerOrAdmin(c, existing); err != nil {
		return h.accessDenied(c, err)
	}

	payload := new(updateReviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Text != nil {
		existing.Text = *payload.Text
	}
	if payload.Rating != nil {
		existing.Rating = *payload.Rating
	}

	updated, err := h.service.Update(id, existing)
	if err != nil {
		if errors.Is(err, ErrInvalidRating) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any review with ID %d", id)})
	}

	return c.JSON(fiber.Map{
		"message": "Review Updated Successfully",
		"review":  updated,
	})
}

func (h *Handler) deleteReview(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any review with ID %d", id)})
	}

	if err := h.requireOwnerOrAdmin(c, existing); err != nil {
		return h.accessDenied(c, err)
	}

	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any review with ID %d", id)})
	}

	return c.JSON(fiber.Map{"message": "Review Deleted Successfully"})
}

// requireOwnerOrAdmin reports whether the caller may touch the review. Only
// the author or an admin passes.
func (h *Handler) requireOwnerOrAdmin(c *fiber.Ctx, rev Review) error {
	userID, err := auth.UserIDFromCtx(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	if userID == rev.UserID {
		return nil
	}
	if role, err := auth.RoleFromCtx(c); err == nil && role == auth.RoleAdmin {
		return nil
	}
	return fiber.ErrForbidden
}

func (h *Handler) accessDenied(c *fiber.Ctx, err error) error {
	if err == fiber.ErrUnauthorized {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You may only modify your own reviews"})
}
