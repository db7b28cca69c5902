package dog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pawmart/pawmart-backend/internal/auth"
)

type Handler struct {
	service   *Service
	uploadDir string
}

type createDogRequest struct {
	Name          string   `json:"dogName"`
	Breed         string   `json:"breed"`
	Age           *int     `json:"age"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stockQuantity"`
	Category      string   `json:"category"`
	CoverImage    string   `json:"coverImage"`
}

// updateDogRequest carries pointer fields so a partial payload only touches
// what the client sent.
type updateDogRequest struct {
	Name          *string  `json:"dogName,omitempty"`
	Breed         *string  `json:"breed,omitempty"`
	Age           *int     `json:"age,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	StockQuantity *int     `json:"stockQuantity,omitempty"`
	Category      *string  `json:"category,omitempty"`
	CoverImage    *string  `json:"coverImage,omitempty"`
}

func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{service: service, uploadDir: uploadDir}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/dogs", h.getDogs)
	app.Get("/dogs/:id", h.getDog)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, authMW *auth.Middleware) {
	app.Post("/dogs", authMW.Required(), authMW.AdminOnly(), h.addDog)
	app.Put("/dogs/:id", authMW.Required(), authMW.AdminOnly(), h.updateDog)
	app.Delete("/dogs/:id", authMW.Required(), authMW.AdminOnly(), h.deleteDog)
	app.Post("/dogs/:id/image", authMW.Required(), authMW.AdminOnly(), h.uploadCoverImage)
}

func (h *Handler) getDogs(c *fiber.Ctx) error {
	dogs, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(dogs)
}

func (h *Handler) getDog(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	d, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any dog with ID %d", id)})
	}

	return c.JSON(d)
}

func (h *Handler) addDog(c *fiber.Ctx) error {
	payload := new(createDogRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Name == "" || payload.Breed == "" || payload.CoverImage == "" ||
		payload.Age == nil || payload.Price == nil || payload.StockQuantity == nil || payload.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing required fields"})
	}
	if *payload.Age < 0 || *payload.Price < 0 || *payload.StockQuantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "age, price and stockQuantity must not be negative"})
	}

	category, err := ParseCategory(payload.Category)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": fmt.Sprintf("invalid category %q", payload.Category)})
	}

	created, err := h.service.Create(Dog{
		Name:          payload.Name,
		Breed:         payload.Breed,
		Age:           *payload.Age,
		Price:         *payload.Price,
		StockQuantity: *payload.StockQuantity,
		Category:      category,
		CoverImage:    payload.CoverImage,
	})
	if err != nil {
		if err == ErrNameExists {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": fmt.Sprintf("A pet with the name %q already exists", payload.Name)})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Dog Added Successfully",
		"dog":     created,
	})
}

func (h *Handler) updateDog(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any dog with ID %d", id)})
	}

	payload := new(updateDogRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.Name != nil {
		existing.Name = *payload.Name
	}
	if payload.Breed != nil {
		existing.Breed = *payload.Breed
	}
	if payload.Age != nil {
		if *payload.Age < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "age must not be negative"})
		}
		existing.Age = *payload.Age
	}
	if payload.Price != nil {
		if *payload.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "price must not be negative"})
		}
		existing.Price = *payload.Price
	}
	if payload.StockQuantity != nil {
		if *payload.StockQuantity < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "stockQuantity must not be negative"})
		}
		existing.StockQuantity = *payload.StockQuantity
	}
	if payload.Category != nil {
		category, err := ParseCategory(*payload.Category)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": fmt.Sprintf("invalid category %q", *payload.Category)})
		}
		existing.Category = category
	}
	if payload.CoverImage != nil {
		existing.CoverImage = *payload.CoverImage
	}

	updated, err := h.service.Update(id, existing)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any dog with ID %d", id)})
	}

	return c.JSON(fiber.Map{
		"message": "Dog Updated Successfully",
		"dog":     updated,
	})
}

func (h *Handler) deleteDog(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any dog with ID %d", id)})
	}

	return c.JSON(fiber.Map{"message": "Dog Deleted Successfully"})
}

// uploadCoverImage stores the uploaded file under the upload dir with a
// uuid name and points the listing's coverImage at it.
func (h *Handler) uploadCoverImage(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	existing, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Cannot find any dog with ID %d", id)})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := os.MkdirAll(filepath.Join(h.uploadDir, "dogs"), 0755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if err := c.SaveFile(file, filepath.Join(h.uploadDir, "dogs", name)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	existing.CoverImage = "/uploads/dogs/" + name
	updated, err := h.service.Update(id, existing)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Image Uploaded Successfully",
		"dog":     updated,
	})
}
