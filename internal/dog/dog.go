package dog

import (
	"errors"
	"strings"
)

// Dog represents a pet listing in the store inventory.
type Dog struct {
	ID            int      `json:"dogId"`
	Name          string   `json:"dogName"`
	Breed         string   `json:"breed"`
	Age           int      `json:"age"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stockQuantity"`
	Category      Category `json:"category"`
	CoverImage    string   `json:"coverImage"`
}

// Category is the closed set of listing categories.
type Category string

const (
	CategoryPuppy  Category = "Puppy"
	CategoryAdult  Category = "Adult"
	CategorySenior Category = "Senior"
	CategorySmall  Category = "Small"
	CategoryMedium Category = "Medium"
	CategoryLarge  Category = "Large"
)

// AllowedCategories contains the supported listing categories used across the app.
var AllowedCategories = []Category{
	CategoryPuppy,
	CategoryAdult,
	CategorySenior,
	CategorySmall,
	CategoryMedium,
	CategoryLarge,
}

var ErrUnknownCategory = errors.New("unknown category")

func ParseCategory(s string) (Category, error) {
	for _, c := range AllowedCategories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}
