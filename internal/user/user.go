package user

import "github.com/pawmart/pawmart-backend/internal/auth"

// User is an account in the shop. Password always holds the bcrypt hash,
// never the raw password.
type User struct {
	ID           int       `json:"userId"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	Password     string    `json:"password,omitempty"`
	Role         auth.Role `json:"userRole"`
	CreatedAt    string    `json:"createdAt,omitempty"`
}
