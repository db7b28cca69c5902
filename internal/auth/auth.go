package auth

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL is the fixed lifetime of an issued token. There is no refresh or
// revocation mechanism; logout is a client-side token discard.
const TokenTTL = 24 * time.Hour

// Middleware gates routes on a valid bearer token and, optionally, the
// admin role carried in its claims.
type Middleware struct {
	secret   []byte
	required fiber.Handler
}

func NewMiddleware(secret string) *Middleware {
	return &Middleware{
		secret: []byte(secret),
		required: jwtware.New(jwtware.Config{
			SigningKey: []byte(secret),
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid or expired token"})
			},
		}),
	}
}

// IssueToken signs an HS256 token embedding the user id and role.
func (m *Middleware) IssueToken(userID int, role Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role.String(),
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Required rejects requests without a valid token.
func (m *Middleware) Required() fiber.Handler {
	return m.required
}

// AdminOnly must run after Required. It rejects callers whose role claim
// does not parse to Admin.
func (m *Middleware) AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := RoleFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
		}
		if role != RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. Admin only."})
		}
		return c.Next()
	}
}

// UserIDFromCtx extracts the user_id claim from the JWT token stored in
// c.Locals("user") by the jwt middleware. Several handlers need this, so it
// is exported here for reuse.
func UserIDFromCtx(c *fiber.Ctx) (int, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return 0, err
	}

	raw, ok := claims["user_id"]
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	default:
		return 0, fiber.ErrUnauthorized
	}
}

// RoleFromCtx extracts and parses the role claim.
func RoleFromCtx(c *fiber.Ctx) (Role, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return "", err
	}

	raw, ok := claims["role"].(string)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	role, err := ParseRole(raw)
	if err != nil {
		return "", fiber.ErrUnauthorized
	}
	return role, nil
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, error) {
	u := c.Locals("user")
	if u == nil {
		return nil, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}
