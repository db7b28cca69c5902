package dashboard

import (
	"database/sql"

	"github.com/pawmart/pawmart-backend/internal/auth"
	"github.com/pawmart/pawmart-backend/internal/user"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	countCustomersQuery = `SELECT COUNT(*) FROM users WHERE user_role = $1`
	countDogsQuery      = `SELECT COUNT(*) FROM dogs`
	countOrdersQuery    = `SELECT COUNT(*) FROM orders`
	countReviewsQuery   = `SELECT COUNT(*) FROM reviews`

	listCustomersQuery = `
		SELECT user_id, username, email, mobile_number, user_role, created_at
		FROM users
		WHERE user_role = $1
		ORDER BY user_id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Stats() (Stats, error) {
	var stats Stats

	if err := r.db.QueryRow(countCustomersQuery, auth.RoleUser.String()).Scan(&stats.TotalUsers); err != nil {
		return Stats{}, err
	}
	if err := r.db.QueryRow(countDogsQuery).Scan(&stats.TotalPets); err != nil {
		return Stats{}, err
	}
	if err := r.db.QueryRow(countOrdersQuery).Scan(&stats.TotalOrders); err != nil {
		return Stats{}, err
	}
	if err := r.db.QueryRow(countReviewsQuery).Scan(&stats.TotalReviews); err != nil {
		return Stats{}, err
	}

	return stats, nil
}

func (r *PostgresRepository) Customers() ([]user.User, error) {
	rows, err := r.db.Query(listCustomersQuery, auth.RoleUser.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		var role string
		var createdAt sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.MobileNumber, &role, &createdAt); err != nil {
			return nil, err
		}
		if parsed, err := auth.ParseRole(role); err == nil {
			u.Role = parsed
		}
		if createdAt.Valid {
			u.CreatedAt = createdAt.String
		}
		customers = append(customers, u)
	}

	return customers, rows.Err()
}
