package user

import (
	"database/sql"

	"github.com/pawmart/pawmart-backend/internal/auth"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listUsersQuery = `
		SELECT user_id, username, email, mobile_number, password, user_role, created_at
		FROM users
		ORDER BY user_id
	`
	getUserByIDQuery = `
		SELECT user_id, username, email, mobile_number, password, user_role, created_at
		FROM users
		WHERE user_id = $1
	`
	getUserByEmailQuery = `
		SELECT user_id, username, email, mobile_number, password, user_role, created_at
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (username, email, mobile_number, password, user_role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id
	`
	updatePasswordQuery = `UPDATE users SET password = $1 WHERE email = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByEmailQuery, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		u.Username,
		u.Email,
		u.MobileNumber,
		u.Password,
		u.Role.String(),
		u.CreatedAt,
	).Scan(&id)
	if err != nil {
		return User{}, err
	}

	u.ID = id
	return u, nil
}

func (r *PostgresRepository) UpdatePassword(email, hashed string) error {
	result, err := r.db.Exec(updatePasswordQuery, hashed, email)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanUser(scanner rowScanner) (User, error) {
	u := User{}
	var role string
	var createdAt sql.NullString

	if err := scanner.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.MobileNumber,
		&u.Password,
		&role,
		&createdAt,
	); err != nil {
		return User{}, err
	}

	// rows written before the role enum was enforced may carry odd casing
	parsed, err := auth.ParseRole(role)
	if err != nil {
		parsed = auth.RoleUser
	}
	u.Role = parsed

	if createdAt.Valid {
		u.CreatedAt = createdAt.String
	}

	return u, nil
}
