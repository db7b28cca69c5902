package review

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listReviewsQuery = `
		SELECT review_id, review_text, rating, review_date, user_id, dog_id
		FROM reviews
		ORDER BY review_id
	`
	getReviewByIDQuery = `
		SELECT review_id, review_text, rating, review_date, user_id, dog_id
		FROM reviews
		WHERE review_id = $1
	`
	listReviewsByUserQuery = `
		SELECT review_id, review_text, rating, review_date, user_id, dog_id
		FROM reviews
		WHERE user_id = $1
		ORDER BY review_id
	`
	listReviewsByDogQuery = `
		SELECT review_id, review_text, rating, review_date, user_id, dog_id
		FROM reviews
		WHERE dog_id = $1
		ORDER BY review_id
	`
	insertReviewQuery = `
		INSERT INTO reviews (review_text, rating, review_date, user_id, dog_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING review_id
	`
	updateReviewQuery = `
		UPDATE reviews
		SET review_text = $1,
			rating = $2
		WHERE review_id = $3
	`
	deleteReviewQuery = `DELETE FROM reviews WHERE review_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListAll() ([]Review, error) {
	return r.list(listReviewsQuery)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Review, error) {
	return r.list(listReviewsByUserQuery, userID)
}

func (r *PostgresRepository) ListByDog(dogID int) ([]Review, error) {
	return r.list(listReviewsByDogQuery, dogID)
}

func (r *PostgresRepository) GetByID(id int) (Review, error) {
	rev, err := scanReview(r.db.QueryRow(getReviewByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}

	return rev, nil
}

func (r *PostgresRepository) Create(rev Review) (Review, error) {
	var id int
	err := r.db.QueryRow(
		insertReviewQuery,
		rev.Text,
		rev.Rating,
		rev.Date,
		rev.UserID,
		rev.DogID,
	).Scan(&id)
	if err != nil {
		return Review{}, err
	}

	rev.ID = id
	return rev, nil
}

func (r *PostgresRepository) Update(id int, rev Review) (Review, error) {
	result, err := r.db.Exec(updateReviewQuery, rev.Text, rev.Rating, id)
	if err != nil {
		return Review{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Review{}, err
	}
	if affected == 0 {
		return Review{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteReviewQuery, id)
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

func (r *PostgresRepository) list(query string, args ...any) ([]Review, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}

	return reviews, rows.Err()
}

func scanReview(scanner rowScanner) (Review, error) {
	rev := Review{}
	var date sql.NullString

	if err := scanner.Scan(
		&rev.ID,
		&rev.Text,
		&rev.Rating,
		&date,
		&rev.UserID,
		&rev.DogID,
	); err != nil {
		return Review{}, err
	}

	if date.Valid {
		rev.Date = date.String
	}

	return rev, nil
}
