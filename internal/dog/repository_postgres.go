package dog

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listDogsQuery = `
		SELECT dog_id, dog_name, breed, age, price, stock_quantity, category, cover_image
		FROM dogs
		ORDER BY dog_id
	`
	getDogByIDQuery = `
		SELECT dog_id, dog_name, breed, age, price, stock_quantity, category, cover_image
		FROM dogs
		WHERE dog_id = $1
	`
	getDogByNameQuery = `
		SELECT dog_id, dog_name, breed, age, price, stock_quantity, category, cover_image
		FROM dogs
		WHERE dog_name = $1
	`
	insertDogQuery = `
		INSERT INTO dogs (dog_name, breed, age, price, stock_quantity, category, cover_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING dog_id
	`
	updateDogQuery = `
		UPDATE dogs
		SET dog_name = $1,
			breed = $2,
			age = $3,
			price = $4,
			stock_quantity = $5,
			category = $6,
			cover_image = $7
		WHERE dog_id = $8
	`
	deleteDogQuery = `DELETE FROM dogs WHERE dog_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Dog, error) {
	rows, err := r.db.Query(listDogsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dogs := make([]Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		dogs = append(dogs, d)
	}

	return dogs, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Dog, error) {
	d, err := scanDog(r.db.QueryRow(getDogByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Dog{}, ErrNotFound
		}
		return Dog{}, err
	}

	return d, nil
}

func (r *PostgresRepository) GetByName(name string) (Dog, error) {
	d, err := scanDog(r.db.QueryRow(getDogByNameQuery, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return Dog{}, ErrNotFound
		}
		return Dog{}, err
	}

	return d, nil
}

func (r *PostgresRepository) Create(d Dog) (Dog, error) {
	var id int
	err := r.db.QueryRow(
		insertDogQuery,
		d.Name,
		d.Breed,
		d.Age,
		d.Price,
		d.StockQuantity,
		string(d.Category),
		d.CoverImage,
	).Scan(&id)
	if err != nil {
		return Dog{}, err
	}

	d.ID = id
	return d, nil
}

func (r *PostgresRepository) Update(id int, d Dog) (Dog, error) {
	result, err := r.db.Exec(
		updateDogQuery,
		d.Name,
		d.Breed,
		d.Age,
		d.Price,
		d.StockQuantity,
		string(d.Category),
		d.CoverImage,
		id,
	)
	if err != nil {
		return Dog{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Dog{}, err
	}
	if affected == 0 {
		return Dog{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteDogQuery, id)
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

func scanDog(scanner rowScanner) (Dog, error) {
	d := Dog{}
	var category string

	if err := scanner.Scan(
		&d.ID,
		&d.Name,
		&d.Breed,
		&d.Age,
		&d.Price,
		&d.StockQuantity,
		&category,
		&d.CoverImage,
	); err != nil {
		return Dog{}, err
	}

	d.Category = Category(category)
	return d, nil
}
