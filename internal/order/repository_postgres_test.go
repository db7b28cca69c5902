package order

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func testOrderShell() Order {
	return Order{
		OrderDate:       "2026-01-01T00:00:00Z",
		Status:          StatusPending,
		ShippingAddress: "12 Bark St",
		BillingAddress:  "12 Bark St",
		UserID:          7,
	}
}

func TestPostgresPlace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("2026-01-01T00:00:00Z", StatusPending, "12 Bark St", "12 Bark St", 0.0, 7).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(1))
	mock.ExpectQuery("FOR UPDATE").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"dog_name", "price", "stock_quantity", "category", "cover_image"}).
			AddRow("Rex", 100.0, 5, "Puppy", "/uploads/dogs/rex.png"))
	mock.ExpectExec("UPDATE dogs SET stock_quantity").WithArgs(3, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO order_items").WithArgs(3, 100.0, 1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"order_item_id"}).AddRow(11))
	mock.ExpectExec("UPDATE orders SET total_amount").WithArgs(300.0, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ord, err := repo.Place(testOrderShell(), []Line{{DogID: 1, Quantity: 3}})
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if ord.ID != 1 || ord.TotalAmount != 300 {
		t.Fatalf("unexpected order %+v", ord)
	}
	if len(ord.Items) != 1 || ord.Items[0].ID != 11 || ord.Items[0].Price != 100 {
		t.Fatalf("unexpected items %+v", ord.Items)
	}
	if ord.Items[0].DogName != "Rex" || ord.Items[0].CoverImage != "/uploads/dogs/rex.png" {
		t.Fatalf("dog snapshot missing on item: %+v", ord.Items[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresPlace_InsufficientStockRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// the first line decrements stock, the second fails its check; the whole
	// transaction must roll back
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(1))
	mock.ExpectQuery("FOR UPDATE").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"dog_name", "price", "stock_quantity", "category", "cover_image"}).
			AddRow("Rex", 100.0, 5, "Puppy", ""))
	mock.ExpectExec("UPDATE dogs SET stock_quantity").WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO order_items").WithArgs(2, 100.0, 1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"order_item_id"}).AddRow(11))
	mock.ExpectQuery("FOR UPDATE").WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"dog_name", "price", "stock_quantity", "category", "cover_image"}).
			AddRow("Bella", 50.0, 2, "Adult", ""))
	mock.ExpectRollback()

	_, err = repo.Place(testOrderShell(), []Line{{DogID: 1, Quantity: 2}, {DogID: 2, Quantity: 5}})

	var noStock *InsufficientStockError
	if !errors.As(err, &noStock) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if noStock.DogName != "Bella" {
		t.Fatalf("error should name the dog, got %q", noStock.DogName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresPlace_MissingDogRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(1))
	mock.ExpectQuery("FOR UPDATE").WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"dog_name", "price", "stock_quantity", "category", "cover_image"}))
	mock.ExpectRollback()

	_, err = repo.Place(testOrderShell(), []Line{{DogID: 99, Quantity: 1}})

	var notFound *DogNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected DogNotFoundError, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_PopulatesItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM orders").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "order_date", "order_status", "shipping_address", "billing_address", "total_amount", "user_id", "username", "email", "mobile_number"}).
			AddRow(1, "2026-01-01T00:00:00Z", StatusPending, "a", "b", 300.0, 7, "jenny", "jenny@pawmart.dev", "0812345678"))
	mock.ExpectQuery("FROM order_items").
		WillReturnRows(sqlmock.NewRows([]string{"order_item_id", "quantity", "price", "dog_id", "dog_name", "category", "cover_image", "order_id"}).
			AddRow(11, 3, 100.0, 1, "Rex", "Puppy", "/uploads/dogs/rex.png", 1))

	ord, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(ord.Items) != 1 || ord.Items[0].Quantity != 3 {
		t.Fatalf("items not populated: %+v", ord)
	}
	if ord.Items[0].DogName != "Rex" || ord.Items[0].Category != "Puppy" {
		t.Fatalf("dog details not joined onto item: %+v", ord.Items[0])
	}
	if ord.Customer == nil || ord.Customer.Username != "jenny" || ord.Customer.MobileNumber != "0812345678" {
		t.Fatalf("owner contact details not joined: %+v", ord.Customer)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresDelete_RemovesItemsWithOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM order_items").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM orders").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(1); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
