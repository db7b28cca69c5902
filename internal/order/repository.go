package order

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pawmart/pawmart-backend/internal/dog"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// DogNotFoundError reports a placement line referencing a missing dog.
type DogNotFoundError struct {
	DogID int
}

func (e *DogNotFoundError) Error() string {
	return fmt.Sprintf("Dog with ID %d not found", e.DogID)
}

// InsufficientStockError reports a placement line exceeding current stock.
type InsufficientStockError struct {
	DogName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s", e.DogName)
}

// Repository defines persistence operations for orders.
//
// Place must be all-or-nothing: either every line's stock decrement and
// order-item insert lands together with the order, or nothing is written.
type Repository interface {
	Place(ord Order, lines []Line) (Order, error)
	ListAll() ([]Order, error)
	GetByID(id int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	Update(id int, ord Order) (Order, error)
	Delete(id int) error
}

// InMemoryRepository keeps orders, a private dog inventory and the known
// customers so handler tests can exercise the placement and read semantics
// without a database.
type InMemoryRepository struct {
	mu         sync.Mutex
	orders     []Order
	dogs       map[int]dog.Dog
	customers  map[int]Customer
	nextID     int
	nextItemID int
}

func NewInMemoryRepository(dogSeed []dog.Dog, customerSeed map[int]Customer) *InMemoryRepository {
	dogs := make(map[int]dog.Dog, len(dogSeed))
	for _, d := range dogSeed {
		dogs[d.ID] = d
	}

	return &InMemoryRepository{
		dogs:       dogs,
		customers:  customerSeed,
		nextID:     1,
		nextItemID: 1,
	}
}

// DogStock reports remaining stock for a seeded dog.
func (r *InMemoryRepository) DogStock(dogID int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dogs[dogID].StockQuantity
}

func (r *InMemoryRepository) Place(ord Order, lines []Line) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// validate every line before touching stock
	for _, line := range lines {
		d, ok := r.dogs[line.DogID]
		if !ok {
			return Order{}, &DogNotFoundError{DogID: line.DogID}
		}
		if d.StockQuantity < line.Quantity {
			return Order{}, &InsufficientStockError{DogName: d.Name}
		}
	}

	ord.ID = r.nextID
	r.nextID++

	total := 0.0
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		d := r.dogs[line.DogID]
		d.StockQuantity -= line.Quantity
		r.dogs[line.DogID] = d

		items = append(items, Item{
			ID:         r.nextItemID,
			Quantity:   line.Quantity,
			Price:      d.Price,
			DogID:      line.DogID,
			DogName:    d.Name,
			Category:   string(d.Category),
			CoverImage: d.CoverImage,
			OrderID:    ord.ID,
		})
		r.nextItemID++
		total += d.Price * float64(line.Quantity)
	}

	ord.Items = items
	ord.TotalAmount = total
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]Order, 0, len(r.orders))
	for _, ord := range r.orders {
		orders = append(orders, r.withCustomer(ord))
	}
	return orders, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ord := range r.orders {
		if ord.ID == id {
			return r.withCustomer(ord), nil
		}
	}

	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID == userID {
			orders = append(orders, r.withCustomer(ord))
		}
	}

	return orders, nil
}

// withCustomer attaches the owner's contact card to a read, mirroring how
// the store joins the users table.
func (r *InMemoryRepository) withCustomer(ord Order) Order {
	if c, ok := r.customers[ord.UserID]; ok {
		ord.Customer = &c
	}
	return ord
}

func (r *InMemoryRepository) Update(id int, update Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == id {
			ord.Status = update.Status
			ord.ShippingAddress = update.ShippingAddress
			ord.BillingAddress = update.BillingAddress
			r.orders[i] = ord
			return r.withCustomer(ord), nil
		}
	}

	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
