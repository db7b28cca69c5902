package order

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders (order_date, order_status, shipping_address, billing_address, total_amount, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING order_id
	`
	lockDogQuery = `
		SELECT dog_name, price, stock_quantity, category, cover_image
		FROM dogs
		WHERE dog_id = $1
		FOR UPDATE
	`
	decrementStockQuery = `UPDATE dogs SET stock_quantity = stock_quantity - $1 WHERE dog_id = $2`
	insertItemQuery     = `
		INSERT INTO order_items (quantity, price, dog_id, order_id)
		VALUES ($1, $2, $3, $4)
		RETURNING order_item_id
	`
	setOrderTotalQuery = `UPDATE orders SET total_amount = $1 WHERE order_id = $2`

	listOrdersQuery = `
		SELECT o.order_id, o.order_date, o.order_status, o.shipping_address, o.billing_address, o.total_amount, o.user_id,
			u.username, u.email, u.mobile_number
		FROM orders o
		JOIN users u ON u.user_id = o.user_id
		ORDER BY o.order_id
	`
	getOrderByIDQuery = `
		SELECT o.order_id, o.order_date, o.order_status, o.shipping_address, o.billing_address, o.total_amount, o.user_id,
			u.username, u.email, u.mobile_number
		FROM orders o
		JOIN users u ON u.user_id = o.user_id
		WHERE o.order_id = $1
	`
	listOrdersByUserQuery = `
		SELECT o.order_id, o.order_date, o.order_status, o.shipping_address, o.billing_address, o.total_amount, o.user_id,
			u.username, u.email, u.mobile_number
		FROM orders o
		JOIN users u ON u.user_id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.order_id
	`
	listItemsByOrdersQuery = `
		SELECT oi.order_item_id, oi.quantity, oi.price, oi.dog_id, d.dog_name, d.category, d.cover_image, oi.order_id
		FROM order_items oi
		JOIN dogs d ON d.dog_id = oi.dog_id
		WHERE oi.order_id = ANY($1::int[])
		ORDER BY oi.order_item_id
	`
	updateOrderQuery = `
		UPDATE orders
		SET order_status = $1,
			shipping_address = $2,
			billing_address = $3
		WHERE order_id = $4
	`
	deleteItemsQuery = `DELETE FROM order_items WHERE order_id = $1`
	deleteOrderQuery = `DELETE FROM orders WHERE order_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Place runs the whole placement inside one transaction. Each dog row is
// locked and validated before its stock is decremented, so a failing line
// rolls back every earlier decrement and concurrent orders for the same dog
// cannot oversell.
func (r *PostgresRepository) Place(ord Order, lines []Line) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(
		insertOrderQuery,
		ord.OrderDate,
		ord.Status,
		ord.ShippingAddress,
		ord.BillingAddress,
		0.0,
		ord.UserID,
	).Scan(&ord.ID); err != nil {
		return Order{}, err
	}

	total := 0.0
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		var (
			name       string
			price      float64
			stock      int
			category   string
			coverImage string
		)
		err := tx.QueryRow(lockDogQuery, line.DogID).Scan(&name, &price, &stock, &category, &coverImage)
		if err == sql.ErrNoRows {
			return Order{}, &DogNotFoundError{DogID: line.DogID}
		}
		if err != nil {
			return Order{}, err
		}
		if stock < line.Quantity {
			return Order{}, &InsufficientStockError{DogName: name}
		}

		if _, err := tx.Exec(decrementStockQuery, line.Quantity, line.DogID); err != nil {
			return Order{}, err
		}

		item := Item{
			Quantity:   line.Quantity,
			Price:      price,
			DogID:      line.DogID,
			DogName:    name,
			Category:   category,
			CoverImage: coverImage,
			OrderID:    ord.ID,
		}
		if err := tx.QueryRow(insertItemQuery, item.Quantity, item.Price, item.DogID, item.OrderID).Scan(&item.ID); err != nil {
			return Order{}, err
		}

		items = append(items, item)
		total += price * float64(line.Quantity)
	}

	if _, err := tx.Exec(setOrderTotalQuery, total, ord.ID); err != nil {
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}

	ord.Items = items
	ord.TotalAmount = total
	return ord, nil
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.listOrders(listOrdersQuery)
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	return r.listOrders(listOrdersByUserQuery, userID)
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	itemsByOrder, err := r.loadItems([]int{ord.ID})
	if err != nil {
		return Order{}, err
	}
	ord.Items = itemsByOrder[ord.ID]
	return ord, nil
}

func (r *PostgresRepository) Update(id int, ord Order) (Order, error) {
	result, err := r.db.Exec(updateOrderQuery, ord.Status, ord.ShippingAddress, ord.BillingAddress, id)
	if err != nil {
		return Order{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrNotFound
	}

	return r.GetByID(id)
}

// Delete removes the order and its items together.
func (r *PostgresRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteItemsQuery, id); err != nil {
		return err
	}

	result, err := tx.Exec(deleteOrderQuery, id)
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

	return tx.Commit()
}

func (r *PostgresRepository) listOrders(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	ids := make([]int, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
		ids = append(ids, ord.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemsByOrder, err := r.loadItems(ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}

	return orders, nil
}

// loadItems batch-loads the items of the given orders in one query.
func (r *PostgresRepository) loadItems(orderIDs []int) (map[int][]Item, error) {
	itemsByOrder := make(map[int][]Item, len(orderIDs))
	for _, id := range orderIDs {
		itemsByOrder[id] = []Item{}
	}
	if len(orderIDs) == 0 {
		return itemsByOrder, nil
	}

	rows, err := r.db.Query(listItemsByOrdersQuery, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID,
			&item.Quantity,
			&item.Price,
			&item.DogID,
			&item.DogName,
			&item.Category,
			&item.CoverImage,
			&item.OrderID,
		); err != nil {
			return nil, err
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	return itemsByOrder, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner rowScanner) (Order, error) {
	var ord Order
	var customer Customer

	if err := scanner.Scan(
		&ord.ID,
		&ord.OrderDate,
		&ord.Status,
		&ord.ShippingAddress,
		&ord.BillingAddress,
		&ord.TotalAmount,
		&ord.UserID,
		&customer.Username,
		&customer.Email,
		&customer.MobileNumber,
	); err != nil {
		return Order{}, err
	}

	ord.Customer = &customer
	return ord, nil
}
