package order

// Order represents a purchase made by a user. Items and the owner's
// contact card are populated on reads.
type Order struct {
	ID              int       `json:"orderId"`
	OrderDate       string    `json:"orderDate"`
	Status          string    `json:"orderStatus"`
	ShippingAddress string    `json:"shippingAddress"`
	BillingAddress  string    `json:"billingAddress"`
	TotalAmount     float64   `json:"totalAmount"`
	UserID          int       `json:"userId"`
	Customer        *Customer `json:"user,omitempty"`
	Items           []Item    `json:"orderItems"`
}

// Customer is the contact card of the order owner.
type Customer struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
}

// Item is one line of an order. Price is a snapshot of the dog's price at
// order time; later price changes do not alter past orders. The other dog
// fields are joined in from the current listing.
type Item struct {
	ID         int     `json:"orderItemId"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	DogID      int     `json:"dogId"`
	DogName    string  `json:"dogName,omitempty"`
	Category   string  `json:"category,omitempty"`
	CoverImage string  `json:"coverImage,omitempty"`
	OrderID    int     `json:"orderId"`
}

// Line is a requested (dog, quantity) pair in a placement request.
type Line struct {
	DogID    int `json:"dog"`
	Quantity int `json:"quantity"`
}

// Observed order statuses. Status stays free text on the wire.
const (
	StatusPending        = "Pending"
	StatusConfirmed      = "Confirmed"
	StatusOutForDelivery = "OutForDelivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)
