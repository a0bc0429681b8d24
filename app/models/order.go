package models

import "gorm.io/gorm"

// PizzaSize enumerates the sizes a pizza can be ordered in.
type PizzaSize string

const (
	SizeSmall  PizzaSize = "SMALL"
	SizeMedium PizzaSize = "MEDIUM"
	SizeLarge  PizzaSize = "LARGE"
)

// Label returns the human-readable name for the size.
func (s PizzaSize) Label() string {
	switch s {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	}
	return string(s)
}

// Valid reports whether s is one of the known sizes.
func (s PizzaSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// OrderStatus enumerates the delivery lifecycle states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusInTransit OrderStatus = "IN_TRANSIT"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Label returns the human-readable name for the status.
func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInTransit:
		return "In transit"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// transitions is the allowed-edge table of the order lifecycle.
// DELIVERED and CANCELLED are terminal; same-state writes are not edges.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a pizza order placed by a user.
type Order struct {
	gorm.Model
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	PizzaSize   PizzaSize   `gorm:"size:20;default:SMALL" json:"pizza_size"`
	OrderStatus OrderStatus `gorm:"size:20;default:PENDING" json:"order_status"`
}

// Summary is the code+label projection returned by the own-orders listing.
type Summary struct {
	ID          uint      `json:"id"`
	Quantity    int       `json:"quantity"`
	PizzaSize   EnumValue `json:"pizza_size"`
	OrderStatus EnumValue `json:"order_status"`
}

// EnumValue pairs an enum code with its display label.
type EnumValue struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Summarize converts an order into its listing projection.
func Summarize(o Order) Summary {
	return Summary{
		ID:          o.ID,
		Quantity:    o.Quantity,
		PizzaSize:   EnumValue{Code: string(o.PizzaSize), Label: o.PizzaSize.Label()},
		OrderStatus: EnumValue{Code: string(o.OrderStatus), Label: o.OrderStatus.Label()},
	}
}
