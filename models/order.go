package models

import "math"

// TaxRate is charged on the subtotal of every placed order.
const TaxRate = 0.05

type OrderStatus string

const (
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
)

// Next returns the status that follows s. Delivered is terminal and maps to
// itself.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case StatusPreparing:
		return StatusOutForDelivery
	case StatusOutForDelivery:
		return StatusDelivered
	default:
		return StatusDelivered
	}
}

type LineItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Order struct {
	ID     int         `json:"id"`
	Seat   string      `json:"seat"`
	Items  []LineItem  `json:"items"`
	Status OrderStatus `json:"status"`
	ETA    int         `json:"eta"` // minutes
	Bus    string      `json:"bus,omitempty"`
	Phone  string      `json:"phone,omitempty"`
}

// ItemNames returns the names of the order's line items in order.
func (o Order) ItemNames() []string {
	names := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		names = append(names, item.Name)
	}
	return names
}

func (o Order) Subtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Price
	}
	return sum
}

// Tax is TaxRate of the subtotal, rounded to paise.
func (o Order) Tax() float64 {
	return math.Round(o.Subtotal()*TaxRate*100) / 100
}

func (o Order) Total() float64 {
	return o.Subtotal() + o.Tax()
}
