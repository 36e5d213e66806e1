package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"foodonbus-dashboard/models"
)

// orderPages are the pages derived from orders.
var orderPages = []Page{PageOrders, PageOverview, PagePassengers, PageAnalytics}

// AdvanceOrder moves an order one step along its lifecycle. Delivered orders
// stay delivered.
func (d *Dashboard) AdvanceOrder(id int) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	if _, err := d.opts.Store.AdvanceOrder(id); err != nil {
		res.Err = err
		res.notify("Order not found")
		return d.finish("advance_order", res)
	}
	d.refresh(res, orderPages...)
	return d.finish("advance_order", res)
}

// CancelOrder deletes an order together with its passengers once the user
// confirms.
func (d *Dashboard) CancelOrder(id int, c Confirmer) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	if _, err := d.opts.Store.Order(id); err != nil {
		res.Err = err
		res.notify("Order not found")
		return d.finish("cancel_order", res)
	}
	if !c.Confirm(fmt.Sprintf("Cancel order #%d?", id)) {
		res.Err = models.ErrUserCancelled
		return d.finish("cancel_order", res)
	}
	if err := d.opts.Store.RemoveOrder(id); err != nil && !errors.Is(err, models.ErrNotFound) {
		res.Err = err
		return d.finish("cancel_order", res)
	}
	d.refresh(res, orderPages...)
	return d.finish("cancel_order", res)
}

// NewOrderETA is the delivery estimate, in minutes, of a freshly placed
// order.
const NewOrderETA = 15

// OrderRequest is a passenger's cart. Items holds menu item ids, repeated
// once per portion.
type OrderRequest struct {
	Seat  string
	Bus   string
	Phone string
	Items []int
}

// PlaceOrder turns a cart into a Preparing order and records the passenger
// waiting for it in the seat.
func (d *Dashboard) PlaceOrder(req OrderRequest) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	if len(req.Items) == 0 {
		res.Err = fmt.Errorf("empty cart: %w", models.ErrInvalidInput)
		res.notify("Your cart is empty")
		return d.finish("place_order", res)
	}
	seat, bus, phone := strings.TrimSpace(req.Seat), strings.TrimSpace(req.Bus), strings.TrimSpace(req.Phone)
	if seat == "" || bus == "" || phone == "" {
		res.Err = fmt.Errorf("missing passenger details: %w", models.ErrInvalidInput)
		res.notify("Please fill phone, bus number and seat number")
		return d.finish("place_order", res)
	}

	items := make([]models.LineItem, 0, len(req.Items))
	for _, id := range req.Items {
		m, err := d.opts.Store.MenuItem(id)
		if err != nil {
			res.Err = err
			res.notify("Item not found")
			return d.finish("place_order", res)
		}
		items = append(items, models.LineItem{Name: m.Name, Price: m.Price})
	}

	o, err := d.opts.Store.AddOrder(models.Order{
		Seat:   seat,
		Items:  items,
		Status: models.StatusPreparing,
		ETA:    NewOrderETA,
		Bus:    bus,
		Phone:  phone,
	})
	if err != nil {
		res.Err = err
		return d.finish("place_order", res)
	}
	d.opts.Store.AddPassenger(models.Passenger{Seat: seat, Order: o.ID})

	res.notify(fmt.Sprintf("Order placed: #%d • Total ₹%.2f", o.ID, o.Total()))
	res.Data = o
	d.refresh(res, orderPages...)
	return d.finish("place_order", res)
}
