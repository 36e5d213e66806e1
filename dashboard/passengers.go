package dashboard

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message is a simulated message sent to a passenger seat.
type Message struct {
	ID   string `json:"id"`
	Seat string `json:"seat"`
}

// ViewPassenger describes the passenger waiting on an order.
func (d *Dashboard) ViewPassenger(orderID int) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	o, err := d.opts.Store.Order(orderID)
	if err != nil {
		res.Err = err
		res.notify("No order")
		return d.finish("view_passenger", res)
	}
	res.notify(fmt.Sprintf("Order #%d\nSeat: %s\nItems: %s\nStatus: %s",
		o.ID, o.Seat, strings.Join(o.ItemNames(), ", "), o.Status))
	res.Data = o
	return d.finish("view_passenger", res)
}

func (d *Dashboard) MessagePassenger(seat string) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	if _, err := d.opts.Store.PassengerBySeat(seat); err != nil {
		res.Err = err
		res.notify("Passenger not found")
		return d.finish("message_passenger", res)
	}
	msg := Message{ID: uuid.NewString(), Seat: seat}
	d.opts.Logger.Info("Message sent to passenger", zap.String("message_id", msg.ID), zap.String("seat", seat))
	res.notify("Simulated message to seat " + seat)
	res.Data = msg
	return d.finish("message_passenger", res)
}
