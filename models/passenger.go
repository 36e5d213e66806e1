package models

// Passenger links a seat to the order placed from it. Status and ETA are not
// stored here; they are read from the order through PassengerView.
type Passenger struct {
	Seat  string `json:"seat"`
	Order int    `json:"order"`
}

// PassengerView is a passenger joined with its order at read time.
type PassengerView struct {
	Seat     string      `json:"seat"`
	Order    int         `json:"order"`
	Status   OrderStatus `json:"status"`
	ETA      int         `json:"eta"`
	Orphaned bool        `json:"-"`
}

// ViewOf joins p with its order. A nil order yields an orphaned view.
func ViewOf(p Passenger, order *Order) PassengerView {
	v := PassengerView{Seat: p.Seat, Order: p.Order}
	if order == nil {
		v.Orphaned = true
		return v
	}
	v.Status = order.Status
	v.ETA = order.ETA
	return v
}
