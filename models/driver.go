package models

type Driver struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Bus   string  `json:"bus"` // number of the assigned bus
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}
