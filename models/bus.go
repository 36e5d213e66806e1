package models

type Bus struct {
	Number string  `json:"number"`
	Route  string  `json:"route"`
	Seats  int     `json:"seats"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}
