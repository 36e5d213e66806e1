// Package analytics computes the read-side figures shown on the overview and
// analytics pages. Nothing is cached; every call recomputes from the orders
// it is given.
package analytics

import (
	"cmp"
	"slices"
	"strconv"

	"foodonbus-dashboard/models"
)

// ETAPlaceholder is shown for the average ETA when there are no orders.
const ETAPlaceholder = "—"

type Metrics struct {
	Total     int
	Preparing int
	Delivered int
	Pending   int // not yet delivered
	AvgETA    string
}

func Overview(orders []models.Order) Metrics {
	m := Metrics{Total: len(orders), AvgETA: ETAPlaceholder}
	for _, o := range orders {
		switch o.Status {
		case models.StatusPreparing:
			m.Preparing++
		case models.StatusDelivered:
			m.Delivered++
		}
		if o.Status != models.StatusDelivered {
			m.Pending++
		}
	}
	if avg, ok := AverageETA(orders); ok {
		m.AvgETA = strconv.Itoa(avg)
	}
	return m
}

// AverageETA returns the floor of the mean ETA. ok is false when there are no
// orders.
func AverageETA(orders []models.Order) (avg int, ok bool) {
	if len(orders) == 0 {
		return 0, false
	}
	sum := 0
	for _, o := range orders {
		sum += o.ETA
	}
	// ETAs are non-negative minutes, so integer division floors.
	return sum / len(orders), true
}

type ItemCount struct {
	Name  string
	Count int
}

// PopularItems counts line items by name across all orders and returns the
// top n by count. Equal counts keep the order in which the names were first
// seen.
func PopularItems(orders []models.Order, n int) []ItemCount {
	var counts []ItemCount
	index := make(map[string]int)
	for _, o := range orders {
		for _, item := range o.Items {
			i, seen := index[item.Name]
			if !seen {
				i = len(counts)
				index[item.Name] = i
				counts = append(counts, ItemCount{Name: item.Name})
			}
			counts[i].Count++
		}
	}
	slices.SortStableFunc(counts, func(a, b ItemCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
