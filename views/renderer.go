// Package views renders dashboard pages into HTML fragments.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"foodonbus-dashboard/analytics"
	"foodonbus-dashboard/mapsim"
	"foodonbus-dashboard/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type NavItem struct {
	ID    string
	Title string
}

type ShellData struct {
	Pages    []NavItem
	Active   string
	Title    string
	Subtitle string
	Theme    string
	Content  template.HTML
}

type OverviewData struct {
	Metrics   analytics.Metrics
	Drivers   int
	Buses     int
	MenuItems int
}

type OrdersData struct {
	Orders []models.Order
}

type MenuData struct {
	Query string
	Items []models.MenuItem
}

type DriversData struct {
	Drivers []models.Driver
}

type BusesData struct {
	Buses []models.Bus
}

type MapData struct {
	View    mapsim.View
	Markers []mapsim.Marker
}

type AnalyticsData struct {
	Orders  int
	AvgETA  int
	Drivers int
	Popular []analytics.ItemCount
}

type PassengersData struct {
	Passengers []models.PassengerView
}

type SettingsData struct {
	Theme          string
	ExportFilename string
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"price": func(p float64) string {
		return "₹" + strconv.FormatFloat(p, 'f', -1, 64)
	},
	"coord": func(v float64) string {
		return strconv.FormatFloat(v, 'f', 3, 64)
	},
}

type Renderer struct {
	t *template.Template
}

func New() (*Renderer, error) {
	t, err := template.New("views").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

// Render executes the named template. Fragment names match page ids, plus
// "shell" for the full document and "menu_items" for search results.
func (r *Renderer) Render(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
