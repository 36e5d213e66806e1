package dashboard

import (
	"errors"
	"fmt"
	"html/template"

	"foodonbus-dashboard/analytics"
	"foodonbus-dashboard/metrics"
	"foodonbus-dashboard/views"

	"go.uber.org/zap"
)

var ErrPageNotFound = errors.New("page not found")

type Page string

const (
	PageOverview   Page = "overview"
	PageOrders     Page = "orders"
	PageMenu       Page = "menu"
	PageDrivers    Page = "drivers"
	PageBuses      Page = "buses"
	PageMap        Page = "map"
	PageAnalytics  Page = "analytics"
	PagePassengers Page = "passengers"
	PageSettings   Page = "settings"
)

// FragmentMenuItems is the fragment returned by a menu search.
const FragmentMenuItems = "menu_items"

type pageDef struct {
	id    Page
	title string
}

// pages in navigation order.
var pages = []pageDef{
	{PageOverview, "Overview"},
	{PageOrders, "Orders"},
	{PageMenu, "Menu"},
	{PageDrivers, "Drivers"},
	{PageBuses, "Buses"},
	{PageMap, "Live Map"},
	{PageAnalytics, "Analytics"},
	{PagePassengers, "Passengers"},
	{PageSettings, "Settings"},
}

// Pages lists every navigable page id in navigation order.
func Pages() []Page {
	ids := make([]Page, len(pages))
	for i, p := range pages {
		ids[i] = p.id
	}
	return ids
}

// ParsePage resolves a page id.
func ParsePage(id string) (Page, error) {
	for _, p := range pages {
		if string(p.id) == id {
			return p.id, nil
		}
	}
	return "", fmt.Errorf("%q: %w", id, ErrPageNotFound)
}

func Title(p Page) string {
	for _, def := range pages {
		if def.id == p {
			return def.title
		}
	}
	return ""
}

func Subtitle(p Page) string {
	return "Live management • " + Title(p)
}

// Navigate makes page the active page and renders it. Showing the map
// starts the simulator on first use.
func (d *Dashboard) Navigate(id string) (Result, error) {
	p, err := ParsePage(id)
	if err != nil {
		return Result{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	html, err := d.load(p)
	if err != nil {
		return Result{}, err
	}
	d.active = p
	metrics.PageViews.WithLabelValues(string(p)).Inc()
	d.opts.Logger.Debug("Page shown", zap.String("page", string(p)))
	return Result{Page: p, Fragments: map[string]template.HTML{string(p): html}}, nil
}

// Shell renders the full document with the active page mounted.
func (d *Dashboard) Shell() (template.HTML, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	content, err := d.load(d.active)
	if err != nil {
		return "", err
	}
	nav := make([]views.NavItem, len(pages))
	for i, p := range pages {
		nav[i] = views.NavItem{ID: string(p.id), Title: p.title}
	}
	return d.opts.Renderer.Render("shell", views.ShellData{
		Pages:    nav,
		Active:   string(d.active),
		Title:    Title(d.active),
		Subtitle: Subtitle(d.active),
		Theme:    d.theme,
		Content:  content,
	})
}

// load renders page p from the current store contents. Callers hold d.mu.
func (d *Dashboard) load(p Page) (template.HTML, error) {
	s := d.opts.Store
	var data any
	switch p {
	case PageOverview:
		data = views.OverviewData{
			Metrics:   analytics.Overview(s.Orders()),
			Drivers:   len(s.Drivers()),
			Buses:     len(s.Buses()),
			MenuItems: len(s.MenuItems()),
		}
	case PageOrders:
		data = views.OrdersData{Orders: s.Orders()}
	case PageMenu:
		data = views.MenuData{Items: s.MenuItems()}
	case PageDrivers:
		data = views.DriversData{Drivers: s.Drivers()}
	case PageBuses:
		data = views.BusesData{Buses: s.Buses()}
	case PageMap:
		d.startMap()
		sim := d.opts.Simulator
		data = views.MapData{View: sim.View(), Markers: sim.Markers()}
	case PageAnalytics:
		orders := s.Orders()
		avg, _ := analytics.AverageETA(orders)
		data = views.AnalyticsData{
			Orders:  len(orders),
			AvgETA:  avg,
			Drivers: len(s.Drivers()),
			Popular: analytics.PopularItems(orders, 3),
		}
	case PagePassengers:
		data = views.PassengersData{Passengers: s.PassengerViews()}
	case PageSettings:
		data = views.SettingsData{Theme: d.theme, ExportFilename: d.opts.ExportFilename}
	default:
		return "", fmt.Errorf("%q: %w", p, ErrPageNotFound)
	}
	return d.opts.Renderer.Render(string(p), data)
}

// startMap seeds the simulator from the store. Later calls are no-ops.
func (d *Dashboard) startMap() {
	if d.opts.Simulator.Init(d.ctx, d.opts.Store.Buses(), d.opts.Store.Drivers()) {
		d.opts.Logger.Info("Live map started")
	}
}
