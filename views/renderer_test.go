package views

import (
	"testing"

	"foodonbus-dashboard/analytics"
	"foodonbus-dashboard/mapsim"
	"foodonbus-dashboard/models"
	"foodonbus-dashboard/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestRenderOrders(t *testing.T) {
	r := newRenderer(t)
	st := store.NewSeeded()

	html, err := r.Render("orders", OrdersData{Orders: st.Orders()})
	require.NoError(t, err)

	assert.Contains(t, string(html), "<td>#101</td>")
	assert.Contains(t, string(html), "<td>Veg Biryani</td>")
	assert.Contains(t, string(html), "<td>Out for Delivery</td>")
	assert.Contains(t, string(html), "<td>4 min</td>")
}

func TestRenderOverviewPlaceholder(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Render("overview", OverviewData{Metrics: analytics.Overview(nil)})
	require.NoError(t, err)

	assert.Contains(t, string(html), `<div id="mEta" class="metric-value">—</div>`)
	assert.Contains(t, string(html), `<div id="mNew" class="metric-value">0</div>`)
}

func TestRenderMenuItems(t *testing.T) {
	r := newRenderer(t)
	items := []models.MenuItem{{ID: 1, Name: "Veg Biryani", Price: 120, Tags: []string{"veg", "popular"}}}

	html, err := r.Render("menu", MenuData{Query: "veg", Items: items})
	require.NoError(t, err)

	assert.Contains(t, string(html), "<strong>Veg Biryani</strong>")
	assert.Contains(t, string(html), "₹120 • veg, popular")
	assert.Contains(t, string(html), `value="veg"`)
}

func TestRenderEscapesUserInput(t *testing.T) {
	r := newRenderer(t)
	items := []models.MenuItem{{ID: 9, Name: "<script>alert(1)</script>", Price: 1}}

	html, err := r.Render("menu_items", MenuData{Items: items})
	require.NoError(t, err)

	assert.NotContains(t, string(html), "<script>alert(1)</script>")
	assert.Contains(t, string(html), "&lt;script&gt;")
}

func TestRenderPassengers(t *testing.T) {
	r := newRenderer(t)
	views := []models.PassengerView{
		{Seat: "12A", Order: 101, Status: models.StatusPreparing, ETA: 10},
		{Seat: "3C", Order: 500, Orphaned: true},
	}

	html, err := r.Render("passengers", PassengersData{Passengers: views})
	require.NoError(t, err)

	assert.Contains(t, string(html), "Order: #101 • Preparing • 10 min")
	assert.Contains(t, string(html), "Order: #500 • No order")
}

func TestRenderAnalytics(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Render("analytics", AnalyticsData{
		Orders:  2,
		AvgETA:  7,
		Drivers: 2,
		Popular: []analytics.ItemCount{{Name: "Veg Biryani", Count: 1}, {Name: "Chicken Roll", Count: 1}},
	})
	require.NoError(t, err)

	assert.Contains(t, string(html), "Avg ETA: <strong>7</strong> mins")
	assert.Contains(t, string(html), "Popular Items: <strong>Veg Biryani, Chicken Roll</strong>")
}

func TestRenderMap(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Render("map", MapData{
		View:    mapsim.View{Lat: 19.07, Lng: 72.87, Zoom: 12},
		Markers: []mapsim.Marker{{ID: "driver:1", Kind: mapsim.KindDriver, Label: "Raju", Lat: 19.07, Lng: 72.87}},
	})
	require.NoError(t, err)

	assert.Contains(t, string(html), `data-zoom="12"`)
	assert.Contains(t, string(html), "19.070, 72.870")
}

func TestRenderMapLabelsAreText(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Render("map", MapData{
		View: mapsim.View{Lat: 19.2, Lng: 72.9, Zoom: 12},
		Markers: []mapsim.Marker{{
			ID:    "driver:3",
			Kind:  mapsim.KindDriver,
			Label: "<img src=x onerror=alert(1)>\nMH12 AB 3344",
			Lat:   19.2,
			Lng:   72.9,
		}},
	})
	require.NoError(t, err)

	out := string(html)
	assert.NotContains(t, out, "<img src=x")
	assert.Contains(t, out, "&lt;img src=x onerror=alert(1)&gt;")
	// Popups are built from text nodes, never from the label as markup.
	assert.Contains(t, out, "document.createTextNode(line)")
	assert.NotContains(t, out, "bindPopup(m.label")
}

func TestRenderShell(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Render("shell", ShellData{
		Pages:    []NavItem{{ID: "overview", Title: "Overview"}, {ID: "orders", Title: "Orders"}},
		Active:   "orders",
		Title:    "Orders",
		Subtitle: "Live management • Orders",
		Theme:    "light",
		Content:  "<p>content</p>",
	})
	require.NoError(t, err)

	assert.Contains(t, string(html), `<a data-page="orders" class="active">Orders</a>`)
	assert.Contains(t, string(html), `class="light-theme"`)
	assert.Contains(t, string(html), "<p>content</p>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := newRenderer(t)
	_, err := r.Render("nope", nil)
	assert.Error(t, err)
}
