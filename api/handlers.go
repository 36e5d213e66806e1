package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"foodonbus-dashboard/dashboard"
	"foodonbus-dashboard/geohash"
	"foodonbus-dashboard/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const defaultNearbyRadius = 0.05

// Handler exposes the dashboard over HTTP.
type Handler struct {
	dash   *dashboard.Dashboard
	logger *zap.Logger
}

func NewHandler(dash *dashboard.Dashboard, logger *zap.Logger) *Handler {
	return &Handler{dash: dash, logger: logger}
}

type response struct {
	Page      string                   `json:"page"`
	Title     string                   `json:"title,omitempty"`
	Subtitle  string                   `json:"subtitle,omitempty"`
	Notices   []string                 `json:"notices"`
	Fragments map[string]template.HTML `json:"fragments"`
	Data      any                      `json:"data,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeResult answers a command. Aborted commands are not HTTP errors: the
// notices tell the user what happened.
func (h *Handler) writeResult(w http.ResponseWriter, res dashboard.Result) {
	if res.Err != nil && !isUserFacing(res.Err) {
		h.logger.Error("Command failed", zap.Error(res.Err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	notices := res.Notices
	if notices == nil {
		notices = []string{}
	}
	fragments := res.Fragments
	if fragments == nil {
		fragments = map[string]template.HTML{}
	}
	h.writeJSON(w, http.StatusOK, response{
		Page:      string(res.Page),
		Notices:   notices,
		Fragments: fragments,
		Data:      res.Data,
	})
}

func isUserFacing(err error) bool {
	return errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrUserCancelled) ||
		errors.Is(err, models.ErrDuplicate) ||
		errors.Is(err, models.ErrInvalidInput)
}

// confirmation reads the answer to the command's confirmation prompt.
// Anything but "yes" declines.
func confirmation(r *http.Request) dashboard.Confirmer {
	return dashboard.Always(r.FormValue("confirm") == "yes")
}

func intVar(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

// Index serves the full dashboard document.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	html, err := h.dash.Shell()
	if err != nil {
		h.logger.Error("Failed to render shell", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

// ShowPage switches the active page.
func (h *Handler) ShowPage(w http.ResponseWriter, r *http.Request) {
	res, err := h.dash.Navigate(mux.Vars(r)["page"])
	if errors.Is(err, dashboard.ErrPageNotFound) {
		h.writeJSON(w, http.StatusNotFound, response{
			Page:      string(h.dash.Active()),
			Notices:   []string{"Page not found"},
			Fragments: map[string]template.HTML{},
		})
		return
	}
	if err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, response{
		Page:      string(res.Page),
		Title:     dashboard.Title(res.Page),
		Subtitle:  dashboard.Subtitle(res.Page),
		Notices:   []string{},
		Fragments: res.Fragments,
	})
}

// PlaceOrder creates an order from a cart. items is a comma separated list
// of menu item ids, one per portion.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var items []int
	for _, raw := range strings.Split(r.FormValue("items"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid item ID", http.StatusBadRequest)
			return
		}
		items = append(items, id)
	}
	h.writeResult(w, h.dash.PlaceOrder(dashboard.OrderRequest{
		Seat:  r.FormValue("seat"),
		Bus:   r.FormValue("bus"),
		Phone: r.FormValue("phone"),
		Items: items,
	}))
}

func (h *Handler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	h.writeResult(w, h.dash.AdvanceOrder(id))
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	h.writeResult(w, h.dash.CancelOrder(id, confirmation(r)))
}

func (h *Handler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.dash.AddMenuItem(r.FormValue("name"), r.FormValue("price")))
}

func (h *Handler) EditMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	h.writeResult(w, h.dash.EditMenuItem(id, r.FormValue("name"), r.FormValue("price")))
}

func (h *Handler) RemoveMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	h.writeResult(w, h.dash.RemoveMenuItem(id, confirmation(r)))
}

func (h *Handler) SearchMenu(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.dash.SearchMenu(r.URL.Query().Get("q")))
}

func (h *Handler) AddDriver(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.dash.AddDriver(r.FormValue("name"), r.FormValue("phone"), r.FormValue("bus")))
}

func (h *Handler) RemoveDriver(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		http.Error(w, "Invalid driver ID", http.StatusBadRequest)
		return
	}
	h.writeResult(w, h.dash.RemoveDriver(id, confirmation(r)))
}

func (h *Handler) CallDriver(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		http.Error(w, "Invalid driver ID", http.StatusBadRequest)
		return
	}
	h.writeResult(w, h.dash.CallDriver(id))
}

func (h *Handler) TrackDriver(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "id")
	if err != nil {
		http.Error(w, "Invalid driver ID", http.StatusBadRequest)
		return
	}
	h.writeResult(w, h.dash.TrackDriver(id))
}

func (h *Handler) AddBus(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.dash.AddBus(r.FormValue("number"), r.FormValue("route"), r.FormValue("seats")))
}

func (h *Handler) ViewBus(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.dash.ViewBus(mux.Vars(r)["number"]))
}

func (h *Handler) RemoveBus(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.dash.RemoveBus(mux.Vars(r)["number"], confirmation(r)))
}

func (h *Handler) ViewPassenger(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "order")
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	h.writeResult(w, h.dash.ViewPassenger(id))
}

func (h *Handler) MessagePassenger(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.dash.MessagePassenger(mux.Vars(r)["seat"]))
}

func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.writeResult(w, h.dash.ToggleTheme())
}

// MapMarkers returns the live marker positions for the map to poll.
func (h *Handler) MapMarkers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.dash.LiveMap())
}

// Nearby lists the markers around a point.
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		http.Error(w, "Invalid latitude", http.StatusBadRequest)
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		http.Error(w, "Invalid longitude", http.StatusBadRequest)
		return
	}
	radius := defaultNearbyRadius
	if raw := q.Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			http.Error(w, "Invalid radius", http.StatusBadRequest)
			return
		}
	}

	markers, err := h.dash.Nearby(lat, lng, radius)
	if errors.Is(err, geohash.ErrNoNearbyPoints) {
		http.Error(w, "No nearby markers found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"markers": markers})
}

// Export downloads the whole store as JSON.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.dash.Export(&buf); err != nil {
		h.logger.Error("Failed to export store", zap.Error(err))
		http.Error(w, "Failed to export store", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", dashboard.ExportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.dash.ExportFilename()))
	buf.WriteTo(w)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
