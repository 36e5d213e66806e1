package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func RegisterRoutes(h *Handler, logger *zap.Logger) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", h.Index).Methods("GET")
	router.HandleFunc("/pages/{page}", h.ShowPage).Methods("GET")

	// Order endpoints
	router.HandleFunc("/orders", h.PlaceOrder).Methods("POST")
	router.HandleFunc("/orders/{id}/advance", h.AdvanceOrder).Methods("POST")
	router.HandleFunc("/orders/{id}/cancel", h.CancelOrder).Methods("POST")

	// Menu endpoints
	router.HandleFunc("/menu/search", h.SearchMenu).Methods("GET")
	router.HandleFunc("/menu", h.AddMenuItem).Methods("POST")
	router.HandleFunc("/menu/{id}", h.EditMenuItem).Methods("POST")
	router.HandleFunc("/menu/{id}", h.RemoveMenuItem).Methods("DELETE")

	// Driver endpoints
	router.HandleFunc("/drivers", h.AddDriver).Methods("POST")
	router.HandleFunc("/drivers/{id}", h.RemoveDriver).Methods("DELETE")
	router.HandleFunc("/drivers/{id}/call", h.CallDriver).Methods("POST")
	router.HandleFunc("/drivers/{id}/track", h.TrackDriver).Methods("POST")

	// Bus endpoints
	router.HandleFunc("/buses", h.AddBus).Methods("POST")
	router.HandleFunc("/buses/{number}", h.ViewBus).Methods("GET")
	router.HandleFunc("/buses/{number}", h.RemoveBus).Methods("DELETE")

	// Passenger endpoints
	router.HandleFunc("/passengers/{order}", h.ViewPassenger).Methods("GET")
	router.HandleFunc("/passengers/{seat}/message", h.MessagePassenger).Methods("POST")

	// Live map endpoints
	router.HandleFunc("/map/markers", h.MapMarkers).Methods("GET")
	router.HandleFunc("/map/nearby", h.Nearby).Methods("GET")

	router.HandleFunc("/settings/theme", h.ToggleTheme).Methods("POST")
	router.HandleFunc("/export", h.Export).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/health", h.Health).Methods("GET")

	// Add CORS support
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	stdLog := zap.NewStdLog(logger)
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(stdLog))
	return handlers.CombinedLoggingHandler(stdLog.Writer(), recovery(cors(router)))
}
