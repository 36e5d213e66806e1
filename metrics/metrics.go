package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeCancelled = "cancelled"
	OutcomeRejected  = "rejected"
)

var (
	Commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_commands_total",
		Help: "Dashboard commands handled, by command and outcome",
	}, []string{"command", "outcome"})

	PageViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_page_views_total",
		Help: "Pages rendered through navigation",
	}, []string{"page"})

	SimulatorTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "map_simulator_ticks_total",
		Help: "Marker perturbation ticks run by the live map simulator",
	})

	Markers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "map_simulator_markers",
		Help: "Markers placed on the live map",
	})

	SinkErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "map_position_sink_errors_total",
		Help: "Failed marker position publishes, by sink",
	}, []string{"sink"})
)
