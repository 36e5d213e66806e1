// Package dashboard is the command and navigation layer of the FoodOnBus
// admin dashboard. Every command mutates the shared store, collects the
// notices to show and re-renders the fragments that are currently visible.
package dashboard

import (
	"context"
	"errors"
	"html/template"
	"sync"

	"foodonbus-dashboard/mapsim"
	"foodonbus-dashboard/metrics"
	"foodonbus-dashboard/models"
	"foodonbus-dashboard/store"
	"foodonbus-dashboard/views"

	"go.uber.org/zap"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Options struct {
	Store     *store.Store
	Renderer  *views.Renderer
	Simulator *mapsim.Simulator
	Notifier  Notifier
	Logger    *zap.Logger

	TrackZoom      int
	MaxRetries     int
	ExportFilename string
}

// Dashboard serialises commands and page loads: one runs at a time, so each
// mutation and the re-render that follows it are atomic to the user.
type Dashboard struct {
	ctx  context.Context
	opts Options

	mu     sync.Mutex
	active Page
	theme  string
}

// New returns a dashboard showing the overview. ctx bounds the lifetime of
// the live map ticker.
func New(ctx context.Context, opts Options) *Dashboard {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{Logger: opts.Logger}
	}
	if opts.TrackZoom == 0 {
		opts.TrackZoom = 12
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 5
	}
	if opts.ExportFilename == "" {
		opts.ExportFilename = "foodonbus_db.json"
	}
	return &Dashboard{ctx: ctx, opts: opts, active: PageOverview, theme: ThemeDark}
}

// Result is what a command or navigation hands back to the caller.
type Result struct {
	// Page is the active page after the command.
	Page    Page
	Notices []string
	// Fragments holds freshly rendered markup keyed by fragment name; only
	// pages that are currently visible are included.
	Fragments map[string]template.HTML
	// Data carries command specific output, e.g. a tracked position.
	Data any
	// Err is models.ErrNotFound or models.ErrUserCancelled when the command
	// was aborted, nil otherwise.
	Err error
}

func (r *Result) notify(msg string) {
	r.Notices = append(r.Notices, msg)
}

func (d *Dashboard) Active() Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

func (d *Dashboard) Theme() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.theme
}

func (d *Dashboard) newResult() *Result {
	return &Result{Page: d.active, Fragments: make(map[string]template.HTML)}
}

// refresh re-renders each of pages that is the active page.
func (d *Dashboard) refresh(res *Result, pages ...Page) {
	for _, p := range pages {
		if p != d.active {
			continue
		}
		html, err := d.load(p)
		if err != nil {
			d.opts.Logger.Error("Failed to render page", zap.String("page", string(p)), zap.Error(err))
			continue
		}
		res.Fragments[string(p)] = html
	}
}

// finish forwards notices, records the outcome and returns the result.
func (d *Dashboard) finish(command string, res *Result) Result {
	for _, n := range res.Notices {
		d.opts.Notifier.Notify(n)
	}
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(res.Err, models.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case errors.Is(res.Err, models.ErrUserCancelled):
		outcome = metrics.OutcomeCancelled
	case res.Err != nil:
		outcome = metrics.OutcomeRejected
	}
	metrics.Commands.WithLabelValues(command, outcome).Inc()
	d.opts.Logger.Debug("Command handled",
		zap.String("command", command),
		zap.String("outcome", outcome),
		zap.String("page", string(res.Page)))
	return *res
}
