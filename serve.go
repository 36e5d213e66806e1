package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodonbus-dashboard/api"
	"foodonbus-dashboard/cache"
	"foodonbus-dashboard/config"
	"foodonbus-dashboard/dashboard"
	"foodonbus-dashboard/geohash"
	"foodonbus-dashboard/logging"
	"foodonbus-dashboard/mapsim"
	"foodonbus-dashboard/store"
	"foodonbus-dashboard/views"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reloads := make(chan *config.Config, 1)
	cfg, err := config.InitConfig(configPath, func(next *config.Config) {
		// Keep only the newest pending reload.
		select {
		case <-reloads:
		default:
		}
		reloads <- next
	})
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, atom, err := logging.New(level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Only the log level is reloaded; everything else needs a restart.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case next := <-reloads:
				if verbose {
					continue
				}
				lvl, err := logging.ParseLevel(next.Log.Level)
				if err != nil {
					logger.Warn("Ignoring invalid log level", zap.Error(err))
					continue
				}
				atom.SetLevel(lvl)
				logger.Info("Configuration reloaded", zap.String("level", lvl.String()))
			}
		}
	}()

	idx, err := geohash.NewIndex(geohash.GeoIndexingTechnique(cfg.Map.Index), cfg.Map.GeohashPrecision)
	if err != nil {
		return err
	}

	var sinks []mapsim.PositionSink
	if cfg.Redis.Enabled {
		rdb, err := cache.InitializeRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		sinks = append(sinks, cache.NewMarkerCache(rdb, cfg.Map.GeohashPrecision))
		logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	sim := mapsim.New(mapsim.Options{
		Interval: cfg.Map.TickInterval,
		Jitter:   cfg.Map.Jitter,
		View: mapsim.View{
			Lat:     cfg.Map.CenterLat,
			Lng:     cfg.Map.CenterLng,
			Zoom:    cfg.Map.Zoom,
			TileURL: cfg.Map.TileURL,
		},
		Index:  idx,
		Sinks:  sinks,
		Logger: logger.Named("mapsim"),
	})

	renderer, err := views.New()
	if err != nil {
		return err
	}

	dash := dashboard.New(ctx, dashboard.Options{
		Store:          store.NewSeeded(),
		Renderer:       renderer,
		Simulator:      sim,
		Logger:         logger.Named("dashboard"),
		TrackZoom:      cfg.Map.TrackZoom,
		MaxRetries:     cfg.Map.MaxRetries,
		ExportFilename: cfg.Export.Filename,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.RegisterRoutes(api.NewHandler(dash, logger.Named("api")), logger.Named("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr), zap.String("index", cfg.Map.Index))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	cancel()
	if done := sim.Done(); done != nil {
		<-done
	}
	return nil
}
