package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"travellog/internal/controller"
	captureoutadapter "travellog/internal/modules/capture/adapter/out"
	captureout "travellog/internal/modules/capture/port/out"
	captureservice "travellog/internal/modules/capture/service"
	navdomain "travellog/internal/modules/navigation/domain"
	tripinadapter "travellog/internal/modules/trip/adapter/in"
	tripoutadapter "travellog/internal/modules/trip/adapter/out"
	tripdomain "travellog/internal/modules/trip/domain"
	tripin "travellog/internal/modules/trip/port/in"
	tripout "travellog/internal/modules/trip/port/out"
	tripservice "travellog/internal/modules/trip/service"
	tripusecase "travellog/internal/modules/trip/usecase"
	"travellog/internal/platform/clock"
	"travellog/internal/platform/config"
	"travellog/internal/platform/id"
	"travellog/internal/platform/logging"
	uiapp "travellog/internal/ui/app"
)

type App struct {
	Config       config.Config
	Logger       *slog.Logger
	Trips        tripin.Usecase
	TripCLI      tripinadapter.CLIHandler
	Capabilities *captureservice.CapabilityService

	closers []io.Closer
}

// New wires the application from cfg and seeds the store with
// cfg.SeedCount demo trips.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	store, err := newTripStore(ctx, cfg.Store, app)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	defaults := tripdomain.Defaults{Coordinate: cfg.FallbackCoordinate, Thumbnail: cfg.PlaceholderThumbnail}
	tripSvc := tripservice.NewTripService(clock.SystemClock{}, id.UUIDv7{}, store, defaults)
	tripUC := tripusecase.NewInteractor(tripSvc, store, tripoutadapter.NewMockWeather(), logger)
	if err := tripUC.Seed(ctx, cfg.SeedCount); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("seed trips: %w", err)
	}
	app.Trips = tripUC
	app.TripCLI = tripinadapter.NewCLIHandler(tripUC)

	app.Capabilities = captureservice.NewCapabilityService(
		newPositioning(cfg.Positioning),
		captureoutadapter.NewDirectoryPhotoLibrary(cfg.PhotosDir),
	)
	logger.Info("travellog ready",
		"store", cfg.Store,
		"seed", cfg.SeedCount,
		"positioning", cfg.Positioning.Provider,
		"photos", cfg.PhotosDir,
	)
	return app, nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newTripStore(ctx context.Context, kind string, app *App) (tripout.TripStore, error) {
	switch kind {
	case config.StoreSQLite:
		store, err := tripoutadapter.NewSQLiteTripStore(ctx)
		if err != nil {
			return nil, fmt.Errorf("new sqlite trip store: %w", err)
		}
		app.closers = append(app.closers, store)
		return store, nil
	default:
		return tripoutadapter.NewMemoryTripStore(), nil
	}
}

func newPositioning(cfg config.Positioning) captureout.Positioning {
	switch cfg.Provider {
	case config.PositioningIPAPI:
		return captureoutadapter.NewIPAPIPositioning(cfg.Endpoint, cfg.Timeout)
	case config.PositioningNone:
		return captureoutadapter.NewStaticPositioning(nil)
	default:
		return captureoutadapter.NewStaticPositioning(cfg.Device)
	}
}

// NewController builds the screen controller on start and returns the
// capability requests it issued.
func NewController(ctx context.Context, app *App, start navdomain.Screen) (*controller.Controller, []controller.Request, error) {
	return controller.New(ctx, app.Trips, start, controller.Options{
		Fallback:        app.Config.FallbackCoordinate,
		PrefillLocation: app.Config.PrefillLocation,
	}, app.Logger)
}

func RunTUI(ctx context.Context, app *App, start navdomain.Screen) error {
	ctrl, pending, err := NewController(ctx, app, start)
	if err != nil {
		return err
	}
	model := uiapp.NewModel(ctrl, app.Capabilities, pending)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
