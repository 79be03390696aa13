package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"travellog/internal/modules/trip/domain"
	"travellog/internal/modules/trip/dto"
	tripin "travellog/internal/modules/trip/port/in"
	tripout "travellog/internal/modules/trip/port/out"
	"travellog/internal/modules/trip/service"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

// Interactor owns the selection pointer on top of the trip store. It is not
// safe for concurrent use; the UI loop is its only caller.
type Interactor struct {
	svc      *service.TripService
	store    tripout.TripStore
	weather  tripout.WeatherSource
	logger   *slog.Logger
	selected string
}

func NewInteractor(svc *service.TripService, store tripout.TripStore, weather tripout.WeatherSource, logger *slog.Logger) tripin.Usecase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Interactor{svc: svc, store: store, weather: weather, logger: logger}
}

func (i *Interactor) NewDraft(context.Context) dto.DraftInput {
	return toDraftInput(i.svc.NewDraft())
}

func (i *Interactor) Seed(ctx context.Context, n int) error {
	if err := i.svc.Seed(ctx, n); err != nil {
		return err
	}
	i.logger.Debug("seeded demo trips", "count", n)
	return nil
}

func (i *Interactor) Commit(ctx context.Context, input dto.DraftInput) (dto.TripOutput, error) {
	trip, err := i.svc.Commit(ctx, toDraft(input))
	if err != nil {
		i.logger.Debug("commit rejected", "err", err)
		return dto.TripOutput{}, err
	}
	i.selected = trip.ID
	i.logger.Info("trip committed", "id", trip.ID, "title", trip.Title)
	return toOutput(trip), nil
}

func (i *Interactor) Select(ctx context.Context, id string) error {
	if _, err := i.store.FindByID(ctx, id); err != nil {
		return fmt.Errorf("select trip %s: %w", id, err)
	}
	i.selected = id
	return nil
}

// Current resolves the selected trip, falling back to the newest one.
// An empty store yields apperrors.ErrEmptyStore.
func (i *Interactor) Current(ctx context.Context) (dto.CurrentOutput, error) {
	if i.selected != "" {
		trip, err := i.store.FindByID(ctx, i.selected)
		if err == nil {
			return dto.CurrentOutput{Trip: toOutput(trip), Selected: true}, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return dto.CurrentOutput{}, err
		}
		i.selected = ""
	}
	trips, err := i.store.List(ctx)
	if err != nil {
		return dto.CurrentOutput{}, err
	}
	if len(trips) == 0 {
		return dto.CurrentOutput{}, apperrors.ErrEmptyStore
	}
	return dto.CurrentOutput{Trip: toOutput(trips[0])}, nil
}

func (i *Interactor) ListTrips(ctx context.Context) ([]dto.TripOutput, error) {
	trips, err := i.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TripOutput, 0, len(trips))
	for _, t := range trips {
		out = append(out, toOutput(t))
	}
	return out, nil
}

// Weather returns the placeholder readout for a trip, or false when the
// trip has no coordinate or the source fails.
func (i *Interactor) Weather(ctx context.Context, trip dto.TripOutput) (dto.WeatherOutput, bool) {
	if i.weather == nil || trip.Coordinate == nil {
		return dto.WeatherOutput{}, false
	}
	w, err := i.weather.Current(ctx, *trip.Coordinate)
	if err != nil {
		i.logger.Warn("weather unavailable", "trip", trip.ID, "err", err)
		return dto.WeatherOutput{}, false
	}
	return dto.WeatherOutput{TempC: w.TempC, Description: w.Description, Icon: w.Icon}, true
}

func toDraft(in dto.DraftInput) domain.Draft {
	return domain.Draft{
		Title:      in.Title,
		Date:       in.Date,
		Notes:      in.Notes,
		Thumbnail:  in.Thumbnail,
		Coordinate: geo.Clone(in.Coordinate),
	}
}

func toDraftInput(d domain.Draft) dto.DraftInput {
	return dto.DraftInput{
		Title:      d.Title,
		Date:       d.Date,
		Notes:      d.Notes,
		Thumbnail:  d.Thumbnail,
		Coordinate: d.Coordinate,
	}
}

func toOutput(t domain.Trip) dto.TripOutput {
	return dto.TripOutput{
		ID:         t.ID,
		Title:      t.Title,
		Date:       t.Date,
		Notes:      t.Notes,
		Thumbnail:  t.Thumbnail,
		Coordinate: geo.Clone(t.Coordinate),
	}
}
