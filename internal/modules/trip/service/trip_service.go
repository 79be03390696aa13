package service

import (
	"context"
	"fmt"

	"travellog/internal/modules/trip/domain"
	tripout "travellog/internal/modules/trip/port/out"
	"travellog/internal/platform/clock"
	"travellog/internal/platform/id"
)

type TripService struct {
	clock    clock.Clock
	idGen    id.Generator
	store    tripout.TripStore
	defaults domain.Defaults
}

func NewTripService(clock clock.Clock, idGen id.Generator, store tripout.TripStore, defaults domain.Defaults) *TripService {
	return &TripService{clock: clock, idGen: idGen, store: store, defaults: defaults}
}

func (s *TripService) NewDraft() domain.Draft {
	return domain.NewDraft(s.clock.Now())
}

// Commit validates the draft and prepends the resulting trip. A draft that
// fails validation never reaches the store.
func (s *TripService) Commit(ctx context.Context, draft domain.Draft) (domain.Trip, error) {
	if err := draft.Validate(); err != nil {
		return domain.Trip{}, err
	}
	trip, err := domain.Commit(draft, s.idGen.New(), s.defaults)
	if err != nil {
		return domain.Trip{}, err
	}
	if err := s.store.Prepend(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("store trip: %w", err)
	}
	return trip, nil
}

// Seed inserts n demo trips so that demo 0 (today) ends up first.
func (s *TripService) Seed(ctx context.Context, n int) error {
	if n < 0 {
		return fmt.Errorf("seed count must be non-negative")
	}
	today := s.clock.Now()
	for i := n - 1; i >= 0; i-- {
		if err := s.store.Prepend(ctx, domain.Demo(i, s.idGen.New(), today, s.defaults)); err != nil {
			return fmt.Errorf("seed trip %d: %w", i, err)
		}
	}
	return nil
}
