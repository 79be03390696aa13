package out

import (
	"context"
	"fmt"

	"travellog/internal/modules/trip/domain"
	tripout "travellog/internal/modules/trip/port/out"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

// MemoryTripStore keeps trips in a slice, newest first.
type MemoryTripStore struct {
	trips []domain.Trip
}

func NewMemoryTripStore() tripout.TripStore {
	return &MemoryTripStore{}
}

func (s *MemoryTripStore) Prepend(_ context.Context, trip domain.Trip) error {
	s.trips = append([]domain.Trip{copyTrip(trip)}, s.trips...)
	return nil
}

func (s *MemoryTripStore) FindByID(_ context.Context, id string) (domain.Trip, error) {
	for _, t := range s.trips {
		if t.ID == id {
			return copyTrip(t), nil
		}
	}
	return domain.Trip{}, fmt.Errorf("trip %s: %w", id, apperrors.ErrNotFound)
}

func (s *MemoryTripStore) List(_ context.Context) ([]domain.Trip, error) {
	out := make([]domain.Trip, len(s.trips))
	for i, t := range s.trips {
		out[i] = copyTrip(t)
	}
	return out, nil
}

func (s *MemoryTripStore) Len(_ context.Context) (int, error) {
	return len(s.trips), nil
}

func copyTrip(t domain.Trip) domain.Trip {
	t.Coordinate = geo.Clone(t.Coordinate)
	return t
}
