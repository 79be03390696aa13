package out

import (
	"context"

	"travellog/internal/modules/trip/domain"
	"travellog/internal/platform/geo"
)

// TripStore keeps trips newest-first by insertion.
type TripStore interface {
	Prepend(ctx context.Context, trip domain.Trip) error
	FindByID(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Len(ctx context.Context) (int, error)
}

type Weather struct {
	TempC       int
	Description string
	Icon        string
}

type WeatherSource interface {
	Current(ctx context.Context, at geo.Coordinate) (Weather, error)
}
