package in

import (
	"context"

	"travellog/internal/modules/trip/dto"
)

type Usecase interface {
	NewDraft(ctx context.Context) dto.DraftInput
	Seed(ctx context.Context, n int) error
	Commit(ctx context.Context, input dto.DraftInput) (dto.TripOutput, error)
	Select(ctx context.Context, id string) error
	Current(ctx context.Context) (dto.CurrentOutput, error)
	ListTrips(ctx context.Context) ([]dto.TripOutput, error)
	Weather(ctx context.Context, trip dto.TripOutput) (dto.WeatherOutput, bool)
}
