package in

import (
	"context"

	"travellog/internal/modules/trip/dto"
	tripin "travellog/internal/modules/trip/port/in"
)

type CLIHandler struct {
	usecase tripin.Usecase
}

func NewCLIHandler(usecase tripin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) NewDraft(ctx context.Context) dto.DraftInput {
	return h.usecase.NewDraft(ctx)
}

func (h CLIHandler) Seed(ctx context.Context, n int) error {
	return h.usecase.Seed(ctx, n)
}

func (h CLIHandler) Commit(ctx context.Context, input dto.DraftInput) (dto.TripOutput, error) {
	return h.usecase.Commit(ctx, input)
}

func (h CLIHandler) Select(ctx context.Context, id string) error {
	return h.usecase.Select(ctx, id)
}

func (h CLIHandler) Current(ctx context.Context) (dto.CurrentOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) ListTrips(ctx context.Context) ([]dto.TripOutput, error) {
	return h.usecase.ListTrips(ctx)
}

func (h CLIHandler) Weather(ctx context.Context, trip dto.TripOutput) (dto.WeatherOutput, bool) {
	return h.usecase.Weather(ctx, trip)
}
