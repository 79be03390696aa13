package out

import (
	"context"
	"math"
	"math/rand/v2"

	tripout "travellog/internal/modules/trip/port/out"
	"travellog/internal/platform/geo"
)

// MockWeather stands in for a forecast service: 5-10 C and cloudy, stable
// for a given coordinate so the detail screen does not flicker on redraw.
type MockWeather struct{}

func NewMockWeather() tripout.WeatherSource {
	return MockWeather{}
}

func (MockWeather) Current(_ context.Context, at geo.Coordinate) (tripout.Weather, error) {
	r := rand.New(rand.NewPCG(math.Float64bits(at.Latitude), math.Float64bits(at.Longitude)))
	return tripout.Weather{
		TempC:       5 + r.IntN(6),
		Description: "cloudy",
		Icon:        "☁️",
	}, nil
}
