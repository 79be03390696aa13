package dto

import "travellog/internal/platform/geo"

type DraftInput struct {
	Title      string
	Date       string
	Notes      string
	Thumbnail  string
	Coordinate *geo.Coordinate
}

type TripOutput struct {
	ID         string
	Title      string
	Date       string
	Notes      string
	Thumbnail  string
	Coordinate *geo.Coordinate
}

type CurrentOutput struct {
	Trip     TripOutput
	Selected bool
}

type WeatherOutput struct {
	TempC       int
	Description string
	Icon        string
}
