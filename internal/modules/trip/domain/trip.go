package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

// DateLayout is the conventional form of Trip.Date. The date is free text and
// is never parsed back.
const DateLayout = "2006-01-02"

// Trip is a committed, immutable record.
type Trip struct {
	ID         string
	Title      string
	Date       string
	Notes      string
	Thumbnail  string
	Coordinate *geo.Coordinate
}

// Draft is a trip still being edited inside the Add flow. It has no id.
type Draft struct {
	Title      string
	Date       string
	Notes      string
	Thumbnail  string
	Coordinate *geo.Coordinate
}

// Defaults fill the fields a draft may leave empty.
type Defaults struct {
	Coordinate geo.Coordinate
	Thumbnail  string
}

func NewDraft(now time.Time) Draft {
	return Draft{Date: now.Format(DateLayout)}
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("give your trip a title: %w", apperrors.ErrValidation)
	}
	if d.Coordinate != nil {
		if err := d.Coordinate.Validate(); err != nil {
			return fmt.Errorf("coordinate: %w", apperrors.ErrValidation)
		}
	}
	return nil
}

// Commit turns a valid draft into a Trip with the given id. Missing
// coordinate and thumbnail fall back to defaults.
func Commit(d Draft, id string, defaults Defaults) (Trip, error) {
	if err := d.Validate(); err != nil {
		return Trip{}, err
	}
	if strings.TrimSpace(id) == "" {
		return Trip{}, fmt.Errorf("id is required: %w", apperrors.ErrInvalidInput)
	}
	coordinate := geo.Clone(d.Coordinate)
	if coordinate == nil {
		coordinate = defaults.Coordinate.Ptr()
	}
	thumbnail := d.Thumbnail
	if strings.TrimSpace(thumbnail) == "" {
		thumbnail = defaults.Thumbnail
	}
	return Trip{
		ID:         id,
		Title:      strings.TrimSpace(d.Title),
		Date:       d.Date,
		Notes:      d.Notes,
		Thumbnail:  thumbnail,
		Coordinate: coordinate,
	}, nil
}

const (
	demoNotesEven = "City walk. Museum + coffee."
	demoNotesOdd  = "Sunset by the lake. Tried salmon soup."
)

// Demo builds the i-th demo trip: dated i days before today, alternating
// notes, shared thumbnail and coordinate.
func Demo(i int, id string, today time.Time, defaults Defaults) Trip {
	notes := demoNotesEven
	if i%2 == 1 {
		notes = demoNotesOdd
	}
	day := time.Date(today.Year(), today.Month(), today.Day()-i, 0, 0, 0, 0, today.Location())
	return Trip{
		ID:         id,
		Title:      fmt.Sprintf("Trip #%d", i+1),
		Date:       day.Format(DateLayout),
		Notes:      notes,
		Thumbnail:  defaults.Thumbnail,
		Coordinate: defaults.Coordinate.Ptr(),
	}
}
