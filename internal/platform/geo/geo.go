// Package geo holds the WGS 84 primitives shared by trips, the capture
// protocol and the map surface.
package geo

import (
	"fmt"
	"math"

	apperrors "travellog/internal/platform/errors"
)

const (
	// PointDelta is the span shown around a single known point.
	PointDelta = 0.02
	// OverviewDelta is the span shown when no point is known yet.
	OverviewDelta = 0.2

	minDelta = 0.0005
	maxDelta = 90.0
)

// Coordinate is a WGS 84 point.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) || math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return fmt.Errorf("coordinate must be finite: %w", apperrors.ErrInvalidInput)
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %.6f out of range: %w", c.Latitude, apperrors.ErrInvalidInput)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %.6f out of range: %w", c.Longitude, apperrors.ErrInvalidInput)
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// Ptr returns a pointer to a copy of c. Optional coordinates are pointers so
// that "absent" never collapses into (0, 0).
func (c Coordinate) Ptr() *Coordinate {
	return &c
}

// Clone copies an optional coordinate.
func Clone(c *Coordinate) *Coordinate {
	if c == nil {
		return nil
	}
	return c.Ptr()
}

// Region is the visible window of a map surface.
type Region struct {
	Center         Coordinate
	LatitudeDelta  float64
	LongitudeDelta float64
}

// RegionAround zooms onto c.
func RegionAround(c Coordinate) Region {
	return Region{Center: c, LatitudeDelta: PointDelta, LongitudeDelta: PointDelta}
}

// Overview is the wide region used before any point is known.
func Overview(center Coordinate) Region {
	return Region{Center: center, LatitudeDelta: OverviewDelta, LongitudeDelta: OverviewDelta}
}

// Zoom scales both deltas by factor; factor < 1 zooms in.
func (r Region) Zoom(factor float64) Region {
	r.LatitudeDelta = clampDelta(r.LatitudeDelta * factor)
	r.LongitudeDelta = clampDelta(r.LongitudeDelta * factor)
	return r
}

// Pan moves the center by the given fractions of the visible span.
func (r Region) Pan(latFrac, lonFrac float64) Region {
	r.Center = Normalize(Coordinate{
		Latitude:  r.Center.Latitude + latFrac*r.LatitudeDelta,
		Longitude: r.Center.Longitude + lonFrac*r.LongitudeDelta,
	})
	return r
}

// Contains reports whether c falls inside the visible window.
func (r Region) Contains(c Coordinate) bool {
	return math.Abs(c.Latitude-r.Center.Latitude) <= r.LatitudeDelta/2 &&
		math.Abs(c.Longitude-r.Center.Longitude) <= r.LongitudeDelta/2
}

// Normalize clamps latitude and wraps longitude into range.
func Normalize(c Coordinate) Coordinate {
	c.Latitude = math.Max(-90, math.Min(90, c.Latitude))
	lon := math.Mod(c.Longitude+180, 360)
	if lon < 0 {
		lon += 360
	}
	c.Longitude = lon - 180
	return c
}

func clampDelta(d float64) float64 {
	return math.Max(minDelta, math.Min(maxDelta, d))
}
