package out

import (
	"context"

	"travellog/internal/platform/geo"
)

type Permission int

const (
	PermissionDenied Permission = iota
	PermissionGranted
)

// Positioning is the device location capability.
type Positioning interface {
	RequestPermission(ctx context.Context) (Permission, error)
	CurrentCoordinate(ctx context.Context) (geo.Coordinate, error)
}

// ImageRef is an opaque image URI.
type ImageRef string

// PhotoLibrary lists the images a user may attach to a trip.
type PhotoLibrary interface {
	RequestPermission(ctx context.Context) (Permission, error)
	Images(ctx context.Context) ([]ImageRef, error)
}
