package out

import (
	"context"
	"fmt"

	captureout "travellog/internal/modules/capture/port/out"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

// StaticPositioning reports a configured device coordinate. Without one it
// behaves like a device where location access was declined.
type StaticPositioning struct {
	device *geo.Coordinate
}

func NewStaticPositioning(device *geo.Coordinate) captureout.Positioning {
	return &StaticPositioning{device: geo.Clone(device)}
}

func (p *StaticPositioning) RequestPermission(context.Context) (captureout.Permission, error) {
	if p.device == nil {
		return captureout.PermissionDenied, nil
	}
	return captureout.PermissionGranted, nil
}

func (p *StaticPositioning) CurrentCoordinate(ctx context.Context) (geo.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return geo.Coordinate{}, err
	}
	if p.device == nil {
		return geo.Coordinate{}, fmt.Errorf("no device location configured: %w", apperrors.ErrPermissionDenied)
	}
	return *p.device, nil
}
