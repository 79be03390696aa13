package in

import (
	"context"

	"travellog/internal/platform/geo"
)

// Capabilities runs the device capabilities and folds their failures into
// apperrors.ErrPermissionDenied or apperrors.ErrCapabilityUnavailable.
type Capabilities interface {
	Locate(ctx context.Context) (geo.Coordinate, error)
	PhotoChoices(ctx context.Context) ([]string, error)
}
