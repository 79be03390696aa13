package service

import (
	"context"
	"errors"
	"fmt"

	capturein "travellog/internal/modules/capture/port/in"
	captureout "travellog/internal/modules/capture/port/out"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

type CapabilityService struct {
	positioning captureout.Positioning
	photos      captureout.PhotoLibrary
}

func NewCapabilityService(positioning captureout.Positioning, photos captureout.PhotoLibrary) *CapabilityService {
	return &CapabilityService{positioning: positioning, photos: photos}
}

var _ capturein.Capabilities = (*CapabilityService)(nil)

func (s *CapabilityService) Locate(ctx context.Context) (geo.Coordinate, error) {
	if s.positioning == nil {
		return geo.Coordinate{}, fmt.Errorf("location: %w", apperrors.ErrCapabilityUnavailable)
	}
	if err := granted(ctx, "location", s.positioning.RequestPermission); err != nil {
		return geo.Coordinate{}, err
	}
	c, err := s.positioning.CurrentCoordinate(ctx)
	if err != nil {
		return geo.Coordinate{}, classify("location", err)
	}
	return c, nil
}

// PhotoChoices lists the library newest first. An empty library is not an
// error at this level.
func (s *CapabilityService) PhotoChoices(ctx context.Context) ([]string, error) {
	if s.photos == nil {
		return nil, fmt.Errorf("media library: %w", apperrors.ErrCapabilityUnavailable)
	}
	if err := granted(ctx, "media library", s.photos.RequestPermission); err != nil {
		return nil, err
	}
	refs, err := s.photos.Images(ctx)
	if err != nil {
		return nil, classify("media library", err)
	}
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = string(r)
	}
	return out, nil
}

func granted(ctx context.Context, what string, request func(context.Context) (captureout.Permission, error)) error {
	perm, err := request(ctx)
	if err != nil {
		return classify(what, err)
	}
	if perm != captureout.PermissionGranted {
		return fmt.Errorf("%s access is required: %w", what, apperrors.ErrPermissionDenied)
	}
	return nil
}

func classify(what string, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrPermissionDenied), errors.Is(err, apperrors.ErrCapabilityUnavailable):
		return fmt.Errorf("%s: %w", what, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", what, apperrors.ErrCancelled)
	default:
		return fmt.Errorf("%s: %v: %w", what, err, apperrors.ErrCapabilityUnavailable)
	}
}
