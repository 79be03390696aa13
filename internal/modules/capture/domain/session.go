// Package domain models the coordinate capture protocol of one Add flow: a
// draft coordinate fed either by the positioning capability or by a map
// pick that only takes effect on confirm.
package domain

import (
	"fmt"

	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAcquiring
	PhasePickerOpen
)

func (p Phase) String() string {
	switch p {
	case PhaseAcquiring:
		return "acquiring"
	case PhasePickerOpen:
		return "picker-open"
	default:
		return "idle"
	}
}

// Ticket identifies one positioning request. Zero is never issued.
type Ticket uint64

// Session is not safe for concurrent use. Capability results must be handed
// back on the same goroutine that owns the session.
type Session struct {
	draft      *geo.Coordinate
	pickerOpen bool
	modalPin   *geo.Coordinate
	pending    Ticket
	issued     Ticket
}

func NewSession(initial *geo.Coordinate) *Session {
	return &Session{draft: geo.Clone(initial)}
}

// Phase reports picker-open first: acquisition may continue underneath an
// open picker.
func (s *Session) Phase() Phase {
	switch {
	case s.pickerOpen:
		return PhasePickerOpen
	case s.pending != 0:
		return PhaseAcquiring
	default:
		return PhaseIdle
	}
}

func (s *Session) DraftCoordinate() *geo.Coordinate { return geo.Clone(s.draft) }
func (s *Session) ModalPin() *geo.Coordinate        { return geo.Clone(s.modalPin) }
func (s *Session) PickerOpen() bool                 { return s.pickerOpen }
func (s *Session) Acquiring() bool                  { return s.pending != 0 }

// RequestCurrent starts an acquisition. A newer request supersedes any
// outstanding one.
func (s *Session) RequestCurrent() Ticket {
	s.issued++
	s.pending = s.issued
	return s.pending
}

// ResolveCurrent applies a positioning result. It reports false when the
// ticket is stale, in which case nothing changes. A failed result leaves the
// draft coordinate as it was and returns the failure.
func (s *Session) ResolveCurrent(t Ticket, c geo.Coordinate, failure error) (bool, error) {
	if t == 0 || t != s.pending {
		return false, nil
	}
	s.pending = 0
	if failure != nil {
		return true, failure
	}
	if err := c.Validate(); err != nil {
		return true, fmt.Errorf("positioning returned %v: %w", err, apperrors.ErrCapabilityUnavailable)
	}
	s.draft = c.Ptr()
	return true, nil
}

// OpenPicker shows the map with a modal pin seeded from the draft coordinate.
func (s *Session) OpenPicker() error {
	if s.pickerOpen {
		return fmt.Errorf("picker already open: %w", apperrors.ErrInvalidState)
	}
	s.pickerOpen = true
	s.modalPin = geo.Clone(s.draft)
	return nil
}

// LongPress replaces the modal pin. There is only ever one pin.
func (s *Session) LongPress(c geo.Coordinate) error {
	if !s.pickerOpen {
		return fmt.Errorf("picker is closed: %w", apperrors.ErrInvalidState)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	s.modalPin = c.Ptr()
	return nil
}

// Confirm commits the modal pin to the draft coordinate and closes the
// picker. Without a pin the picker stays open.
func (s *Session) Confirm() (geo.Coordinate, error) {
	if !s.pickerOpen {
		return geo.Coordinate{}, fmt.Errorf("picker is closed: %w", apperrors.ErrInvalidState)
	}
	if s.modalPin == nil {
		return geo.Coordinate{}, apperrors.ErrEmptySelection
	}
	picked := *s.modalPin
	s.draft = picked.Ptr()
	s.pickerOpen = false
	s.modalPin = nil
	return picked, nil
}

// Cancel drops the modal pin and closes the picker.
func (s *Session) Cancel() error {
	if !s.pickerOpen {
		return fmt.Errorf("picker is closed: %w", apperrors.ErrInvalidState)
	}
	s.pickerOpen = false
	s.modalPin = nil
	return nil
}
