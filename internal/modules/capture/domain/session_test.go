package domain_test

import (
	"errors"
	"math"
	"testing"

	"travellog/internal/modules/capture/domain"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

var (
	pointA = geo.Coordinate{Latitude: 59.3293, Longitude: 18.0686}
	pointB = geo.Coordinate{Latitude: 55.6761, Longitude: 12.5683}
)

func TestConfirmWithoutPinReportsEmptySelection(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(nil)
	if err := s.OpenPicker(); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Confirm(); !errors.Is(err, apperrors.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if s.Phase() != domain.PhasePickerOpen {
		t.Fatalf("picker must stay open, phase %s", s.Phase())
	}
	if s.DraftCoordinate() != nil {
		t.Fatalf("draft coordinate must stay unset")
	}
}

func TestLastLongPressWins(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(nil)
	_ = s.OpenPicker()
	_ = s.LongPress(pointA)
	_ = s.LongPress(pointB)
	got, err := s.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got != pointB || *s.DraftCoordinate() != pointB {
		t.Fatalf("expected B, got %v / %v", got, s.DraftCoordinate())
	}
	if s.Phase() != domain.PhaseIdle || s.ModalPin() != nil {
		t.Fatalf("confirm must close the picker")
	}
}

func TestCancelKeepsPrePickerValue(t *testing.T) {
	t.Parallel()
	unset := domain.NewSession(nil)
	_ = unset.OpenPicker()
	_ = unset.LongPress(pointA)
	if err := unset.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if unset.DraftCoordinate() != nil {
		t.Fatalf("unset draft must stay unset after cancel")
	}

	set := domain.NewSession(pointB.Ptr())
	_ = set.OpenPicker()
	_ = set.LongPress(pointA)
	_ = set.Cancel()
	if *set.DraftCoordinate() != pointB {
		t.Fatalf("draft must keep B after cancel, got %v", set.DraftCoordinate())
	}
}

func TestModalPinSeededFromDraftEachOpen(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(pointA.Ptr())
	_ = s.OpenPicker()
	if pin := s.ModalPin(); pin == nil || *pin != pointA {
		t.Fatalf("modal pin must start at draft, got %v", pin)
	}
	_ = s.LongPress(pointB)
	_ = s.Cancel()
	_ = s.OpenPicker()
	if pin := s.ModalPin(); pin == nil || *pin != pointA {
		t.Fatalf("reopened picker must reseed from draft, got %v", pin)
	}
	if got, err := s.Confirm(); err != nil || got != pointA {
		t.Fatalf("confirming the seeded pin keeps A, got %v %v", got, err)
	}
}

func TestPickerEventsWhileClosed(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(nil)
	if err := s.LongPress(pointA); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("long press on closed picker: %v", err)
	}
	if _, err := s.Confirm(); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("confirm on closed picker: %v", err)
	}
	if err := s.Cancel(); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("cancel on closed picker: %v", err)
	}
	_ = s.OpenPicker()
	if err := s.OpenPicker(); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("double open: %v", err)
	}
	if err := s.LongPress(geo.Coordinate{Latitude: math.NaN()}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("invalid pin must be rejected: %v", err)
	}
	if s.ModalPin() != nil {
		t.Fatalf("rejected pin must not be stored")
	}
}

func TestResolveCurrentSuccessAndFailure(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(pointA.Ptr())
	ticket := s.RequestCurrent()
	if s.Phase() != domain.PhaseAcquiring {
		t.Fatalf("expected acquiring, got %s", s.Phase())
	}
	applied, err := s.ResolveCurrent(ticket, geo.Coordinate{}, apperrors.ErrPermissionDenied)
	if !applied || !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected applied denial, got %v %v", applied, err)
	}
	if *s.DraftCoordinate() != pointA || s.Phase() != domain.PhaseIdle {
		t.Fatalf("denial must leave draft and return to idle")
	}

	ticket = s.RequestCurrent()
	if applied, err := s.ResolveCurrent(ticket, pointB, nil); !applied || err != nil {
		t.Fatalf("resolve: %v %v", applied, err)
	}
	if *s.DraftCoordinate() != pointB {
		t.Fatalf("expected B after positioning")
	}
}

func TestSupersededTicketIsIgnored(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(nil)
	old := s.RequestCurrent()
	latest := s.RequestCurrent()
	if applied, _ := s.ResolveCurrent(old, pointA, nil); applied {
		t.Fatalf("superseded ticket must be ignored")
	}
	if s.DraftCoordinate() != nil || !s.Acquiring() {
		t.Fatalf("stale result must not change state")
	}
	if applied, _ := s.ResolveCurrent(latest, pointB, nil); !applied {
		t.Fatalf("latest ticket must apply")
	}
	if applied, _ := s.ResolveCurrent(latest, pointA, nil); applied {
		t.Fatalf("a ticket applies once")
	}
}

func TestPositionDuringOpenPickerLeavesModalPin(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(nil)
	ticket := s.RequestCurrent()
	_ = s.OpenPicker()
	_ = s.LongPress(pointA)
	if _, err := s.ResolveCurrent(ticket, pointB, nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if *s.DraftCoordinate() != pointB || *s.ModalPin() != pointA {
		t.Fatalf("position updates the draft only: draft %v pin %v", s.DraftCoordinate(), s.ModalPin())
	}
	if s.Phase() != domain.PhasePickerOpen {
		t.Fatalf("picker stays open")
	}
	_ = s.Cancel()
	if *s.DraftCoordinate() != pointB {
		t.Fatalf("cancel keeps the positioned draft")
	}
}

func TestInvalidPositionIsUnavailable(t *testing.T) {
	t.Parallel()
	s := domain.NewSession(nil)
	ticket := s.RequestCurrent()
	_, err := s.ResolveCurrent(ticket, geo.Coordinate{Latitude: 200}, nil)
	if !errors.Is(err, apperrors.ErrCapabilityUnavailable) {
		t.Fatalf("expected ErrCapabilityUnavailable, got %v", err)
	}
	if s.DraftCoordinate() != nil {
		t.Fatalf("invalid position must not be stored")
	}
}
