package domain_test

import (
	"errors"
	"testing"

	"travellog/internal/modules/navigation/domain"
	apperrors "travellog/internal/platform/errors"
)

func TestMachineStartsOnTrips(t *testing.T) {
	t.Parallel()
	m, err := domain.NewMachine(domain.ScreenTrips)
	if err != nil {
		t.Fatalf("new machine: %v", err)
	}
	if m.Current() != domain.ScreenTrips {
		t.Fatalf("expected trips, got %s", m.Current())
	}
}

func TestEveryScreenReachableFromEveryScreen(t *testing.T) {
	t.Parallel()
	for _, from := range domain.Screens() {
		for _, to := range domain.Screens() {
			m, _ := domain.NewMachine(from)
			ev, err := domain.EventFor(to)
			if err != nil {
				t.Fatalf("event for %s: %v", to, err)
			}
			tr, err := m.Fire(ev)
			if err != nil {
				t.Fatalf("%s -> %s: %v", from, to, err)
			}
			if tr.From != from || tr.To != to || m.Current() != to {
				t.Fatalf("%s -> %s: got transition %+v, current %s", from, to, tr, m.Current())
			}
		}
	}
}

func TestUnknownEventLeavesState(t *testing.T) {
	t.Parallel()
	m, _ := domain.NewMachine(domain.ScreenDetail)
	if _, err := m.Fire("goSettings"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if m.Current() != domain.ScreenDetail {
		t.Fatalf("state changed on unknown event")
	}
}

func TestTransitionEnteredLeft(t *testing.T) {
	t.Parallel()
	tr := domain.Transition{From: domain.ScreenAdd, To: domain.ScreenTrips}
	if !tr.Left(domain.ScreenAdd) || tr.Entered(domain.ScreenAdd) || !tr.Entered(domain.ScreenTrips) {
		t.Fatalf("unexpected entered/left for %+v", tr)
	}
	self := domain.Transition{From: domain.ScreenAdd, To: domain.ScreenAdd}
	if self.Left(domain.ScreenAdd) || self.Entered(domain.ScreenAdd) {
		t.Fatalf("self transition neither enters nor leaves")
	}
}

func TestParseScreen(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Screen{
		"trips":    domain.ScreenTrips,
		"home":     domain.ScreenTrips,
		" Detail ": domain.ScreenDetail,
		"timeline": domain.ScreenTimeline,
		"add":      domain.ScreenAdd,
	}
	for in, want := range cases {
		got, err := domain.ParseScreen(in)
		if err != nil || got != want {
			t.Fatalf("parse %q: got %s, %v", in, got, err)
		}
	}
	if _, err := domain.ParseScreen("settings"); err == nil {
		t.Fatalf("unknown screen must fail")
	}
}
