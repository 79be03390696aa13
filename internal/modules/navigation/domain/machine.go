package domain

import (
	"fmt"
	"strings"

	apperrors "travellog/internal/platform/errors"
)

type Screen int

const (
	ScreenTrips Screen = iota
	ScreenAdd
	ScreenDetail
	ScreenTimeline
	screenCount
)

var screenNames = [screenCount]string{"trips", "add", "detail", "timeline"}

func (s Screen) String() string {
	if s < 0 || s >= screenCount {
		return fmt.Sprintf("screen(%d)", int(s))
	}
	return screenNames[s]
}

// Screens lists every screen in tab order.
func Screens() []Screen {
	return []Screen{ScreenTrips, ScreenAdd, ScreenDetail, ScreenTimeline}
}

// ParseScreen accepts a screen name; "home" is kept as an alias of trips.
func ParseScreen(name string) (Screen, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "home" {
		return ScreenTrips, nil
	}
	for i, candidate := range screenNames {
		if candidate == n {
			return Screen(i), nil
		}
	}
	return 0, fmt.Errorf("unknown screen %q: %w", name, apperrors.ErrInvalidInput)
}

type Event string

const (
	GoTrips    Event = "goTrips"
	GoAdd      Event = "goAdd"
	GoDetail   Event = "goDetail"
	GoTimeline Event = "goTimeline"
)

var targets = map[Event]Screen{
	GoTrips:    ScreenTrips,
	GoAdd:      ScreenAdd,
	GoDetail:   ScreenDetail,
	GoTimeline: ScreenTimeline,
}

// EventFor returns the event that leads to s.
func EventFor(s Screen) (Event, error) {
	for ev, target := range targets {
		if target == s {
			return ev, nil
		}
	}
	return "", fmt.Errorf("no event for %s: %w", s, apperrors.ErrInvalidInput)
}

// Transition records one step of the machine.
type Transition struct {
	From Screen
	To   Screen
}

// Left reports whether the step moved away from s.
func (t Transition) Left(s Screen) bool { return t.From == s && t.To != s }

// Entered reports whether the step moved onto s from elsewhere.
func (t Transition) Entered(s Screen) bool { return t.To == s && t.From != s }

// Machine is the flat navigation graph: every event is legal from every
// screen and nothing is terminal.
type Machine struct {
	current Screen
}

func NewMachine(start Screen) (*Machine, error) {
	if start < 0 || start >= screenCount {
		return nil, fmt.Errorf("start screen %d: %w", int(start), apperrors.ErrInvalidInput)
	}
	return &Machine{current: start}, nil
}

func (m *Machine) Current() Screen { return m.current }

func (m *Machine) Fire(ev Event) (Transition, error) {
	target, ok := targets[ev]
	if !ok {
		return Transition{From: m.current, To: m.current}, fmt.Errorf("unknown event %q: %w", ev, apperrors.ErrInvalidInput)
	}
	t := Transition{From: m.current, To: target}
	m.current = target
	return t, nil
}
