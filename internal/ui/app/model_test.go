package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"travellog/internal/controller"
	navdomain "travellog/internal/modules/navigation/domain"
	tripoutadapter "travellog/internal/modules/trip/adapter/out"
	tripdomain "travellog/internal/modules/trip/domain"
	"travellog/internal/modules/trip/service"
	"travellog/internal/modules/trip/usecase"
	"travellog/internal/platform/clock"
	"travellog/internal/platform/geo"
	addview "travellog/internal/ui/views/add"
)

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("trip-%d", s.n)
}

type fakeCaps struct {
	at   geo.Coordinate
	refs []string
}

func (f fakeCaps) Locate(context.Context) (geo.Coordinate, error) { return f.at, nil }
func (f fakeCaps) PhotoChoices(context.Context) ([]string, error) { return f.refs, nil }

var home = geo.Coordinate{Latitude: 60.1699, Longitude: 24.9384}

func newModel(t *testing.T) Model {
	t.Helper()
	ctx := context.Background()
	store := tripoutadapter.NewMemoryTripStore()
	svc := service.NewTripService(clock.Fixed(time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)), &seqID{}, store,
		tripdomain.Defaults{Coordinate: home, Thumbnail: "placeholder"})
	uc := usecase.NewInteractor(svc, store, tripoutadapter.NewMockWeather(), nil)
	if err := uc.Seed(ctx, 2); err != nil {
		t.Fatalf("seed: %v", err)
	}
	ctrl, reqs, err := controller.New(ctx, uc, navdomain.ScreenTrips, controller.Options{Fallback: home}, nil)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return NewModel(ctrl, fakeCaps{at: home, refs: []string{"file:///tmp/a.jpg"}}, reqs)
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingAndSavingATrip(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	m = send(t, m, runes("a"))
	if m.screen != navdomain.ScreenAdd {
		t.Fatalf("expected add screen, got %s", m.screen)
	}
	for _, r := range "Oslo" {
		m = send(t, m, runes(string(r)))
	}
	m = send(t, m, addview.SaveMsg{})
	if m.screen != navdomain.ScreenTrips {
		t.Fatalf("expected trips after save, got %s", m.screen)
	}
	if m.status != "saved Oslo" || m.alert {
		t.Fatalf("unexpected status %q", m.status)
	}
	v, _ := m.ctrl.Project(context.Background())
	if len(v.Trips) != 3 || v.Trips[0].Title != "Oslo" {
		t.Fatalf("trip not stored first: %+v", v.Trips)
	}
}

func TestSaveWithoutTitleShowsNotice(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	m = send(t, m, runes("a"))
	m = send(t, m, addview.SaveMsg{})
	if m.screen != navdomain.ScreenAdd || !m.alert {
		t.Fatalf("expected to stay on add with a notice, screen %s status %q", m.screen, m.status)
	}
}

func TestLocationAfterCancelIsIgnored(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	m = send(t, m, runes("a"))
	req, err := m.ctrl.RequestCurrentLocation()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	m = send(t, m, addview.CancelMsg{})
	m = send(t, m, locatedMsg{req: req, at: home})
	if strings.HasPrefix(m.status, "location set") {
		t.Fatalf("stale location reported: %q", m.status)
	}
	if m.screen != navdomain.ScreenTrips {
		t.Fatalf("expected trips, got %s", m.screen)
	}
}

func TestPhotoChooserFlow(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	m = send(t, m, runes("a"))
	req, err := m.ctrl.RequestPhoto()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	m = send(t, m, photoChoicesMsg{req: req, refs: []string{"file:///tmp/a.jpg"}})
	if !m.chooser.Visible() {
		t.Fatalf("expected chooser to open")
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("expected pick command")
	}
	m = send(t, m, cmd())
	v, _ := m.ctrl.Project(context.Background())
	if v.Add.Draft.Thumbnail != "file:///tmp/a.jpg" {
		t.Fatalf("thumbnail not attached: %q", v.Add.Draft.Thumbnail)
	}
}

func TestPaletteNavigation(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	next, _ := m.executePalette("go timeline")
	m = next.(Model)
	if m.screen != navdomain.ScreenTimeline {
		t.Fatalf("expected timeline, got %s", m.screen)
	}
	next, _ = m.executePalette("fly away")
	if !next.(Model).alert {
		t.Fatalf("unknown command should raise a notice")
	}
}
