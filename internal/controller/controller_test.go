package controller_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"travellog/internal/controller"
	capturedomain "travellog/internal/modules/capture/domain"
	navdomain "travellog/internal/modules/navigation/domain"
	tripoutadapter "travellog/internal/modules/trip/adapter/out"
	tripdomain "travellog/internal/modules/trip/domain"
	tripdto "travellog/internal/modules/trip/dto"
	tripin "travellog/internal/modules/trip/port/in"
	"travellog/internal/modules/trip/service"
	"travellog/internal/modules/trip/usecase"
	"travellog/internal/platform/clock"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("trip-%d", s.n)
}

var (
	today  = time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)
	home   = geo.Coordinate{Latitude: 60.1699, Longitude: 24.9384}
	tallinn = geo.Coordinate{Latitude: 59.437, Longitude: 24.7536}
)

func newController(t *testing.T, seed int, start navdomain.Screen, prefill bool) (*controller.Controller, tripin.Usecase, []controller.Request) {
	t.Helper()
	ctx := context.Background()
	store := tripoutadapter.NewMemoryTripStore()
	svc := service.NewTripService(clock.Fixed(today), &seqID{}, store, tripdomain.Defaults{Coordinate: home, Thumbnail: "placeholder"})
	uc := usecase.NewInteractor(svc, store, tripoutadapter.NewMockWeather(), nil)
	if err := uc.Seed(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	c, reqs, err := controller.New(ctx, uc, start, controller.Options{Fallback: home, PrefillLocation: prefill}, nil)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c, uc, reqs
}

func project(t *testing.T, c *controller.Controller) controller.View {
	t.Helper()
	v, err := c.Project(context.Background())
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	return v
}

func TestStartScreenAndPrefillRequest(t *testing.T) {
	t.Parallel()
	c, _, reqs := newController(t, 3, navdomain.ScreenAdd, true)
	if c.Screen() != navdomain.ScreenAdd {
		t.Fatalf("expected add screen, got %s", c.Screen())
	}
	if len(reqs) != 1 || reqs[0].Kind != controller.RequestLocation || !reqs[0].Silent {
		t.Fatalf("expected one silent location request, got %+v", reqs)
	}
	v := project(t, c)
	if v.Add == nil || v.Add.Draft.Date != "2026-05-20" || !v.Add.Acquiring {
		t.Fatalf("unexpected add view: %+v", v.Add)
	}

	c2, _, reqs := newController(t, 3, navdomain.ScreenTrips, true)
	if len(reqs) != 0 || project(t, c2).Add != nil {
		t.Fatalf("trips start must not open a flow")
	}
}

func TestSilentPrefillFailureIsNotReported(t *testing.T) {
	t.Parallel()
	c, _, reqs := newController(t, 0, navdomain.ScreenAdd, true)
	applied, err := c.ApplyLocation(reqs[0].Ticket, geo.Coordinate{}, apperrors.ErrPermissionDenied)
	if !applied || err != nil {
		t.Fatalf("expected applied without notice, got %v %v", applied, err)
	}
	if v := project(t, c); v.Add.Draft.Coordinate != nil || v.Add.Acquiring {
		t.Fatalf("draft coordinate must stay empty: %+v", v.Add)
	}

	req, err := c.RequestCurrentLocation()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := c.ApplyLocation(req.Ticket, geo.Coordinate{}, apperrors.ErrPermissionDenied); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("explicit request must report denial, got %v", err)
	}
}

func TestLocationResultAfterLeavingAddIsDropped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, _, _ := newController(t, 1, navdomain.ScreenAdd, false)
	req, err := c.RequestCurrentLocation()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := c.Navigate(ctx, navdomain.ScreenTrips); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if _, err := c.Navigate(ctx, navdomain.ScreenAdd); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	applied, err := c.ApplyLocation(req.Ticket, tallinn, nil)
	if applied || err != nil {
		t.Fatalf("expected stale result to be dropped, got %v %v", applied, err)
	}
	if v := project(t, c); v.Add.Draft.Coordinate != nil {
		t.Fatalf("stale result leaked into new flow: %v", v.Add.Draft.Coordinate)
	}
}

func TestNewerLocationRequestSupersedes(t *testing.T) {
	t.Parallel()
	c, _, _ := newController(t, 0, navdomain.ScreenAdd, false)
	first, _ := c.RequestCurrentLocation()
	second, _ := c.RequestCurrentLocation()
	if applied, _ := c.ApplyLocation(first.Ticket, home, nil); applied {
		t.Fatalf("superseded result applied")
	}
	if applied, err := c.ApplyLocation(second.Ticket, tallinn, nil); !applied || err != nil {
		t.Fatalf("latest result not applied: %v", err)
	}
	v := project(t, c)
	if v.Add.Draft.Coordinate == nil || *v.Add.Draft.Coordinate != tallinn || v.Add.Preview == nil {
		t.Fatalf("unexpected add view: %+v", v.Add)
	}
}

func TestPickerConfirmAndCancel(t *testing.T) {
	t.Parallel()
	c, _, _ := newController(t, 0, navdomain.ScreenAdd, false)
	if err := c.OpenPicker(); err != nil {
		t.Fatalf("open: %v", err)
	}
	v := project(t, c)
	if v.Add.Picker == nil || v.Add.Picker.Pin != nil || v.Add.Phase != capturedomain.PhasePickerOpen {
		t.Fatalf("unexpected picker view: %+v", v.Add)
	}
	if v.Add.Picker.Region != geo.Overview(home) {
		t.Fatalf("picker without pin should frame fallback overview, got %+v", v.Add.Picker.Region)
	}
	if _, err := c.ConfirmPicker(); !errors.Is(err, apperrors.ErrEmptySelection) {
		t.Fatalf("expected empty selection, got %v", err)
	}
	if err := c.DropPin(home); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if err := c.DropPin(tallinn); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if v := project(t, c); v.Add.Draft.Coordinate != nil || *v.Add.Picker.Pin != tallinn {
		t.Fatalf("pin must not touch the draft before confirm: %+v", v.Add)
	}
	got, err := c.ConfirmPicker()
	if err != nil || got != tallinn {
		t.Fatalf("confirm: %v %v", got, err)
	}

	if err := c.OpenPicker(); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := c.DropPin(home); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if err := c.CancelPicker(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if v := project(t, c); *v.Add.Draft.Coordinate != tallinn || v.Add.Picker != nil {
		t.Fatalf("cancel changed the draft: %+v", v.Add)
	}
}

func TestPhotoPick(t *testing.T) {
	t.Parallel()
	c, _, _ := newController(t, 0, navdomain.ScreenAdd, false)
	req, err := c.RequestPhoto()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !project(t, c).Add.PhotoPending {
		t.Fatalf("expected pending photo")
	}
	if applied, err := c.ApplyPhoto(req.Ticket, "", apperrors.ErrCancelled); !applied || err != nil {
		t.Fatalf("cancel must be quiet: %v %v", applied, err)
	}
	if v := project(t, c); v.Add.Draft.Thumbnail != "" || v.Add.PhotoPending {
		t.Fatalf("cancel changed thumbnail: %+v", v.Add)
	}

	req, _ = c.RequestPhoto()
	if _, err := c.ApplyPhoto(req.Ticket, "", apperrors.ErrPermissionDenied); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected denial, got %v", err)
	}
	req, _ = c.RequestPhoto()
	if _, err := c.ApplyPhoto(req.Ticket, "file:///tmp/a.jpg", nil); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if applied, _ := c.ApplyPhoto(req.Ticket, "file:///tmp/b.jpg", nil); applied {
		t.Fatalf("second result for the same request applied")
	}
	if v := project(t, c); v.Add.Draft.Thumbnail != "file:///tmp/a.jpg" {
		t.Fatalf("thumbnail not applied: %q", v.Add.Draft.Thumbnail)
	}
}

func TestSaveValidationLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, uc, _ := newController(t, 2, navdomain.ScreenAdd, false)
	if err := c.SetTitle("   "); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := c.SetNotes("kept"); err != nil {
		t.Fatalf("set notes: %v", err)
	}
	if _, err := c.Save(ctx); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if c.Screen() != navdomain.ScreenAdd {
		t.Fatalf("failed save must stay on add, got %s", c.Screen())
	}
	if v := project(t, c); v.Add.Draft.Notes != "kept" || len(v.Trips) != 2 {
		t.Fatalf("failed save changed state: %+v", v)
	}
	if trips, _ := uc.ListTrips(ctx); len(trips) != 2 {
		t.Fatalf("store changed: %d", len(trips))
	}
}

func TestSaveCommitsAndReturnsToTrips(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, _, _ := newController(t, 3, navdomain.ScreenAdd, false)
	_ = c.SetTitle("  Archipelago  ")
	_ = c.SetDate("2026-06-01")
	out, err := c.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if out.Title != "Archipelago" || out.Coordinate == nil || *out.Coordinate != home || out.Thumbnail != "placeholder" {
		t.Fatalf("unexpected trip: %+v", out)
	}
	v := project(t, c)
	if v.Screen != navdomain.ScreenTrips || v.Add != nil || len(v.Trips) != 4 || v.Trips[0].ID != out.ID {
		t.Fatalf("unexpected view after save: %+v", v)
	}
	if err := c.SetTitle("x"); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("draft edits after save must fail, got %v", err)
	}

	if _, err := c.Navigate(ctx, navdomain.ScreenDetail); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	d := project(t, c).Detail
	if d == nil || d.Empty || d.Trip.ID != out.ID || !d.Selected || d.Region == nil || d.Weather == "" {
		t.Fatalf("unexpected detail: %+v", d)
	}
}

func TestCancelAddDiscardsDraft(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, _, _ := newController(t, 1, navdomain.ScreenAdd, false)
	_ = c.SetTitle("Unsaved")
	if err := c.CancelAdd(ctx); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := c.Navigate(ctx, navdomain.ScreenAdd); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if v := project(t, c); v.Add.Draft.Title != "" || len(v.Trips) != 1 {
		t.Fatalf("draft survived cancel: %+v", v.Add)
	}
	if err := c.CancelAdd(ctx); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := c.CancelAdd(ctx); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("cancel outside add must fail, got %v", err)
	}
}

func TestDetailEmptyStoreAndOpenTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, _, _ := newController(t, 0, navdomain.ScreenDetail, false)
	if d := project(t, c).Detail; d == nil || !d.Empty {
		t.Fatalf("expected empty placeholder, got %+v", d)
	}

	c, uc, _ := newController(t, 3, navdomain.ScreenTrips, false)
	trips, _ := uc.ListTrips(ctx)
	if err := c.OpenTrip(ctx, trips[2].ID); err != nil {
		t.Fatalf("open: %v", err)
	}
	d := project(t, c).Detail
	if c.Screen() != navdomain.ScreenDetail || d.Trip.ID != trips[2].ID || !d.Selected {
		t.Fatalf("unexpected detail: %+v", d)
	}
	if err := c.OpenTrip(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if project(t, c).Detail.Trip.ID != trips[2].ID {
		t.Fatalf("failed open moved the selection")
	}
}

func TestFormatWeather(t *testing.T) {
	t.Parallel()
	got := controller.FormatWeather(tripdto.WeatherOutput{TempC: 7, Description: "cloudy", Icon: "☁️"})
	if got != "☁️ 7°C · cloudy" {
		t.Fatalf("unexpected weather line %q", got)
	}
}
