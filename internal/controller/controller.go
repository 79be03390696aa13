// Package controller holds the application state of a running client: the
// navigation machine, the trip use case, and the Add flow with its draft and
// coordinate capture session. Every user action and every capability result
// is a method call on Controller, and Project renders the whole state as a
// View description. A Controller is owned by one goroutine.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	capturedomain "travellog/internal/modules/capture/domain"
	navdomain "travellog/internal/modules/navigation/domain"
	tripdto "travellog/internal/modules/trip/dto"
	tripin "travellog/internal/modules/trip/port/in"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

type RequestKind int

const (
	RequestLocation RequestKind = iota + 1
	RequestPhoto
)

// Ticket ties a capability result to the Add flow and request that asked
// for it.
type Ticket struct {
	flow uint64
	seq  uint64
}

// Request asks the host to run a capability and hand the result back with
// ApplyLocation or ApplyPhoto.
type Request struct {
	Kind   RequestKind
	Ticket Ticket
	// Silent requests report failures to the log only.
	Silent bool
}

type Options struct {
	Fallback        geo.Coordinate
	PrefillLocation bool
}

type addFlow struct {
	id           uint64
	draft        tripdto.DraftInput
	capture      *capturedomain.Session
	silent       capturedomain.Ticket
	photoIssued  uint64
	photoPending uint64
}

type Controller struct {
	trips  tripin.Usecase
	nav    *navdomain.Machine
	opts   Options
	logger *slog.Logger
	add    *addFlow
	flows  uint64
}

func New(ctx context.Context, trips tripin.Usecase, start navdomain.Screen, opts Options, logger *slog.Logger) (*Controller, []Request, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	nav, err := navdomain.NewMachine(navdomain.ScreenTrips)
	if err != nil {
		return nil, nil, err
	}
	c := &Controller{trips: trips, nav: nav, opts: opts, logger: logger}
	reqs, err := c.Navigate(ctx, start)
	if err != nil {
		return nil, nil, err
	}
	return c, reqs, nil
}

func (c *Controller) Screen() navdomain.Screen { return c.nav.Current() }

// Navigate fires the event for s. Leaving the Add screen abandons its flow;
// entering it starts a fresh one.
func (c *Controller) Navigate(ctx context.Context, s navdomain.Screen) ([]Request, error) {
	ev, err := navdomain.EventFor(s)
	if err != nil {
		return nil, err
	}
	t, err := c.nav.Fire(ev)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("navigate", "from", t.From.String(), "to", t.To.String())
	if t.Left(navdomain.ScreenAdd) {
		c.discardFlow()
	}
	if t.Entered(navdomain.ScreenAdd) {
		return c.startFlow(ctx), nil
	}
	return nil, nil
}

// OpenTrip selects a trip and shows it.
func (c *Controller) OpenTrip(ctx context.Context, id string) error {
	if err := c.trips.Select(ctx, id); err != nil {
		return err
	}
	_, err := c.Navigate(ctx, navdomain.ScreenDetail)
	return err
}

func (c *Controller) startFlow(ctx context.Context) []Request {
	c.flows++
	c.add = &addFlow{
		id:      c.flows,
		draft:   c.trips.NewDraft(ctx),
		capture: capturedomain.NewSession(nil),
	}
	if !c.opts.PrefillLocation {
		return nil
	}
	ticket := c.add.capture.RequestCurrent()
	c.add.silent = ticket
	return []Request{{Kind: RequestLocation, Ticket: Ticket{flow: c.add.id, seq: uint64(ticket)}, Silent: true}}
}

func (c *Controller) discardFlow() {
	if c.add == nil {
		return
	}
	c.logger.Debug("add flow discarded", "flow", c.add.id)
	c.add = nil
}

func (c *Controller) flow() (*addFlow, error) {
	if c.add == nil {
		return nil, fmt.Errorf("no trip being added: %w", apperrors.ErrInvalidState)
	}
	return c.add, nil
}

// live returns the flow a ticket belongs to, or nil when that flow is gone.
func (c *Controller) live(t Ticket) *addFlow {
	if c.add == nil || t.flow != c.add.id {
		return nil
	}
	return c.add
}

// ─── draft fields ────────────────────────────────────────────────────────────

func (c *Controller) SetTitle(v string) error {
	f, err := c.flow()
	if err != nil {
		return err
	}
	f.draft.Title = v
	return nil
}

func (c *Controller) SetDate(v string) error {
	f, err := c.flow()
	if err != nil {
		return err
	}
	f.draft.Date = v
	return nil
}

func (c *Controller) SetNotes(v string) error {
	f, err := c.flow()
	if err != nil {
		return err
	}
	f.draft.Notes = v
	return nil
}

// ─── location ────────────────────────────────────────────────────────────────

func (c *Controller) RequestCurrentLocation() (Request, error) {
	f, err := c.flow()
	if err != nil {
		return Request{}, err
	}
	ticket := f.capture.RequestCurrent()
	return Request{Kind: RequestLocation, Ticket: Ticket{flow: f.id, seq: uint64(ticket)}}, nil
}

// ApplyLocation hands back a positioning result. It reports whether the
// result was applied; results for abandoned flows or superseded requests are
// dropped. The returned error is the user-facing notice, nil for silent
// requests.
func (c *Controller) ApplyLocation(t Ticket, at geo.Coordinate, failure error) (bool, error) {
	f := c.live(t)
	if f == nil {
		c.logger.Debug("stale location result dropped", "flow", t.flow)
		return false, nil
	}
	ticket := capturedomain.Ticket(t.seq)
	silent := ticket == f.silent
	applied, err := f.capture.ResolveCurrent(ticket, at, failure)
	if !applied {
		return false, nil
	}
	if silent {
		f.silent = 0
	}
	if err != nil {
		c.logger.Warn("location unavailable", "err", err, "silent", silent)
		if silent {
			return true, nil
		}
		return true, err
	}
	c.logger.Debug("location updated", "at", at.String())
	return true, nil
}

func (c *Controller) OpenPicker() error {
	f, err := c.flow()
	if err != nil {
		return err
	}
	return f.capture.OpenPicker()
}

func (c *Controller) DropPin(at geo.Coordinate) error {
	f, err := c.flow()
	if err != nil {
		return err
	}
	return f.capture.LongPress(at)
}

func (c *Controller) ConfirmPicker() (geo.Coordinate, error) {
	f, err := c.flow()
	if err != nil {
		return geo.Coordinate{}, err
	}
	return f.capture.Confirm()
}

func (c *Controller) CancelPicker() error {
	f, err := c.flow()
	if err != nil {
		return err
	}
	return f.capture.Cancel()
}

// ─── photo ───────────────────────────────────────────────────────────────────

func (c *Controller) RequestPhoto() (Request, error) {
	f, err := c.flow()
	if err != nil {
		return Request{}, err
	}
	f.photoIssued++
	f.photoPending = f.photoIssued
	return Request{Kind: RequestPhoto, Ticket: Ticket{flow: f.id, seq: f.photoPending}}, nil
}

// PhotoAwaited reports whether t is still the outstanding photo request of
// the live flow.
func (c *Controller) PhotoAwaited(t Ticket) bool {
	f := c.live(t)
	return f != nil && t.seq != 0 && t.seq == f.photoPending
}

// ApplyPhoto hands back a photo pick. A cancelled pick changes nothing and
// is not reported.
func (c *Controller) ApplyPhoto(t Ticket, ref string, failure error) (bool, error) {
	if !c.PhotoAwaited(t) {
		c.logger.Debug("stale photo result dropped", "flow", t.flow)
		return false, nil
	}
	f := c.add
	f.photoPending = 0
	if errors.Is(failure, apperrors.ErrCancelled) {
		return true, nil
	}
	if failure != nil {
		c.logger.Warn("photo unavailable", "err", failure)
		return true, failure
	}
	f.draft.Thumbnail = ref
	return true, nil
}

// ─── commit ──────────────────────────────────────────────────────────────────

// Save commits the draft. On success the flow ends and the Trips screen is
// shown with the new trip selected; on failure nothing changes.
func (c *Controller) Save(ctx context.Context) (tripdto.TripOutput, error) {
	f, err := c.flow()
	if err != nil {
		return tripdto.TripOutput{}, err
	}
	input := f.draft
	input.Coordinate = f.capture.DraftCoordinate()
	out, err := c.trips.Commit(ctx, input)
	if err != nil {
		return tripdto.TripOutput{}, err
	}
	if _, err := c.Navigate(ctx, navdomain.ScreenTrips); err != nil {
		return out, err
	}
	return out, nil
}

// CancelAdd drops the draft and returns to the Trips screen.
func (c *Controller) CancelAdd(ctx context.Context) error {
	if c.nav.Current() != navdomain.ScreenAdd {
		return fmt.Errorf("not adding a trip: %w", apperrors.ErrInvalidState)
	}
	_, err := c.Navigate(ctx, navdomain.ScreenTrips)
	return err
}
