package controller

import (
	"context"
	"errors"
	"fmt"

	capturedomain "travellog/internal/modules/capture/domain"
	navdomain "travellog/internal/modules/navigation/domain"
	tripdto "travellog/internal/modules/trip/dto"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

// View describes everything a front end needs to draw the current state.
type View struct {
	Screen navdomain.Screen
	// Trips is newest first and doubles as the timeline.
	Trips  []tripdto.TripOutput
	Detail *DetailView
	Add    *AddView
}

type DetailView struct {
	// Empty is set when there are no trips to show.
	Empty    bool
	Trip     tripdto.TripOutput
	Selected bool
	Region   *geo.Region
	Weather  string
}

type AddView struct {
	Draft        tripdto.DraftInput
	Phase        capturedomain.Phase
	Acquiring    bool
	PhotoPending bool
	// Preview frames the draft coordinate, nil when there is none.
	Preview *geo.Region
	Picker  *PickerView
}

type PickerView struct {
	Region geo.Region
	Pin    *geo.Coordinate
}

const weatherUnavailable = "-"

// Project is a pure read of the controller state.
func (c *Controller) Project(ctx context.Context) (View, error) {
	trips, err := c.trips.ListTrips(ctx)
	if err != nil {
		return View{}, fmt.Errorf("list trips: %w", err)
	}
	v := View{Screen: c.nav.Current(), Trips: trips}
	switch v.Screen {
	case navdomain.ScreenDetail:
		d, err := c.detail(ctx)
		if err != nil {
			return View{}, err
		}
		v.Detail = d
	case navdomain.ScreenAdd:
		v.Add = c.addView()
	}
	return v, nil
}

func (c *Controller) detail(ctx context.Context) (*DetailView, error) {
	cur, err := c.trips.Current(ctx)
	if errors.Is(err, apperrors.ErrEmptyStore) {
		return &DetailView{Empty: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current trip: %w", err)
	}
	d := &DetailView{Trip: cur.Trip, Selected: cur.Selected, Weather: weatherUnavailable}
	if cur.Trip.Coordinate != nil {
		r := geo.RegionAround(*cur.Trip.Coordinate)
		d.Region = &r
	}
	if w, ok := c.trips.Weather(ctx, cur.Trip); ok {
		d.Weather = FormatWeather(w)
	}
	return d, nil
}

func (c *Controller) addView() *AddView {
	f := c.add
	if f == nil {
		return nil
	}
	draft := f.draft
	draft.Coordinate = f.capture.DraftCoordinate()
	v := &AddView{
		Draft:        draft,
		Phase:        f.capture.Phase(),
		Acquiring:    f.capture.Acquiring(),
		PhotoPending: f.photoPending != 0,
	}
	if draft.Coordinate != nil {
		r := geo.RegionAround(*draft.Coordinate)
		v.Preview = &r
	}
	if f.capture.PickerOpen() {
		p := &PickerView{Pin: f.capture.ModalPin()}
		if p.Pin != nil {
			p.Region = geo.RegionAround(*p.Pin)
		} else {
			p.Region = geo.Overview(c.opts.Fallback)
		}
		v.Picker = p
	}
	return v
}

func FormatWeather(w tripdto.WeatherOutput) string {
	return fmt.Sprintf("%s %d°C · %s", w.Icon, w.TempC, w.Description)
}
