package components

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"travellog/internal/platform/geo"
	"travellog/internal/ui/theme"
)

// MapPressMsg is emitted when the user long-presses a map cell.
type MapPressMsg struct{ At geo.Coordinate }

const (
	defaultMapWidth  = 40
	defaultMapHeight = 12
)

// MapView draws a region as a character grid with pins and, when
// interactive, a cursor that can drop a pin.
type MapView struct {
	region      geo.Region
	pins        []geo.Coordinate
	col, row    int
	width       int
	height      int
	interactive bool
}

func NewMapView(region geo.Region, interactive bool) MapView {
	m := MapView{region: region, interactive: interactive}
	m.SetSize(defaultMapWidth, defaultMapHeight)
	return m
}

func (m MapView) Region() geo.Region { return m.region }

// SetRegion reframes the map and recenters the cursor.
func (m *MapView) SetRegion(r geo.Region) {
	m.region = r
	m.col, m.row = m.width/2, m.height/2
}

func (m *MapView) SetPins(pins ...geo.Coordinate) {
	m.pins = append(m.pins[:0], pins...)
}

func (m *MapView) SetSize(w, h int) {
	m.width = max(w, 4)
	m.height = max(h, 3)
	m.col, m.row = m.width/2, m.height/2
}

// Cursor is the coordinate under the cursor cell.
func (m MapView) Cursor() geo.Coordinate { return m.CellAt(m.col, m.row) }

// CellAt maps a grid cell to the coordinate at its center.
func (m MapView) CellAt(col, row int) geo.Coordinate {
	west := m.region.Center.Longitude - m.region.LongitudeDelta/2
	north := m.region.Center.Latitude + m.region.LatitudeDelta/2
	return geo.Normalize(geo.Coordinate{
		Latitude:  north - (float64(row)+0.5)*m.region.LatitudeDelta/float64(m.height),
		Longitude: west + (float64(col)+0.5)*m.region.LongitudeDelta/float64(m.width),
	})
}

func (m MapView) cellOf(c geo.Coordinate) (int, int, bool) {
	if !m.region.Contains(c) {
		return 0, 0, false
	}
	west := m.region.Center.Longitude - m.region.LongitudeDelta/2
	north := m.region.Center.Latitude + m.region.LatitudeDelta/2
	col := int(math.Floor((c.Longitude - west) / m.region.LongitudeDelta * float64(m.width)))
	row := int(math.Floor((north - c.Latitude) / m.region.LatitudeDelta * float64(m.height)))
	return min(max(col, 0), m.width-1), min(max(row, 0), m.height-1), true
}

func (m MapView) Update(msg tea.Msg) (MapView, tea.Cmd) {
	if !m.interactive {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case "left", "h":
		m.move(-1, 0)
	case "right", "l":
		m.move(1, 0)
	case "+", "=":
		m.region = m.region.Zoom(0.5)
	case "-":
		m.region = m.region.Zoom(2)
	case "c":
		m.SetRegion(geo.Region{Center: m.Cursor(), LatitudeDelta: m.region.LatitudeDelta, LongitudeDelta: m.region.LongitudeDelta})
	case " ":
		at := m.Cursor()
		return m, func() tea.Msg { return MapPressMsg{At: at} }
	}
	return m, nil
}

// move steps the cursor, panning the region once it runs off an edge.
func (m *MapView) move(dc, dr int) {
	col, row := m.col+dc, m.row+dr
	switch {
	case col < 0:
		m.region = m.region.Pan(0, -1/float64(m.width))
		col = 0
	case col >= m.width:
		m.region = m.region.Pan(0, 1/float64(m.width))
		col = m.width - 1
	}
	switch {
	case row < 0:
		m.region = m.region.Pan(1/float64(m.height), 0)
		row = 0
	case row >= m.height:
		m.region = m.region.Pan(-1/float64(m.height), 0)
		row = m.height - 1
	}
	m.col, m.row = col, row
}

func (m MapView) View() string {
	pinned := make(map[[2]int]bool, len(m.pins))
	for _, p := range m.pins {
		if col, row, ok := m.cellOf(p); ok {
			pinned[[2]int{col, row}] = true
		}
	}
	var sb strings.Builder
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			cell := [2]int{col, row}
			switch {
			case pinned[cell]:
				sb.WriteString(theme.Pin.Render("●"))
			case m.interactive && col == m.col && row == m.row:
				sb.WriteString(theme.Cursor.Render("+"))
			default:
				sb.WriteString(theme.Water.Render("·"))
			}
		}
		sb.WriteString("\n")
	}
	if m.interactive {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("cursor %s  span %.3f°", m.Cursor(), m.region.LatitudeDelta)))
	} else {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("center %s", m.region.Center)))
	}
	return sb.String()
}
