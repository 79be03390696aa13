package trips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tripdto "travellog/internal/modules/trip/dto"
	"travellog/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

type OpenTripMsg struct {
	ID string
}

// ─── list item ───────────────────────────────────────────────────────────────

type cardItem struct {
	trip tripdto.TripOutput
}

func (i cardItem) Title() string { return i.trip.Title }
func (i cardItem) Description() string {
	return i.trip.Date + "  " + firstLine(i.trip.Notes)
}
func (i cardItem) FilterValue() string { return i.trip.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	list     list.Model
	timeline viewport.Model
	trips    []tripdto.TripOutput
	width    int
	height   int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Trips"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("trip", "trips")

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{list: l, timeline: vp}
}

// SetTrips replaces the cards, newest first.
func (m *Model) SetTrips(trips []tripdto.TripOutput) tea.Cmd {
	m.trips = trips
	items := make([]list.Item, len(trips))
	for i, t := range trips {
		items[i] = cardItem{trip: t}
	}
	m.timeline.SetContent(m.renderTimeline())
	return m.list.SetItems(items)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(cardItem); ok {
				id := item.trip.ID
				return m, func() tea.Msg { return OpenTripMsg{ID: id} }
			}
		}
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.timeline, cmd = m.timeline.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if len(m.trips) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No trips yet. Press a to add one."))
	}
	listW := m.width * 6 / 10
	sideW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	sidePane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(sideW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.timeline.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, sidePane)
}

// Filtering reports whether the list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 6 / 10
	sideW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.timeline.Width = max(sideW-4, 1)
	m.timeline.Height = max(m.height-4, 1)
}

func (m Model) renderTimeline() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Timeline") + "\n\n")
	for _, t := range m.trips {
		sb.WriteString(fmt.Sprintf("%s  %s\n", theme.Muted.Render(t.Date), t.Title))
	}
	return sb.String()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
