package timeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tripdto "travellog/internal/modules/trip/dto"
	"travellog/internal/ui/theme"
)

type OpenTripMsg struct {
	ID string
}

type rowItem struct {
	trip tripdto.TripOutput
}

func (i rowItem) FilterValue() string { return i.trip.Title }

// rowDelegate draws one trip per line: date, rail, title.
type rowDelegate struct{}

func (rowDelegate) Height() int                         { return 1 }
func (rowDelegate) Spacing() int                        { return 0 }
func (rowDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(rowItem)
	if !ok {
		return
	}
	rail := theme.Muted.Render("│")
	title := row.trip.Title
	if index == m.Index() {
		rail = theme.Hot.Render("●")
		title = theme.Title.Render(title)
	}
	fmt.Fprintf(w, " %s %s %s", theme.Muted.Render(row.trip.Date), rail, title)
}

type Model struct {
	list   list.Model
	empty  bool
	width  int
	height int
}

func New() Model {
	l := list.New(nil, rowDelegate{}, 0, 0)
	l.Title = "Timeline"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("trip", "trips")
	return Model{list: l, empty: true}
}

func (m *Model) SetTrips(trips []tripdto.TripOutput) tea.Cmd {
	items := make([]list.Item, len(trips))
	for i, t := range trips {
		items[i] = rowItem{trip: t}
	}
	m.empty = len(trips) == 0
	return m.list.SetItems(items)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(rowItem); ok {
				id := item.trip.ID
				return m, func() tea.Msg { return OpenTripMsg{ID: id} }
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.empty {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Nothing on the timeline yet."))
	}
	return m.list.View()
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
