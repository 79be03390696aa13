package detail

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"travellog/internal/controller"
	"travellog/internal/ui/components"
	"travellog/internal/ui/theme"
)

type Model struct {
	view    *controller.DetailView
	body    viewport.Model
	preview components.MapView
	width   int
	height  int
}

func New() Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)
	return Model{body: vp}
}

func (m *Model) SetView(v *controller.DetailView) {
	m.view = v
	if v != nil && v.Region != nil {
		m.preview = components.NewMapView(*v.Region, false)
		m.preview.SetPins(*v.Trip.Coordinate)
		m.resize()
	}
	m.body.SetContent(m.renderBody())
	m.body.GotoTop()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.view == nil || m.view.Empty {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No trip selected. Add a trip to see it here."))
	}
	bodyW := m.width * 6 / 10
	left := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Width(max(bodyW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.body.View())
	if m.view.Region == nil {
		return left
	}
	right := theme.Pane.Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	bodyW := m.width * 6 / 10
	m.body.Width = max(bodyW-4, 1)
	m.body.Height = max(m.height-4, 1)
	m.preview.SetSize(m.width-bodyW-4, m.height-6)
}

func (m Model) renderBody() string {
	v := m.view
	if v == nil || v.Empty {
		return ""
	}
	t := v.Trip
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(t.Title) + "\n")
	sb.WriteString(theme.Muted.Render(t.Date) + "\n\n")
	if t.Coordinate != nil {
		sb.WriteString(theme.Muted.Render("where:   ") + t.Coordinate.String() + "\n")
	}
	sb.WriteString(theme.Muted.Render("weather: ") + v.Weather + "\n")
	if t.Thumbnail != "" {
		sb.WriteString(theme.Muted.Render("photo:   ") + thumbnailLabel(t.Thumbnail) + "\n")
	}
	if strings.TrimSpace(t.Notes) != "" {
		sb.WriteString("\n" + t.Notes + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("esc: back to trips  t: timeline"))
	return sb.String()
}

func thumbnailLabel(ref string) string {
	if strings.HasPrefix(ref, "data:") {
		return "placeholder"
	}
	return strings.TrimPrefix(ref, "file://")
}
