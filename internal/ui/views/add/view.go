package add

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"travellog/internal/controller"
	capturedomain "travellog/internal/modules/capture/domain"
	"travellog/internal/ui/components"
	"travellog/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

type (
	LocateMsg        struct{}
	OpenPickerMsg    struct{}
	PhotoMsg         struct{}
	SaveMsg          struct{}
	CancelMsg        struct{}
	PickerConfirmMsg struct{}
	PickerCancelMsg  struct{}
)

const (
	fieldTitle = iota
	fieldDate
	fieldNotes
	fieldCount
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	title   textinput.Model
	date    textinput.Model
	notes   textarea.Model
	focus   int
	active  bool
	view    *controller.AddView
	picker  components.MapView
	preview components.MapView
	spinner spinner.Model
	width   int
	height  int
}

func New() Model {
	title := textinput.New()
	title.Placeholder = "Where did you go?"
	title.CharLimit = 120
	title.Prompt = ""

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 32
	date.Prompt = ""

	notes := textarea.New()
	notes.Placeholder = "Notes"
	notes.ShowLineNumbers = false
	notes.SetHeight(6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{title: title, date: date, notes: notes, spinner: sp}
}

func (m Model) Title() string { return m.title.Value() }
func (m Model) Date() string  { return m.date.Value() }
func (m Model) Notes() string { return m.notes.Value() }

// PickerOpen reports whether the map picker owns the keyboard.
func (m Model) PickerOpen() bool { return m.view != nil && m.view.Picker != nil }

// SetView syncs the form with the controller's projection. A nil view
// clears the form.
func (m *Model) SetView(v *controller.AddView) tea.Cmd {
	if v == nil {
		m.view = nil
		m.active = false
		m.title.SetValue("")
		m.date.SetValue("")
		m.notes.SetValue("")
		m.title.Blur()
		m.date.Blur()
		m.notes.Blur()
		return nil
	}
	var cmds []tea.Cmd
	wasAcquiring := m.view != nil && m.view.Acquiring
	wasPicking := m.PickerOpen()
	m.view = v

	syncInput(&m.title, v.Draft.Title)
	syncInput(&m.date, v.Draft.Date)
	if m.notes.Value() != v.Draft.Notes {
		m.notes.SetValue(v.Draft.Notes)
	}
	if !m.active {
		m.active = true
		m.focus = fieldTitle
		cmds = append(cmds, m.applyFocus())
	}
	if v.Acquiring && !wasAcquiring {
		cmds = append(cmds, m.spinner.Tick)
	}
	if v.Picker != nil {
		if !wasPicking {
			m.picker = components.NewMapView(v.Picker.Region, true)
			m.picker.SetSize(m.width-4, m.height-6)
		}
		if v.Picker.Pin != nil {
			m.picker.SetPins(*v.Picker.Pin)
		} else {
			m.picker.SetPins()
		}
	}
	if v.Preview != nil {
		m.preview = components.NewMapView(*v.Preview, false)
		m.preview.SetPins(*v.Draft.Coordinate)
		m.preview.SetSize(m.width*4/10-6, m.height/2)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.view == nil || !m.view.Acquiring {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.PickerOpen() {
			switch msg.String() {
			case "enter":
				return m, emit(PickerConfirmMsg{})
			case "esc":
				return m, emit(PickerCancelMsg{})
			}
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "esc":
			return m, emit(CancelMsg{})
		case "ctrl+s":
			return m, emit(SaveMsg{})
		case "ctrl+l":
			return m, emit(LocateMsg{})
		case "ctrl+g":
			return m, emit(OpenPickerMsg{})
		case "ctrl+o":
			return m, emit(PhotoMsg{})
		case "tab":
			m.focus = (m.focus + 1) % fieldCount
			return m, m.applyFocus()
		case "shift+tab":
			m.focus = (m.focus + fieldCount - 1) % fieldCount
			return m, m.applyFocus()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDate:
		m.date, cmd = m.date.Update(msg)
	case fieldNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.view == nil {
		return ""
	}
	if m.PickerOpen() {
		return m.renderPicker()
	}
	formW := m.width * 6 / 10
	form := lipgloss.NewStyle().Width(formW).Render(m.renderForm())
	side := theme.Pane.Width(max(m.width-formW-4, 10)).Render(m.renderSide())
	return lipgloss.JoinHorizontal(lipgloss.Top, form, side)
}

// ─── private ─────────────────────────────────────────────────────────────────

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func syncInput(in *textinput.Model, v string) {
	if in.Value() != v {
		in.SetValue(v)
	}
}

func (m *Model) applyFocus() tea.Cmd {
	m.title.Blur()
	m.date.Blur()
	m.notes.Blur()
	switch m.focus {
	case fieldDate:
		return m.date.Focus()
	case fieldNotes:
		return m.notes.Focus()
	default:
		return m.title.Focus()
	}
}

func (m *Model) resize() {
	formW := m.width * 6 / 10
	m.title.Width = max(formW-4, 10)
	m.date.Width = max(formW-4, 10)
	m.notes.SetWidth(max(formW-2, 10))
	m.picker.SetSize(m.width-4, m.height-6)
	m.preview.SetSize(m.width*4/10-6, m.height/2)
}

func (m Model) label(field int, text string) string {
	if m.focus == field {
		return theme.Hot.Render(text)
	}
	return theme.Muted.Render(text)
}

func (m Model) renderForm() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("New trip") + "\n\n")
	sb.WriteString(m.label(fieldTitle, "Title") + "\n" + m.title.View() + "\n\n")
	sb.WriteString(m.label(fieldDate, "Date") + "\n" + m.date.View() + "\n\n")
	sb.WriteString(m.label(fieldNotes, "Notes") + "\n" + m.notes.View() + "\n\n")
	sb.WriteString(theme.Muted.Render("tab: next field  ctrl+l: current location  ctrl+g: pick on map\nctrl+o: photo  ctrl+s: save  esc: cancel"))
	return sb.String()
}

func (m Model) renderSide() string {
	v := m.view
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Location") + "\n")
	switch {
	case v.Acquiring:
		sb.WriteString(m.spinner.View() + " locating…\n")
	case v.Draft.Coordinate != nil:
		sb.WriteString(theme.Ok.Render(v.Draft.Coordinate.String()) + "\n")
	default:
		sb.WriteString(theme.Muted.Render("not set, home will be used") + "\n")
	}
	if v.Preview != nil {
		sb.WriteString("\n" + m.preview.View() + "\n")
	}
	sb.WriteString("\n" + theme.Title.Render("Photo") + "\n")
	switch {
	case v.PhotoPending:
		sb.WriteString(theme.Muted.Render("choosing…") + "\n")
	case v.Draft.Thumbnail != "":
		sb.WriteString(strings.TrimPrefix(v.Draft.Thumbnail, "file://") + "\n")
	default:
		sb.WriteString(theme.Muted.Render("none, placeholder will be used") + "\n")
	}
	return sb.String()
}

func (m Model) renderPicker() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Pick a location") + "  ")
	if m.view.Phase == capturedomain.PhasePickerOpen && m.view.Picker.Pin != nil {
		sb.WriteString(theme.Ok.Render("pin " + m.view.Picker.Pin.String()))
	} else {
		sb.WriteString(theme.Muted.Render("no pin yet"))
	}
	sb.WriteString("\n\n" + m.picker.View() + "\n\n")
	sb.WriteString(theme.Muted.Render("arrows: move  +/-: zoom  c: center  space: drop pin  enter: confirm  esc: cancel"))
	return theme.PaneActive.Render(sb.String())
}
