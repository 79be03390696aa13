package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"travellog/internal/controller"
	capturein "travellog/internal/modules/capture/port/in"
	navdomain "travellog/internal/modules/navigation/domain"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
	"travellog/internal/ui/components"
	"travellog/internal/ui/theme"
	addview "travellog/internal/ui/views/add"
	detailview "travellog/internal/ui/views/detail"
	timelineview "travellog/internal/ui/views/timeline"
	tripsview "travellog/internal/ui/views/trips"
)

// ─── tab index ───────────────────────────────────────────────────────────────

var tabOrder = navdomain.Screens()

var tabLabels = map[navdomain.Screen]string{
	navdomain.ScreenTrips:    "Trips",
	navdomain.ScreenAdd:      "Add",
	navdomain.ScreenDetail:   "Detail",
	navdomain.ScreenTimeline: "Timeline",
}

// ─── async messages ───────────────────────────────────────────────────────────

type locatedMsg struct {
	req controller.Request
	at  geo.Coordinate
	err error
}

type photoChoicesMsg struct {
	req  controller.Request
	refs []string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Add      key.Binding
	Timeline key.Binding
	Home     key.Binding
	Detail   key.Binding
	Enter    key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next screen")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add trip")),
		Timeline: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeline")),
		Home:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "trips")),
		Detail:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "detail")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open trip")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Add, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Add, k.Timeline, k.Detail, k.Home},
		{k.Enter},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Every state change goes through the
// controller on the Update goroutine; capability calls run as commands and
// come back as messages carrying their ticket.
type Model struct {
	ctrl *controller.Controller
	caps capturein.Capabilities

	tripsView    tripsview.Model
	addView      addview.Model
	detailView   detailview.Model
	timelineView timelineview.Model

	screen        navdomain.Screen
	chooser       components.Chooser
	chooserReq    controller.Request
	keys          keyMap
	help          help.Model
	showHelp      bool
	palette       components.Palette
	status        string
	alert         bool
	initCmd       tea.Cmd
	width         int
	height        int
}

// ─── constructor ─────────────────────────────────────────────────────────────

// NewModel renders the controller's current state. pending are the requests
// the controller issued while starting up.
func NewModel(ctrl *controller.Controller, caps capturein.Capabilities, pending []controller.Request) Model {
	m := Model{
		ctrl:         ctrl,
		caps:         caps,
		tripsView:    tripsview.New(),
		addView:      addview.New(),
		detailView:   detailview.New(),
		timelineView: timelineview.New(),
		chooser:      components.NewChooser(),
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
	m.initCmd = tea.Batch(m.refresh(), m.requestCmds(pending))
	return m
}

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.chooser.SetSize(min(m.width-4, 80), m.height-6)
		m.help.Width = m.width
		m.propagateSize()
		return m, nil
	}

	// Overlays intercept all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}
	if m.chooser.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.chooser, cmd = m.chooser.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case locatedMsg:
		applied, err := m.ctrl.ApplyLocation(msg.req.Ticket, msg.at, msg.err)
		switch {
		case err != nil:
			m.notice(err)
		case applied && msg.err == nil && !msg.req.Silent:
			m.say("location set to " + msg.at.String())
		}
		return m, m.refresh()

	case photoChoicesMsg:
		if !m.ctrl.PhotoAwaited(msg.req.Ticket) {
			return m, nil
		}
		failure := msg.err
		if failure == nil && len(msg.refs) == 0 {
			failure = fmt.Errorf("no images found: %w", apperrors.ErrCapabilityUnavailable)
		}
		if failure != nil {
			if _, err := m.ctrl.ApplyPhoto(msg.req.Ticket, "", failure); err != nil {
				m.notice(err)
			}
			return m, m.refresh()
		}
		m.chooserReq = msg.req
		return m, m.chooser.Open(msg.refs)

	case components.ChooserPickMsg:
		applied, err := m.ctrl.ApplyPhoto(m.chooserReq.Ticket, msg.Ref, nil)
		switch {
		case err != nil:
			m.notice(err)
		case applied:
			m.say("photo attached")
		}
		return m, m.refresh()

	case components.ChooserCancelMsg:
		_, _ = m.ctrl.ApplyPhoto(m.chooserReq.Ticket, "", apperrors.ErrCancelled)
		return m, m.refresh()

	case addview.LocateMsg:
		req, err := m.ctrl.RequestCurrentLocation()
		if err != nil {
			m.notice(err)
			return m, nil
		}
		m.say("locating…")
		return m, tea.Batch(m.refresh(), m.locateCmd(req))

	case addview.PhotoMsg:
		req, err := m.ctrl.RequestPhoto()
		if err != nil {
			m.notice(err)
			return m, nil
		}
		return m, tea.Batch(m.refresh(), m.photoCmd(req))

	case addview.OpenPickerMsg:
		return m.act(m.ctrl.OpenPicker())

	case components.MapPressMsg:
		return m.act(m.ctrl.DropPin(msg.At))

	case addview.PickerConfirmMsg:
		at, err := m.ctrl.ConfirmPicker()
		if err == nil {
			m.say("location set to " + at.String())
		}
		return m.act(err)

	case addview.PickerCancelMsg:
		return m.act(m.ctrl.CancelPicker())

	case addview.SaveMsg:
		out, err := m.ctrl.Save(context.Background())
		if err == nil {
			m.say("saved " + out.Title)
		}
		return m.act(err)

	case addview.CancelMsg:
		m.say("draft discarded")
		return m.act(m.ctrl.CancelAdd(context.Background()))

	case tripsview.OpenTripMsg:
		return m.act(m.ctrl.OpenTrip(context.Background(), msg.ID))

	case timelineview.OpenTripMsg:
		return m.act(m.ctrl.OpenTrip(context.Background(), msg.ID))

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.say("ready")
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == navdomain.ScreenAdd {
			return m.updateAdd(msg)
		}
		// Yield to the active list when its search filter is open.
		if m.subViewFiltering() {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			return m.navigate(m.neighbour(1))
		case "shift+tab":
			return m.navigate(m.neighbour(-1))
		case "a":
			return m.navigate(navdomain.ScreenAdd)
		case "t":
			return m.navigate(navdomain.ScreenTimeline)
		case "d":
			return m.navigate(navdomain.ScreenDetail)
		case "esc":
			if m.screen != navdomain.ScreenTrips {
				return m.navigate(navdomain.ScreenTrips)
			}
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	// Propagate the message to the active screen's sub-view.
	var cmd tea.Cmd
	switch m.screen {
	case navdomain.ScreenTrips:
		m.tripsView, cmd = m.tripsView.Update(msg)
	case navdomain.ScreenAdd:
		m.addView, cmd = m.addView.Update(msg)
	case navdomain.ScreenDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case navdomain.ScreenTimeline:
		m.timelineView, cmd = m.timelineView.Update(msg)
	}
	return m, cmd
}

// updateAdd hands keys to the form and copies the edited fields into the
// draft.
func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.addView, cmd = m.addView.Update(msg)
	if m.addView.PickerOpen() {
		return m, cmd
	}
	for _, set := range []error{
		m.ctrl.SetTitle(m.addView.Title()),
		m.ctrl.SetDate(m.addView.Date()),
		m.ctrl.SetNotes(m.addView.Notes()),
	} {
		if set != nil {
			m.notice(set)
			break
		}
	}
	return m, tea.Batch(cmd, m.refresh())
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.chooser.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.chooser.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.screen {
	case navdomain.ScreenTrips:
		return m.tripsView.View()
	case navdomain.ScreenAdd:
		return m.addView.View()
	case navdomain.ScreenDetail:
		return m.detailView.View()
	case navdomain.ScreenTimeline:
		return m.timelineView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, len(tabOrder))
	for i, s := range tabOrder {
		label := tabLabels[s]
		if s == m.screen {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "travellog  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.alert {
		left = theme.Alert.Render("! ") + left
	}
	hints := "?:help  tab:switch  a:add  :::palette  q:quit"
	if m.screen == navdomain.ScreenAdd {
		hints = "ctrl+s:save  esc:cancel  ctrl+c:quit"
	}
	right := theme.Muted.Render(hints)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "go":
		if len(parts) < 2 {
			m.notice(errors.New("usage: go <trips|add|detail|timeline>"))
			return m, nil
		}
		s, err := navdomain.ParseScreen(parts[1])
		if err != nil {
			m.notice(err)
			return m, nil
		}
		return m.navigate(s)
	case "open":
		if len(parts) < 2 {
			m.notice(errors.New("usage: open <trip-id>"))
			return m, nil
		}
		return m.act(m.ctrl.OpenTrip(context.Background(), parts[1]))
	case "locate":
		return m.Update(addview.LocateMsg{})
	case "map":
		return m.Update(addview.OpenPickerMsg{})
	case "photo":
		return m.Update(addview.PhotoMsg{})
	case "save":
		return m.Update(addview.SaveMsg{})
	case "cancel":
		return m.Update(addview.CancelMsg{})
	default:
		m.notice(fmt.Errorf("unknown command %q: %w", parts[0], apperrors.ErrInvalidInput))
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) navigate(s navdomain.Screen) (tea.Model, tea.Cmd) {
	reqs, err := m.ctrl.Navigate(context.Background(), s)
	if err != nil {
		m.notice(err)
		return m, nil
	}
	return m, tea.Batch(m.refresh(), m.requestCmds(reqs))
}

// act reports err, if any, and redraws from the controller.
func (m Model) act(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.notice(err)
	}
	return m, m.refresh()
}

func (m Model) neighbour(step int) navdomain.Screen {
	for i, s := range tabOrder {
		if s == m.screen {
			return tabOrder[(i+step+len(tabOrder))%len(tabOrder)]
		}
	}
	return navdomain.ScreenTrips
}

func (m *Model) notice(err error) {
	m.status = err.Error()
	m.alert = true
}

func (m *Model) say(s string) {
	m.status = s
	m.alert = false
}

// refresh projects the controller state into every sub-view.
func (m *Model) refresh() tea.Cmd {
	v, err := m.ctrl.Project(context.Background())
	if err != nil {
		m.notice(err)
		return nil
	}
	m.screen = v.Screen
	m.detailView.SetView(v.Detail)
	return tea.Batch(
		m.tripsView.SetTrips(v.Trips),
		m.timelineView.SetTrips(v.Trips),
		m.addView.SetView(v.Add),
	)
}

func (m Model) subViewFiltering() bool {
	switch m.screen {
	case navdomain.ScreenTrips:
		return m.tripsView.Filtering()
	case navdomain.ScreenTimeline:
		return m.timelineView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.tripsView, _ = m.tripsView.Update(sz)
	m.addView, _ = m.addView.Update(sz)
	m.detailView, _ = m.detailView.Update(sz)
	m.timelineView, _ = m.timelineView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) requestCmds(reqs []controller.Request) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, r := range reqs {
		switch r.Kind {
		case controller.RequestLocation:
			cmds = append(cmds, m.locateCmd(r))
		case controller.RequestPhoto:
			cmds = append(cmds, m.photoCmd(r))
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) locateCmd(req controller.Request) tea.Cmd {
	caps := m.caps
	return func() tea.Msg {
		if caps == nil {
			return locatedMsg{req: req, err: apperrors.ErrCapabilityUnavailable}
		}
		at, err := caps.Locate(context.Background())
		return locatedMsg{req: req, at: at, err: err}
	}
}

func (m Model) photoCmd(req controller.Request) tea.Cmd {
	caps := m.caps
	return func() tea.Msg {
		if caps == nil {
			return photoChoicesMsg{req: req, err: apperrors.ErrCapabilityUnavailable}
		}
		refs, err := caps.PhotoChoices(context.Background())
		return photoChoicesMsg{req: req, refs: refs, err: err}
	}
}
