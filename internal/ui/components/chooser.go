package components

import (
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"travellog/internal/ui/theme"
)

// ChooserPickMsg is emitted when the user picks an image.
type ChooserPickMsg struct{ Ref string }

// ChooserCancelMsg is emitted when the user dismisses the chooser.
type ChooserCancelMsg struct{}

type imageItem string

func (i imageItem) Title() string       { return path.Base(string(i)) }
func (i imageItem) Description() string { return strings.TrimPrefix(string(i), "file://") }
func (i imageItem) FilterValue() string { return path.Base(string(i)) }

var chooserStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Lavender).
	Background(theme.Mantle).
	Padding(0, 1)

// Chooser is the photo picker overlay.
type Chooser struct {
	list    list.Model
	visible bool
}

func NewChooser() Chooser {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 60, 16)
	l.Title = "Choose a photo"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	return Chooser{list: l}
}

func (c Chooser) Visible() bool { return c.visible }

// Open shows refs, newest first as supplied.
func (c *Chooser) Open(refs []string) tea.Cmd {
	items := make([]list.Item, len(refs))
	for i, r := range refs {
		items[i] = imageItem(r)
	}
	c.visible = true
	c.list.ResetFilter()
	c.list.Select(0)
	return c.list.SetItems(items)
}

func (c *Chooser) SetSize(w, h int) {
	c.list.SetSize(max(w-4, 20), max(h-4, 6))
}

func (c Chooser) Update(msg tea.Msg) (Chooser, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && c.list.FilterState() != list.Filtering {
		switch key.String() {
		case "esc":
			c.visible = false
			return c, func() tea.Msg { return ChooserCancelMsg{} }
		case "enter":
			item, ok := c.list.SelectedItem().(imageItem)
			if !ok {
				return c, nil
			}
			c.visible = false
			return c, func() tea.Msg { return ChooserPickMsg{Ref: string(item)} }
		}
	}
	var cmd tea.Cmd
	c.list, cmd = c.list.Update(msg)
	return c, cmd
}

func (c Chooser) View() string {
	if !c.visible {
		return ""
	}
	return chooserStyle.Render(c.list.View() + "\n" + theme.Muted.Render("enter: use photo  esc: keep current  /: filter"))
}
