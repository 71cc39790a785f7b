// Package history provides the session history view for the TUI.
package history

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/messages"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/styles"
	"github.com/helicon-labs/ragview-cli/internal/core/domain"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
)

// View lists the session's past queries, most recent first.
type View struct {
	styles  *styles.Styles
	session driving.QuerySession

	entries      []domain.HistoryEntry
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new history view.
func NewView(s *styles.Styles, session driving.QuerySession) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		session: session,
	}
}

// Init reloads the history from the session.
func (v *View) Init() tea.Cmd {
	v.Reload()
	return nil
}

// Reload re-reads the history from the session.
func (v *View) Reload() {
	if v.session != nil {
		v.entries = v.session.History()
	}
	if v.selected >= len(v.entries) {
		v.selected = 0
		v.scrollOffset = 0
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
				v.adjustScroll()
			}
		case "down", "j":
			if v.selected < len(v.entries)-1 {
				v.selected++
				v.adjustScroll()
			}
		case "c":
			if v.session != nil {
				v.session.ClearHistory()
			}
			v.entries = nil
			v.selected = 0
			v.scrollOffset = 0
			return v, func() tea.Msg {
				return messages.HistoryCleared{}
			}
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}

	return v, nil
}

// adjustScroll keeps the selected entry visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount returns how many entries fit on screen. Each entry
// renders as two lines.
func (v *View) visibleItemCount() int {
	reserved := 8
	available := (v.height - reserved) / 2
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("History (%d)", len(v.entries))))
	b.WriteString("\n\n")

	if len(v.entries) == 0 {
		b.WriteString(v.styles.Muted.Render("No queries yet this session."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.entries) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderEntry(i, &v.entries[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderEntry renders one history entry as query plus summary lines.
func (v *View) renderEntry(index int, entry *domain.HistoryEntry) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	when := entry.Timestamp.Format("15:04:05")
	header := fmt.Sprintf("%s%s  %s  (%d sources)", indicator, when, entry.Query, entry.SourceCount)

	summary := strings.ReplaceAll(entry.Answer, "\n", " ")
	maxLen := v.width - 8
	if maxLen < 20 {
		maxLen = 20
	}
	if len(summary) > maxLen {
		summary = summary[:maxLen-3] + "..."
	}

	if index == v.selected {
		return v.styles.Selected.Render(header) + "\n" + v.styles.Muted.Render("    "+summary)
	}
	return v.styles.Normal.Render(header) + "\n" + v.styles.Muted.Render("    "+summary)
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [c] clear history  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Entries returns the displayed entries.
func (v *View) Entries() []domain.HistoryEntry {
	return v.entries
}

// SelectedIndex returns the selected entry index.
func (v *View) SelectedIndex() int {
	return v.selected
}
