// Package docdetails provides the document details view for the TUI.
package docdetails

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/messages"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/styles"
	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

// View shows a single document's metadata and chunk previews.
type View struct {
	styles *styles.Styles

	doc          *domain.Document
	err          error
	loading      bool
	width        int
	height       int
	ready        bool
	scrollOffset int
}

// NewView creates a new document details view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetLoading marks the view as waiting for a document fetch.
func (v *View) SetLoading() {
	v.loading = true
	v.doc = nil
	v.err = nil
	v.scrollOffset = 0
}

// SetDocument sets the document to display.
func (v *View) SetDocument(doc *domain.Document) {
	v.loading = false
	v.doc = doc
	v.err = nil
	v.scrollOffset = 0
}

// Update handles messages for the details view.
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
			if v.scrollOffset > 0 {
				v.scrollOffset--
			}
		case "down", "j":
			v.scrollOffset++
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewDocuments}
			}
		}
		return v, nil

	case messages.DocumentDetailsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.SetDocument(msg.Document)
		return v, nil

	case messages.ErrorOccurred:
		v.loading = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// View renders the details view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document Details"))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading document..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.doc == nil {
		b.WriteString(v.styles.Muted.Render("No document selected."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	meta := v.doc.Metadata
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  ID:       %s", v.doc.ID)))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  File:     %s", meta.FileName)))
	b.WriteString("\n")
	if meta.FileSize > 0 {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  Size:     %d bytes", meta.FileSize)))
		b.WriteString("\n")
	}
	if meta.UploadDate != "" {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  Uploaded: %s", meta.UploadDate)))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  Chunks:   %d", meta.ChunkCount)))
	b.WriteString("\n")
	if meta.Status != "" {
		statusStyle := v.styles.Normal
		switch meta.Status {
		case domain.StatusError:
			statusStyle = v.styles.Error
		case domain.StatusCompleted:
			statusStyle = v.styles.Success
		case domain.StatusPending, domain.StatusProcessing:
			statusStyle = v.styles.Warning
		}
		b.WriteString(v.styles.Normal.Render("  Status:   ") + statusStyle.Render(string(meta.Status)))
		b.WriteString("\n")
	}

	if len(v.doc.Chunks) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Chunks (%d)", len(v.doc.Chunks))))
		b.WriteString("\n")

		visible := v.visibleChunkCount()
		start := v.clampScroll(visible)
		for i := start; i < len(v.doc.Chunks) && i < start+visible; i++ {
			chunk := &v.doc.Chunks[i]
			preview := chunk.Summary
			if preview == "" {
				preview = chunk.Text
			}
			preview = strings.ReplaceAll(preview, "\n", " ")
			maxLen := v.width - 8
			if maxLen < 20 {
				maxLen = 20
			}
			if len(preview) > maxLen {
				preview = preview[:maxLen-3] + "..."
			}
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %d. %s", i+1, preview)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// clampScroll bounds the scroll offset to the chunk list.
func (v *View) clampScroll(visible int) int {
	maxOffset := len(v.doc.Chunks) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.scrollOffset > maxOffset {
		v.scrollOffset = maxOffset
	}
	return v.scrollOffset
}

// visibleChunkCount returns how many chunk lines fit on screen.
func (v *View) visibleChunkCount() int {
	reserved := 12
	available := v.height - reserved
	if available < 3 {
		available = 3
	}
	return available
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Document returns the displayed document.
func (v *View) Document() *domain.Document {
	return v.doc
}

// Loading returns whether a fetch is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
