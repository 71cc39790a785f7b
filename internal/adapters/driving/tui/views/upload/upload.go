// Package upload provides the upload view for the TUI.
//
// The view polls the upload tracker while a lifecycle is active, so
// the uploading, processing, and completed phases render as they
// happen, and the display returns to idle when the tracker clears.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/messages"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/styles"
	"github.com/helicon-labs/ragview-cli/internal/core/domain"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
)

// pollInterval is how often the tracked upload state is re-read while
// a lifecycle is active.
const pollInterval = 100 * time.Millisecond

// View is the upload view with a path input and live progress display.
type View struct {
	styles  *styles.Styles
	uploads driving.UploadTracker

	input    textinput.Model
	progress progress.Model

	state    *domain.UploadState
	lastAck  *domain.UploadAck
	err      error
	polling  bool
	width    int
	height   int
	ready    bool
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, uploads driving.UploadTracker) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Path to a document..."
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &View{
		styles:   s,
		uploads:  uploads,
		input:    ti,
		progress: progress.New(progress.WithDefaultGradient()),
		width:    80,
		height:   24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.UploadTick:
		if v.uploads != nil {
			v.state = v.uploads.State()
		}
		if v.state == nil {
			// Lifecycle cleared back to idle
			v.polling = false
			return v, nil
		}
		return v, v.tick()

	case messages.UploadFinished:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			v.lastAck = msg.Ack
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyEnter {
		path := strings.TrimSpace(v.input.Value())
		if path == "" {
			return v, nil
		}
		v.err = nil
		v.lastAck = nil
		v.input.SetValue("")
		v.polling = true
		return v, tea.Batch(v.startUpload(path), v.tick())
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// startUpload returns a command that runs the upload transfer.
func (v *View) startUpload(path string) tea.Cmd {
	return func() tea.Msg {
		fileName := filepath.Base(path)

		f, err := os.Open(path)
		if err != nil {
			return messages.UploadFinished{FileName: fileName, Err: fmt.Errorf("failed to open %s: %w", path, err)}
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return messages.UploadFinished{FileName: fileName, Err: fmt.Errorf("failed to stat %s: %w", path, err)}
		}

		ack, err := v.uploads.Start(context.Background(), fileName, f, info.Size())
		return messages.UploadFinished{FileName: fileName, Ack: ack, Err: err}
	}
}

// tick schedules the next state poll.
func (v *View) tick() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return messages.UploadTick{}
	})
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Upload"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Normal.Render("File: "))
	b.WriteString(v.styles.InputField.Render(v.input.View()))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderLifecycle())

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] upload  [esc] back"))

	return b.String()
}

// renderLifecycle renders the tracked upload state.
func (v *View) renderLifecycle() string {
	if v.state == nil {
		if v.lastAck != nil {
			line := "Upload complete"
			if v.lastAck.DocID != "" {
				line += "  (" + v.lastAck.DocID + ")"
			}
			return v.styles.Success.Render(line)
		}
		return v.styles.Muted.Render("Drop a file path above to ingest it.")
	}

	var b strings.Builder
	b.WriteString(v.styles.Normal.Render(v.state.FileName))
	b.WriteString("\n")

	switch v.state.Status {
	case domain.UploadUploading:
		b.WriteString(v.progress.ViewAs(v.state.Progress / 100))
	case domain.UploadProcessing:
		b.WriteString(v.progress.ViewAs(1.0))
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render("Processing..."))
	case domain.UploadCompleted:
		b.WriteString(v.progress.ViewAs(1.0))
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render("Completed"))
	case domain.UploadError:
		b.WriteString(v.styles.Error.Render("Upload failed"))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	v.input.Width = inputWidth

	barWidth := width - 8
	if barWidth < 20 {
		barWidth = 20
	}
	v.progress.Width = barWidth
}

// State returns the last polled upload state.
func (v *View) State() *domain.UploadState {
	return v.state
}

// Polling returns whether the view is polling the tracker.
func (v *View) Polling() bool {
	return v.polling
}

// LastAck returns the acknowledgment of the last finished upload.
func (v *View) LastAck() *domain.UploadAck {
	return v.lastAck
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Value returns the current path input text.
func (v *View) Value() string {
	return v.input.Value()
}

// SetValue sets the path input text.
func (v *View) SetValue(value string) {
	v.input.SetValue(value)
}

// Reset clears the view back to its idle state.
func (v *View) Reset() {
	v.input.SetValue("")
	v.err = nil
	v.lastAck = nil
	v.state = nil
	v.polling = false
}
