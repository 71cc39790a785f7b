// Package query provides the main query view for the TUI.
package query

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/components/input"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/components/list"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/components/status"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/keymap"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/messages"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/styles"
	"github.com/helicon-labs/ragview-cli/internal/core/domain"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
)

// View represents the query view with input, result display, and
// status bar. Tab toggles between plain vector search and LLM answer
// mode.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.PassageList
	statusbar *status.Bar

	session driving.QuerySession
	ctx     context.Context

	result     *domain.QueryResult
	useLLM     bool
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new query view.
func NewView(s *styles.Styles, km *keymap.KeyMap, session driving.QuerySession) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewPassageList(s),
		statusbar:  status.NewBar(s, km),
		session:    session,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true, // Start in input mode
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryCompleted:
		v.handleQueryCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var inputCmd tea.Cmd
	v.input, inputCmd = v.input.Update(msg)
	if inputCmd != nil {
		cmds = append(cmds, inputCmd)
	}

	var listCmd tea.Cmd
	v.list, listCmd = v.list.Update(msg)
	if listCmd != nil {
		cmds = append(cmds, listCmd)
	}

	return v, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Tab toggles answer mode in either focus state
	if msg.Type == tea.KeyTab {
		v.useLLM = !v.useLLM
		return v, nil
	}

	// Enter in input mode submits the query
	if msg.Type == tea.KeyEnter && v.focusInput {
		text := v.input.Value()
		if text == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateQuerying)
		v.focusInput = false // Move to results mode after submit
		v.input.Blur()
		return v, v.performQuery(text)
	}

	// Input mode: all keys go to input, keeping its cursor blink command
	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	// Results mode: navigation and new query
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
		return v, nil
	case "j":
		v.list.MoveDown()
		return v, nil
	case "n":
		// New query: clear input and focus it
		v.focusInput = true
		v.input.Focus()
		v.input.SetValue("")
		return v, nil
	}

	return v, nil
}

// performQuery executes a query and returns the normalized result.
func (v *View) performQuery(text string) tea.Cmd {
	useLLM := v.useLLM
	return func() tea.Msg {
		if v.session == nil {
			return messages.ErrorOccurred{Err: ErrNoQuerySession}
		}

		result, err := v.session.Execute(v.ctx, text, useLLM)
		return messages.QueryCompleted{Result: result, Err: err}
	}
}

// handleQueryCompleted processes a finished query.
func (v *View) handleQueryCompleted(msg messages.QueryCompleted) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.result = msg.Result
	v.list.SetResult(msg.Result)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(msg.Result.SourceCount())

	// Switch to results mode after a successful query
	v.focusInput = false
	v.input.Blur()
}

// View renders the query view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("ragview")
	mode := v.styles.Muted.Render("  [vector]")
	if v.useLLM {
		mode = v.styles.Subtitle.Render("  [answer]")
	}
	sections = append(sections, header+mode, "")

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	// LLM variant shows the answer block above the cited sources
	if v.result != nil && v.result.Kind == domain.KindLLM {
		answer := v.styles.Answer.Width(v.width - 4).Render(v.result.Answer)
		sections = append(sections, answer, "")
	}

	sections = append(sections, v.list.View())

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-12) // Reserve space for header, input, answer, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current query input text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the query input text.
func (v *View) SetQuery(text string) {
	v.input.SetValue(text)
}

// Result returns the displayed result, or nil.
func (v *View) Result() *domain.QueryResult {
	return v.result
}

// SelectedIndex returns the index of the selected passage.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// UseLLM returns whether answer mode is active.
func (v *View) UseLLM() bool {
	return v.useLLM
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.Clear()
	v.result = nil
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
