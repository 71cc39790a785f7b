// Package documents provides the document collection view for the TUI.
package documents

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/messages"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/styles"
	"github.com/helicon-labs/ragview-cli/internal/core/domain"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
)

// ActionOption represents a document action.
type ActionOption int

const (
	ActionShowDetails ActionOption = iota
	ActionRemove
	ActionCancel
)

// View is the document collection view.
type View struct {
	styles     *styles.Styles
	collection driving.DocumentCollection

	documents    []domain.Document
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	showingMenu  bool
	menuSelected ActionOption
	confirmClear bool
	scrollOffset int
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, collection driving.DocumentCollection) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		collection: collection,
		documents:  []domain.Document{},
	}
}

// Init loads the collection. The previously held documents stay on
// screen until the refresh resolves.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.showingMenu = false
	v.confirmClear = false
	if v.collection != nil {
		v.documents = v.collection.Documents()
	}
	return v.loadDocuments()
}

// loadDocuments returns a command that refreshes the collection.
func (v *View) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		if v.collection == nil {
			return messages.DocumentsLoaded{Err: fmt.Errorf("document collection not available")}
		}

		err := v.collection.Refresh(context.Background())
		// On failure the stale collection remains usable
		return messages.DocumentsLoaded{
			Documents: v.collection.Documents(),
			Err:       err,
		}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		if v.confirmClear {
			return v.handleConfirmKeyMsg(msg)
		}
		if v.showingMenu {
			return v.handleMenuKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		v.documents = msg.Documents
		v.err = msg.Err
		if v.selected >= len(v.documents) {
			v.selected = 0
			v.scrollOffset = 0
		}
		return v, nil

	case messages.DocumentRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		// Confirmed delete: sync from the mutated collection
		if v.collection != nil {
			v.documents = v.collection.Documents()
		}
		if v.selected >= len(v.documents) && v.selected > 0 {
			v.selected--
		}
		v.err = nil
		return v, nil

	case messages.CollectionCleared:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.documents = nil
		v.selected = 0
		v.scrollOffset = 0
		v.err = nil
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if len(v.documents) > 0 {
			v.showingMenu = true
			v.menuSelected = ActionShowDetails
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "r":
		v.loading = true
		return v, v.loadDocuments()
	case "c":
		if len(v.documents) > 0 {
			v.confirmClear = true
		}
	}

	return v, nil
}

// handleMenuKeyMsg handles key presses in action menu mode.
func (v *View) handleMenuKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.menuSelected > ActionShowDetails {
			v.menuSelected--
		}
	case "down", "j":
		if v.menuSelected < ActionCancel {
			v.menuSelected++
		}
	case "enter":
		return v.handleMenuSelect()
	case "esc":
		v.showingMenu = false
	}

	return v, nil
}

// handleConfirmKeyMsg handles the clear-collection confirmation.
func (v *View) handleConfirmKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmClear = false
		return v, v.clearCollection()
	case "n", "N", "esc":
		v.confirmClear = false
	}
	return v, nil
}

// handleMenuSelect handles selection of an action.
func (v *View) handleMenuSelect() (*View, tea.Cmd) {
	if v.selected >= len(v.documents) {
		v.showingMenu = false
		return v, nil
	}

	doc := v.documents[v.selected]
	v.showingMenu = false

	switch v.menuSelected {
	case ActionShowDetails:
		return v, func() tea.Msg {
			return messages.DocumentSelected{DocumentID: doc.ID}
		}
	case ActionRemove:
		return v, v.removeDocument(doc.ID)
	case ActionCancel:
	}

	return v, nil
}

// removeDocument returns a command that deletes the document.
func (v *View) removeDocument(docID string) tea.Cmd {
	return func() tea.Msg {
		if v.collection == nil {
			return messages.DocumentRemoved{DocumentID: docID, Err: fmt.Errorf("document collection not available")}
		}

		err := v.collection.Remove(context.Background(), docID)
		return messages.DocumentRemoved{DocumentID: docID, Err: err}
	}
}

// clearCollection returns a command that deletes every document.
func (v *View) clearCollection() tea.Cmd {
	return func() tea.Msg {
		if v.collection == nil {
			return messages.CollectionCleared{Err: fmt.Errorf("document collection not available")}
		}

		return messages.CollectionCleared{Err: v.collection.ClearAll(context.Background())}
	}
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Documents (%d)", len(v.documents))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading && len(v.documents) == 0 {
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if len(v.documents) == 0 {
		b.WriteString(v.styles.Muted.Render("No documents in the collection. Upload one to get started."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.confirmClear {
		b.WriteString(v.styles.Warning.Render("Delete every document in the collection? [y/n]"))
		return b.String()
	}

	if v.showingMenu {
		b.WriteString(v.renderActionMenu())
		return b.String()
	}

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderDocument(i, &v.documents[i]))
		b.WriteString("\n")
	}

	if len(v.documents) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.documents)),
			len(v.documents))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderDocument renders a single document line.
func (v *View) renderDocument(index int, doc *domain.Document) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := doc.Metadata.FileName
	if name == "" {
		name = doc.ID
	}

	maxNameLen := v.width/2 - 4
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	info := fmt.Sprintf("%d chunks", doc.Metadata.ChunkCount)
	if doc.Metadata.Status != "" && doc.Metadata.Status != domain.StatusCompleted {
		info += "  " + string(doc.Metadata.Status)
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, info))
	}

	return v.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
		v.styles.Muted.Render(info)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	var b strings.Builder

	if v.selected < len(v.documents) {
		doc := v.documents[v.selected]
		name := doc.Metadata.FileName
		if name == "" {
			name = doc.ID
		}
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Actions for: %s", name)))
		b.WriteString("\n\n")
	}

	options := []struct {
		action ActionOption
		label  string
	}{
		{ActionShowDetails, "Show Details"},
		{ActionRemove, "Delete"},
		{ActionCancel, "Cancel"},
	}

	for _, opt := range options {
		indicator := "  "
		if v.menuSelected == opt.action {
			indicator = "> "
			b.WriteString(v.styles.Selected.Render(indicator + opt.label))
		} else {
			b.WriteString(v.styles.Normal.Render(indicator + opt.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [r] reload  [c] clear all  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the current list of documents.
func (v *View) Documents() []domain.Document {
	return v.documents
}

// SelectedIndex returns the currently selected document index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedDocument returns the currently selected document.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < len(v.documents) {
		return &v.documents[v.selected]
	}
	return nil
}

// IsShowingMenu returns true if the action menu is visible.
func (v *View) IsShowingMenu() bool {
	return v.showingMenu
}

// IsConfirmingClear returns true if the clear confirmation is visible.
func (v *View) IsConfirmingClear() bool {
	return v.confirmClear
}

// Loading returns whether a refresh is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
