package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/messages"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/styles"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/views/docdetails"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/views/documents"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/views/history"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/views/menu"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/views/query"
	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/views/upload"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// queryView is the query input and results view.
	queryView *query.View

	// documentsView is the document collection view.
	documentsView *documents.View

	// docDetailsView is the single-document detail view.
	docDetailsView *docdetails.View

	// uploadView is the upload view with progress display.
	uploadView *upload.View

	// historyView lists the session's past queries.
	historyView *history.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		menuView:       menu.NewView(s),
		queryView:      query.NewView(s, nil, ports.Query),
		documentsView:  documents.NewView(s, ports.Collection),
		docDetailsView: docdetails.NewView(s),
		uploadView:     upload.NewView(s, ports.Uploads),
		historyView:    history.NewView(s, ports.Query),
		currentView:    messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ragview - RAG Document Explorer"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.queryView.SetDimensions(msg.Width, msg.Height)
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.docDetailsView.SetDimensions(msg.Width, msg.Height)
		a.uploadView.SetDimensions(msg.Width, msg.Height)
		a.historyView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewQuery:
			a.queryView, cmd = a.queryView.Update(msg)
			return a, cmd

		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
			return a, cmd

		case messages.ViewDocDetails:
			a.docDetailsView, cmd = a.docDetailsView.Update(msg)
			return a, cmd

		case messages.ViewUpload:
			a.uploadView, cmd = a.uploadView.Update(msg)
			return a, cmd

		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewQuery:
			a.queryView.Reset()
			return a, a.queryView.Init()
		case messages.ViewDocuments:
			return a, a.documentsView.Init()
		case messages.ViewUpload:
			a.uploadView.Reset()
			return a, a.uploadView.Init()
		case messages.ViewHistory:
			return a, a.historyView.Init()
		case messages.ViewMenu, messages.ViewHelp, messages.ViewDocDetails:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.QueryCompleted:
		a.queryView, cmd = a.queryView.Update(msg)
		a.err = a.queryView.Err()
		// New entries land in session history as queries resolve
		a.historyView.Reload()
		return a, cmd

	case messages.DocumentsLoaded, messages.DocumentRemoved, messages.CollectionCleared:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.err = a.documentsView.Err()
		return a, cmd

	case messages.DocumentSelected:
		a.currentView = messages.ViewDocDetails
		a.docDetailsView.SetLoading()
		return a, a.loadDocument(msg.DocumentID)

	case messages.DocumentDetailsLoaded:
		a.docDetailsView, cmd = a.docDetailsView.Update(msg)
		return a, cmd

	case messages.UploadFinished, messages.UploadTick:
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case messages.UploadSettled:
		// Sent by the completion callback once processing has settled
		return a, a.documentsView.Init()

	case messages.HistoryCleared:
		a.historyView.Reload()
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewQuery:
			a.queryView, cmd = a.queryView.Update(msg)
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewDocDetails:
			a.docDetailsView, cmd = a.docDetailsView.Update(msg)
		case messages.ViewUpload:
			a.uploadView, cmd = a.uploadView.Update(msg)
		case messages.ViewMenu, messages.ViewHistory, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewQuery:
		a.queryView, cmd = a.queryView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocDetails:
		a.docDetailsView, cmd = a.docDetailsView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// loadDocument returns a command that fetches a single document.
func (a *App) loadDocument(docID string) tea.Cmd {
	return func() tea.Msg {
		doc, err := a.ports.Collection.Get(a.ctx, docID)
		return messages.DocumentDetailsLoaded{
			DocumentID: docID,
			Document:   doc,
			Err:        err,
		}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewQuery:
		return a.queryView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewDocDetails:
		return a.docDetailsView.View()
	case messages.ViewUpload:
		return a.uploadView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Query:
  (type)      Enter query text
  tab         Toggle answer mode (vector / LLM)
  enter       Submit query
  n           New query from results
  esc         Back to Menu

Documents:
  j/k, ↑/↓    Navigate documents
  enter       Actions (details, delete)
  r           Reload
  c           Clear collection
  esc         Back to Menu

Upload:
  (type)      Enter a file path
  enter       Upload
  esc         Back to Menu

History:
  c           Clear history
  esc         Back to Menu

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.queryView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.uploadView.SetDimensions(width, height)
}
