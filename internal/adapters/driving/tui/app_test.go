package tui

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/tui/messages"
	"github.com/helicon-labs/ragview-cli/internal/core/domain"
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
)

type mockQuerySession struct {
	result  *domain.QueryResult
	history []domain.HistoryEntry
}

var _ driving.QuerySession = (*mockQuerySession)(nil)

func (m *mockQuerySession) Execute(context.Context, string, bool) (*domain.QueryResult, error) {
	return m.result, nil
}
func (m *mockQuerySession) ClearHistory() { m.history = nil }

func (m *mockQuerySession) Current() *domain.QueryResult { return m.result }

func (m *mockQuerySession) History() []domain.HistoryEntry { return m.history }

func (m *mockQuerySession) Busy() bool { return false }

func (m *mockQuerySession) SetResultCount(int) {}

type mockCollection struct {
	docs   []domain.Document
	getErr error
}

var _ driving.DocumentCollection = (*mockCollection)(nil)

func (m *mockCollection) Refresh(context.Context) error { return nil }

func (m *mockCollection) Remove(context.Context, string) error { return nil }

func (m *mockCollection) ClearAll(context.Context) error { return nil }

func (m *mockCollection) Documents() []domain.Document { return m.docs }

func (m *mockCollection) Loading() bool { return false }

func (m *mockCollection) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type mockUploads struct{}

var _ driving.UploadTracker = (*mockUploads)(nil)

func (m *mockUploads) Start(_ context.Context, _ string, content io.Reader, _ int64) (*domain.UploadAck, error) {
	_, _ = io.Copy(io.Discard, content)
	return &domain.UploadAck{DocID: "doc-new"}, nil
}
func (m *mockUploads) State() *domain.UploadState { return nil }

func (m *mockUploads) SetObserver(func(domain.UploadState)) {}

func (m *mockUploads) SetOnComplete(func()) {}

func testPorts() *Ports {
	return NewPorts(&mockQuerySession{}, &mockCollection{}, &mockUploads{})
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(testPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

func TestNewPorts(t *testing.T) {
	p := testPorts()
	require.NotNil(t, p)
	assert.NoError(t, p.Validate())
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{
			name:  "missing query session",
			ports: NewPorts(nil, &mockCollection{}, &mockUploads{}),
			want:  ErrMissingQuerySession,
		},
		{
			name:  "missing collection",
			ports: NewPorts(&mockQuerySession{}, nil, &mockUploads{}),
			want:  ErrMissingCollection,
		},
		{
			name:  "missing upload tracker",
			ports: NewPorts(&mockQuerySession{}, &mockCollection{}, nil),
			want:  ErrMissingUploadTracker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.want)
		})
	}
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(NewPorts(nil, nil, nil))
	require.Error(t, err)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingQuerySession)
}

func TestNewApp_StartsOnMenu(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestUpdate_WindowSize(t *testing.T) {
	app, err := NewApp(testPorts())
	require.NoError(t, err)
	assert.False(t, app.Ready())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(*App)

	assert.True(t, app.Ready())
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_ViewChanged(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewQuery})
	app = model.(*App)
	assert.Equal(t, messages.ViewQuery, app.CurrentView())

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewDocuments})
	app = model.(*App)
	assert.Equal(t, messages.ViewDocuments, app.CurrentView())

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewMenu})
	app = model.(*App)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestUpdate_DocumentSelected(t *testing.T) {
	doc := domain.Document{ID: "doc-1", Metadata: domain.DocumentMetadata{FileName: "guide.pdf"}}
	ports := NewPorts(&mockQuerySession{}, &mockCollection{docs: []domain.Document{doc}}, &mockUploads{})
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	model, cmd := app.Update(messages.DocumentSelected{DocumentID: "doc-1"})
	app = model.(*App)
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewDocDetails, app.CurrentView())

	msg := cmd()
	loaded, ok := msg.(messages.DocumentDetailsLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, "doc-1", loaded.Document.ID)
}

func TestUpdate_DocumentSelected_FetchError(t *testing.T) {
	ports := NewPorts(&mockQuerySession{}, &mockCollection{getErr: errors.New("fetch failed")}, &mockUploads{})
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	_, cmd := app.Update(messages.DocumentSelected{DocumentID: "doc-1"})
	require.NotNil(t, cmd)

	loaded, ok := cmd().(messages.DocumentDetailsLoaded)
	require.True(t, ok)
	assert.Error(t, loaded.Err)
}

func TestUpdate_QueryCompletedReloadsHistory(t *testing.T) {
	session := &mockQuerySession{}
	ports := NewPorts(session, &mockCollection{}, &mockUploads{})
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	session.history = []domain.HistoryEntry{{ID: "h1", Query: "a question"}}
	result := &domain.QueryResult{Kind: domain.KindVector, Hits: []domain.VectorHit{{Text: "hit"}}}

	model, _ := app.Update(messages.QueryCompleted{Result: result})
	app = model.(*App)

	assert.NoError(t, app.Err())
}

func TestUpdate_UploadSettledRefreshesDocuments(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.UploadSettled{})
	require.NotNil(t, cmd)

	_, ok := cmd().(messages.DocumentsLoaded)
	assert.True(t, ok)
}

func TestUpdate_UploadFinishedDoesNotRefreshDocuments(t *testing.T) {
	app := newTestApp(t)

	// Transfer success is too early: server-side processing has not
	// settled yet, so the collection refresh waits for UploadSettled.
	_, cmd := app.Update(messages.UploadFinished{FileName: "report.txt", Ack: &domain.UploadAck{DocID: "doc-new"}})
	if cmd != nil {
		_, ok := cmd().(messages.DocumentsLoaded)
		assert.False(t, ok)
	}
}

func TestUpdate_QuitMessage(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_ErrorOccurred(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ErrorOccurred{Err: errors.New("backend unavailable")})
	app = model.(*App)

	assert.Error(t, app.Err())
}

func TestView_NotReady(t *testing.T) {
	app, err := NewApp(testPorts())
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestView_Help(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewHelp})
	app = model.(*App)

	out := app.View()
	assert.Contains(t, out, "Help")
	assert.Contains(t, out, "Toggle answer mode")
	assert.Contains(t, out, "Clear history")
}

func TestHelp_EscReturnsToMenu(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewHelp})
	app = model.(*App)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestMenuNavigation_ThroughApp(t *testing.T) {
	app := newTestApp(t)

	// Select the first menu item (Query)
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	require.NotNil(t, cmd)

	model, _ = app.Update(cmd())
	app = model.(*App)

	assert.Equal(t, messages.ViewQuery, app.CurrentView())
}
