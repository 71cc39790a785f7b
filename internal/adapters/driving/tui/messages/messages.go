// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewQuery is the query input and results view.
	ViewQuery
	// ViewDocuments lists the document collection.
	ViewDocuments
	// ViewDocDetails shows a single document's metadata and chunks.
	ViewDocDetails
	// ViewUpload is the upload view with progress display.
	ViewUpload
	// ViewHistory lists the session's past queries.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewQuery:
		return "query"
	case ViewDocuments:
		return "documents"
	case ViewDocDetails:
		return "doc_details"
	case ViewUpload:
		return "upload"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// QueryCompleted carries a normalized query result back to the model.
type QueryCompleted struct {
	Result *domain.QueryResult
	Err    error
}

// DocumentsLoaded carries the refreshed document collection.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentSelected signals a document was selected for detail view.
type DocumentSelected struct {
	DocumentID string
}

// DocumentDetailsLoaded carries a single fetched document.
type DocumentDetailsLoaded struct {
	DocumentID string
	Document   *domain.Document
	Err        error
}

// DocumentRemoved signals a delete completed.
type DocumentRemoved struct {
	DocumentID string
	Err        error
}

// CollectionCleared signals a clear-collection completed.
type CollectionCleared struct {
	Err error
}

// UploadFinished signals the upload transfer resolved.
type UploadFinished struct {
	FileName string
	Ack      *domain.UploadAck
	Err      error
}

// UploadTick drives polling of the upload lifecycle state.
type UploadTick struct{}

// UploadSettled signals the tracked lifecycle reached completed, after
// the processing settle. The collection has new content by now.
type UploadSettled struct{}

// HistoryCleared signals the session history was cleared.
type HistoryCleared struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
