// Package tui provides an interactive terminal user interface for ragview.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query owns the current result and session history.
	Query driving.QuerySession

	// Collection owns the document list.
	Collection driving.DocumentCollection

	// Uploads owns the tracked upload lifecycle.
	Uploads driving.UploadTracker
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	query driving.QuerySession,
	collection driving.DocumentCollection,
	uploads driving.UploadTracker,
) *Ports {
	return &Ports{
		Query:      query,
		Collection: collection,
		Uploads:    uploads,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQuerySession
	}
	if p.Collection == nil {
		return ErrMissingCollection
	}
	if p.Uploads == nil {
		return ErrMissingUploadTracker
	}
	return nil
}
