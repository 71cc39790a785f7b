package tui

import "errors"

// ErrMissingQuerySession is returned when the query session is not provided.
var ErrMissingQuerySession = errors.New("tui: query session is required")

// ErrMissingCollection is returned when the document collection is not provided.
var ErrMissingCollection = errors.New("tui: document collection is required")

// ErrMissingUploadTracker is returned when the upload tracker is not provided.
var ErrMissingUploadTracker = errors.New("tui: upload tracker is required")
