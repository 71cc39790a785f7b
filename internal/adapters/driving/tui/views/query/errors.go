package query

import "errors"

// ErrNoQuerySession is returned when no query session is configured.
var ErrNoQuerySession = errors.New("query session not available")
