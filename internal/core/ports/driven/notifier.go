package driven

// Level classifies a notification.
type Level int

const (
	// LevelInfo is a neutral informational notice.
	LevelInfo Level = iota

	// LevelSuccess reports a completed operation.
	LevelSuccess

	// LevelError reports a failure.
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is one transient user-facing notification.
type Notice struct {
	// Level classifies the notice.
	Level Level

	// Title is a short heading.
	Title string

	// Description is the one-line detail.
	Description string
}

// Notifier is the injected notification channel. State owners convert
// every gateway failure into a notice through it; no error propagates
// to the UI layer unhandled.
type Notifier interface {
	// Notify emits one transient notification.
	Notify(n Notice)
}
