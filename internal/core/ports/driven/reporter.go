package driven

// Reporter is the logging interface passed into each core component.
// Implementations must be safe for concurrent use.
type Reporter interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
