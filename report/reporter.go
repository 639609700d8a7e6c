package report

import "sync"

// Reporter is responsible for reporting errors, warnings, and progress
// messages to the user.  The reporter respects the configured log level and
// is synchronized: its methods can be safely called from multiple
// compilation jobs.
type Reporter struct {
	// The mutex used to synchronize reporting calls.
	m sync.Mutex

	// The selected log level.  This must be one of the enumerated log levels
	// below.
	logLevel int

	// Indicates whether or not an error has been reported.
	isErr bool
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages (default).
)

// NewReporter creates a new reporter with the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{logLevel: logLevel}
}

// ReportError reports a compile error.
func (r *Reporter) ReportError(err error) {
	if r.logLevel > LogLevelSilent {
		r.m.Lock()
		defer r.m.Unlock()

		r.isErr = true

		displayError(err)
	}
}

// ReportPhase reports the completion of a compilation phase.  These messages
// are informational and only display at the verbose log level.
func (r *Reporter) ReportPhase(msg string, args ...interface{}) {
	if r.logLevel >= LogLevelVerbose {
		r.m.Lock()
		defer r.m.Unlock()

		displayPhase(msg, args...)
	}
}

// AnyErrors returns whether or not any errors were reported.
func (r *Reporter) AnyErrors() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return r.isErr
}
