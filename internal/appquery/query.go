// Package appquery wraps the OS-level capabilities the tracker depends
// on: resolving the monitored application's process, checking which
// application has input focus, and enumerating the document windows of
// a process. Everything OS-specific hides behind the Querier interface
// so the core stays portable and testable.
package appquery

// Querier is the narrow OS capability surface consumed by the tracker.
type Querier interface {
	// PIDForApp resolves the process id of the running application at
	// appPath. Returns 0 with a nil error when it is not running.
	PIDForApp(appPath string) (int, error)

	// FrontmostPID reports the process id of the application currently
	// receiving user input focus.
	FrontmostPID() (int, error)

	// OpenDocuments returns the file paths open in the windows of the
	// given process. Potentially slow and unreliable; a process with no
	// open documents yields an empty slice, not an error.
	OpenDocuments(pid int) ([]string, error)
}
