package tracker

import (
	"path/filepath"
	"strings"
	"time"
)

// TrackedDocument is one document's tracking state: cumulative open time
// in the monitored application plus the user-assigned project and notes.
type TrackedDocument struct {
	// Name is the base file name without extension, the natural key
	Name string

	// FirstSeenAt is nil until the document has been observed open in
	// the current run. Records loaded from storage start with it unset;
	// it is set on the first re-observation and reset each time accrual
	// advances.
	FirstSeenAt *time.Time

	// AccruedMinutes only ever grows
	AccruedMinutes float64

	Project string
	Notes   string
}

// BaseName reduces a document path to its merge key: the final path
// component with the extension stripped. "reports/Q1 Summary.docx"
// becomes "Q1 Summary". Matching stays case-sensitive.
func BaseName(path string) string {
	name := filepath.Base(path)
	trimmed := strings.TrimSuffix(name, filepath.Ext(name))
	if trimmed == "" {
		// Dotfiles are all extension to filepath.Ext
		return name
	}
	return trimmed
}
