// Package export serializes the tracked-document collection to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/camgriff/feyfocus/internal/tracker"
)

// Header is the fixed first row of every export.
var Header = []string{"Document", "Total Time", "Project", "Notes"}

// WriteCSV writes docs to w in export order. Accrued time is truncated
// to whole minutes.
func WriteCSV(w io.Writer, docs []tracker.TrackedDocument) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, doc := range docs {
		row := []string{
			doc.Name,
			strconv.Itoa(int(doc.AccruedMinutes)),
			doc.Project,
			doc.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile exports docs to a CSV file at path.
func WriteFile(path string, docs []tracker.TrackedDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, docs); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
