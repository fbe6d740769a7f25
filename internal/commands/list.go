package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/camgriff/feyfocus/internal/db"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tracked documents",
	Long:    "List every stored document with its accrued time, project, and notes",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		docs, err := db.LoadDocuments()
		if err != nil {
			fmt.Printf("Error fetching documents: %v\n", err)
			return
		}

		if len(docs) == 0 {
			fmt.Println("No documents tracked yet. Use 'feyfocus watch --app <path>' to start tracking.")
			return
		}

		// Print table header
		fmt.Printf("%-32s %-10s %-20s %s\n", "DOCUMENT", "MINUTES", "PROJECT", "NOTES")
		fmt.Println(strings.Repeat("-", 80))

		// Print each document
		for _, doc := range docs {
			// Truncate name if too long
			name := doc.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}

			// Truncate project if too long
			project := doc.Project
			if len(project) > 18 {
				project = project[:15] + "..."
			}

			fmt.Printf("%-32s %-10d %-20s %s\n",
				name,
				int(doc.AccruedMinutes),
				project,
				doc.Notes)
		}
	}),
}
