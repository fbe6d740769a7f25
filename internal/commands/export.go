package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camgriff/feyfocus/internal/db"
	"github.com/camgriff/feyfocus/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tracked documents to CSV",
	Long: `Export every stored document as CSV with the columns
Document, Total Time, Project, Notes. Time is whole minutes.`,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = cfg.ExportPath
		}

		docs, err := db.LoadDocuments()
		if err != nil {
			fmt.Printf("Error fetching documents: %v\n", err)
			return
		}

		if err := export.WriteFile(out, docs); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📄 Exported %d documents to %s\n", len(docs), out)
	}),
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file (default from FEYFOCUS_EXPORT)")
}
