package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for feyfocus",
	Long:  `Display detailed help for all feyfocus commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
███████╗███████╗██╗   ██╗
██╔════╝██╔════╝╚██╗ ██╔╝
█████╗  █████╗   ╚████╔╝
██╔══╝  ██╔══╝    ╚██╔╝
██║     ███████╗   ██║
╚═╝     ╚══════╝   ╚═╝

feyfocus - Document Time Tracker

COMMANDS:

  watch                   Track documents open in one application
    -a, --app             Application to monitor (e.g. /Applications/Pages.app)
    --no-ui               Headless loop, one line per accrual

    Interactive keys:
      ↑/↓           Navigate documents
      p             Edit project of selected document
      n             Edit notes of selected document
      s             Save all documents now
      x             Export to CSV
      c             Clear all data
      esc/q         Quit (saves on the way out)

  ls                      List stored documents

  export                  Export stored documents to CSV
    -o, --output          Output file path

  projects                List projects
  projects add <name>     Create a project (no-op if it exists)

  clear                   Delete all documents and projects
    -y, --yes             Skip the confirmation prompt

  version                 Show version information
  help                    Show this help

CONFIGURATION (environment, .env supported):

  FEYFOCUS_DB             Database file (default ~/.feyfocus/feyfocus.db)
  FEYFOCUS_APP            Default application to monitor
  FEYFOCUS_INTERVAL_SEC   Sampling interval in seconds (default 1)
  FEYFOCUS_EXPORT         Default CSV export path

Time accrues only while the monitored application is frontmost.

`)
}
