package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camgriff/feyfocus/internal/config"
	"github.com/camgriff/feyfocus/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "feyfocus",
	Short: "Track time spent on documents in a desktop application",
	Long: `feyfocus watches one desktop application and records how long each
document stays open in it, accumulating minutes per document with
projects and notes, persisted to a local SQLite database.`,
}

// initDB loads configuration and opens the database. The store is the
// only durable state; failing to open it aborts the command.
func initDB() error {
	cfg = config.Load()
	if err := db.Initialize(cfg.DBPath); err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	return nil
}

// withDB wraps a command function to initialize the database first
func withDB(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := initDB(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fn(cmd, args)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("feyfocus %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands here
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
