package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/camgriff/feyfocus/internal/appquery"
	"github.com/camgriff/feyfocus/internal/db"
	"github.com/camgriff/feyfocus/internal/tracker"
	"github.com/camgriff/feyfocus/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Track documents open in the monitored application",
	Long: `Watch one application and accrue open time per document. Opens the
interactive table by default, use --no-ui for a headless loop.

Examples:
  feyfocus watch --app /Applications/Pages.app
  feyfocus watch --no-ui   # uses FEYFOCUS_APP`,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		appPath, _ := cmd.Flags().GetString("app")
		if appPath == "" {
			appPath = cfg.AppPath
		}
		if appPath == "" {
			fmt.Println("Error: no application selected. Pass --app /Applications/Name.app or set FEYFOCUS_APP.")
			return
		}

		querier, err := appquery.New()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		// Seed the collection from prior runs before the first tick
		trk := tracker.New()
		docs, err := db.LoadDocuments()
		if err != nil {
			fmt.Printf("Error loading documents: %v\n", err)
			return
		}
		trk.Seed(docs)

		notices := make(chan tracker.Notice, 8)
		sched := tracker.NewScheduler(tracker.Config{
			Interval: cfg.TickInterval,
			Tracker:  trk,
			Querier:  querier,
			Store:    db.DocumentStore{},
			Notify: func(n tracker.Notice) {
				select {
				case notices <- n:
				default:
				}
			},
		})
		sched.SetApp(appPath)

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			runHeadless(sched, trk, notices)
			return
		}

		if err := tui.RunTrackerTUI(sched, trk, notices, cfg.ExportPath); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

// runHeadless ticks until interrupted, printing accruals and notices as
// plain lines, then saves the full collection on the way out.
func runHeadless(sched *tracker.Scheduler, trk *tracker.Tracker, notices chan tracker.Notice) {
	fmt.Printf("⏱️  Watching %s (Ctrl-C to stop)\n", sched.App())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case n := <-notices:
				if n.Err {
					fmt.Printf("Error: %s\n", n.Text)
				} else {
					fmt.Println(n.Text)
				}
			case <-done:
				return
			}
		}
	}()

	sched.OnDirtyFunc(func(docs []tracker.TrackedDocument) {
		for _, d := range docs {
			fmt.Printf("  %s — %d min\n", d.Name, int(d.AccruedMinutes))
		}
	})

	<-runScheduler(ctx, sched)
	close(done)

	fmt.Printf("Tracked %d documents.\n", trk.Len())
}

// runScheduler starts the scheduler with a final full save queued right
// before shutdown.
func runScheduler(ctx context.Context, sched *tracker.Scheduler) <-chan struct{} {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		inner, cancel := context.WithCancel(context.Background())
		ran := make(chan struct{})
		go func() {
			sched.Run(inner)
			close(ran)
		}()

		<-ctx.Done()
		sched.SaveNow()
		cancel()
		<-ran
	}()
	return stopped
}

func init() {
	watchCmd.Flags().StringP("app", "a", "", "Application to monitor, e.g. /Applications/Pages.app")
	watchCmd.Flags().Bool("no-ui", false, "Run without the interactive table")
}
