package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/camgriff/feyfocus/internal/tracker"
)

// RunTrackerTUI runs the scheduler alongside the interactive document
// table and blocks until the user quits. The collection is saved in
// full on the way out.
func RunTrackerTUI(sched *tracker.Scheduler, trk *tracker.Tracker, notices chan tracker.Notice, exportPath string) error {
	ctx, cancel := context.WithCancel(context.Background())

	schedDone := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(schedDone)
	}()

	model := NewTrackerModel(sched, trk, notices, exportPath)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()

	// Queue a final full save, then let the writer drain it
	sched.SaveNow()
	cancel()
	<-schedDone

	if err != nil {
		return err
	}

	fmt.Printf("💾 Saved %d tracked documents.\n", trk.Len())
	return nil
}
