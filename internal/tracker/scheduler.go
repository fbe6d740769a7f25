package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/camgriff/feyfocus/internal/appquery"
)

// Store is the persistence surface the scheduler writes through.
type Store interface {
	UpsertDocuments(docs []TrackedDocument) error
	ClearAll() error
}

// Notice is a user-visible message produced by the scheduler.
type Notice struct {
	// Err is true for failure notices, false for confirmations
	Err  bool
	Text string
}

// Config wires a Scheduler.
type Config struct {
	// Interval between sampling ticks; one second matches the desktop
	// original
	Interval time.Duration
	Tracker  *Tracker
	Querier  appquery.Querier
	Store    Store

	// Notify receives user-visible notices. Failure notices are
	// deduplicated per condition so an ongoing outage alerts once.
	Notify func(Notice)

	// OnDirty runs after a merge that advanced accrual. Optional.
	OnDirty func(docs []TrackedDocument)

	// Now is the clock, replaceable in tests. Defaults to time.Now.
	Now func() time.Time
}

// queryResult carries a finished document query back into the loop.
type queryResult struct {
	gen   uint64
	paths []string
	err   error
}

// saveOp is one unit of work for the background writer. Ordered delivery
// through a single channel keeps persistence writes in tick order.
type saveOp struct {
	docs   []TrackedDocument
	clear  bool
	manual bool
}

// Scheduler drives the sample/merge/persist pipeline on a fixed
// interval. The loop goroutine is the only writer of tracking state: at
// most one document query is in flight at a time, a busy tick is
// skipped, and results issued before an application switch or clear are
// discarded by generation.
type Scheduler struct {
	cfg Config

	mu      sync.Mutex
	appPath string
	gen     uint64

	results chan queryResult
	saves   chan saveOp
	done    chan struct{}

	lastErr map[string]string // condition class -> last notified message
}

// NewScheduler builds a scheduler; call Run to start it.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Scheduler{
		cfg:     cfg,
		results: make(chan queryResult, 1),
		saves:   make(chan saveOp, 16),
		done:    make(chan struct{}),
		lastErr: make(map[string]string),
	}
}

// SetApp selects the application to monitor; an empty path disables
// monitoring. Switching bumps the generation so any in-flight query
// against the previous application is discarded instead of merged.
func (s *Scheduler) SetApp(appPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appPath = appPath
	s.gen++
}

// App returns the monitored application path, empty when none.
func (s *Scheduler) App() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appPath
}

func (s *Scheduler) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// OnDirtyFunc installs the accrual callback. Call before Run.
func (s *Scheduler) OnDirtyFunc(fn func([]TrackedDocument)) {
	s.cfg.OnDirty = fn
}

// SaveNow queues a save of the full current collection. The write is
// ordered behind any pending accrual saves.
func (s *Scheduler) SaveNow() {
	s.enqueue(saveOp{docs: s.cfg.Tracker.Snapshot(), manual: true})
}

// ClearAll empties the in-memory collection and queues a truncate of
// the store. Results of in-flight queries from before the clear are
// discarded.
func (s *Scheduler) ClearAll() {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	s.cfg.Tracker.Clear()
	s.enqueue(saveOp{clear: true})
}

func (s *Scheduler) enqueue(op saveOp) {
	select {
	case s.saves <- op:
	case <-s.done:
	}
}

// Run ticks until ctx is cancelled. It owns all merge activity; queries
// run on their own goroutine and report back through a channel, so a
// slow or hung osascript call can never delay the loop or overlap with
// another merge.
func (s *Scheduler) Run(ctx context.Context) {
	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		s.runWriter()
	}()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	inFlight := false
	for {
		select {
		case <-ctx.Done():
			close(s.done)
			writer.Wait()
			return

		case res := <-s.results:
			inFlight = false
			s.handleResult(res)

		case <-ticker.C:
			if inFlight {
				// Previous query still running; skip this tick
				continue
			}
			if s.sample() {
				inFlight = true
			}
		}
	}
}

// sample runs the foreground gate and, when it passes, launches the
// document query. Reports whether a query is now in flight.
func (s *Scheduler) sample() bool {
	appPath := s.App()
	if appPath == "" {
		return false
	}

	pid, err := s.cfg.Querier.PIDForApp(appPath)
	if err != nil {
		s.notifyErr("pid", err)
		return false
	}
	if !s.isForeground(pid) {
		return false
	}

	gen := s.generation()
	go func() {
		paths, err := s.cfg.Querier.OpenDocuments(pid)
		select {
		case s.results <- queryResult{gen: gen, paths: paths, err: err}:
		case <-s.done:
		}
	}()
	return true
}

// isForeground reports whether the monitored process currently has
// input focus. An unresolved pid means the application is not running.
func (s *Scheduler) isForeground(pid int) bool {
	if pid == 0 {
		return false
	}
	front, err := s.cfg.Querier.FrontmostPID()
	if err != nil {
		s.notifyErr("frontmost", err)
		return false
	}
	return front == pid
}

func (s *Scheduler) handleResult(res queryResult) {
	if res.gen != s.generation() {
		// Issued before an app switch or clear; never merge stale data
		return
	}
	if res.err != nil {
		s.notifyErr("query", res.err)
		return
	}
	s.clearErr("query")

	names := make([]string, 0, len(res.paths))
	for _, p := range res.paths {
		names = append(names, BaseName(p))
	}

	dirty := s.cfg.Tracker.Observe(names, s.cfg.Now())
	if len(dirty) == 0 {
		return
	}
	if s.cfg.OnDirty != nil {
		s.cfg.OnDirty(dirty)
	}
	s.enqueue(saveOp{docs: dirty})
}

// runWriter is the single store writer; it drains queued saves in
// order, so a stale lower accrual can never overwrite a newer one.
func (s *Scheduler) runWriter() {
	for {
		select {
		case op := <-s.saves:
			s.applySave(op)
		case <-s.done:
			// Flush whatever is still queued
			for {
				select {
				case op := <-s.saves:
					s.applySave(op)
				default:
					return
				}
			}
		}
	}
}

func (s *Scheduler) applySave(op saveOp) {
	if op.clear {
		if err := s.cfg.Store.ClearAll(); err != nil {
			s.notifyErr("save", err)
		}
		return
	}
	if err := s.cfg.Store.UpsertDocuments(op.docs); err != nil {
		s.notifyErr("save", err)
		return
	}
	s.clearErr("save")
	if op.manual {
		s.notifyInfo("Data saved successfully")
	}
}

// notifyErr surfaces a failure once per ongoing condition: repeats of
// the same message for the same class are suppressed until the
// condition changes or recovers.
func (s *Scheduler) notifyErr(class string, err error) {
	s.mu.Lock()
	msg := err.Error()
	if s.lastErr[class] == msg {
		s.mu.Unlock()
		return
	}
	s.lastErr[class] = msg
	s.mu.Unlock()

	if s.cfg.Notify != nil {
		s.cfg.Notify(Notice{Err: true, Text: msg})
	}
}

func (s *Scheduler) clearErr(class string) {
	s.mu.Lock()
	delete(s.lastErr, class)
	s.mu.Unlock()
}

func (s *Scheduler) notifyInfo(text string) {
	if s.cfg.Notify != nil {
		s.cfg.Notify(Notice{Text: text})
	}
}
