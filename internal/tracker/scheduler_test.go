package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeQuerier scripts the OS adapter for scheduler tests.
type fakeQuerier struct {
	mu       sync.Mutex
	pid      int
	front    int
	paths    []string
	queryErr error

	queryCalls    int
	maxConcurrent int
	inFlight      int

	// block, when set, holds OpenDocuments until released
	block chan struct{}
}

func (q *fakeQuerier) PIDForApp(string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pid, nil
}

func (q *fakeQuerier) FrontmostPID() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.front, nil
}

func (q *fakeQuerier) OpenDocuments(int) ([]string, error) {
	q.mu.Lock()
	q.queryCalls++
	q.inFlight++
	if q.inFlight > q.maxConcurrent {
		q.maxConcurrent = q.inFlight
	}
	block := q.block
	paths, err := q.paths, q.queryErr
	q.mu.Unlock()

	if block != nil {
		<-block
	}

	q.mu.Lock()
	q.inFlight--
	q.mu.Unlock()
	return paths, err
}

func (q *fakeQuerier) calls() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.queryCalls
}

// fakeStore records writes for scheduler tests.
type fakeStore struct {
	mu      sync.Mutex
	upserts [][]TrackedDocument
	cleared bool
	err     error
}

func (s *fakeStore) UpsertDocuments(docs []TrackedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.upserts = append(s.upserts, docs)
	return nil
}

func (s *fakeStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared = true
	return nil
}

func (s *fakeStore) upsertCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.upserts)
}

func (s *fakeStore) wasCleared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

// noticeRecorder collects scheduler notices.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) record(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) errCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notices {
		if n.Err {
			count++
		}
	}
	return count
}

func newTestScheduler(t *testing.T, q *fakeQuerier, store *fakeStore, rec *noticeRecorder) (*Scheduler, *Tracker, context.CancelFunc) {
	t.Helper()

	trk := New()
	sched := NewScheduler(Config{
		Interval: 5 * time.Millisecond,
		Tracker:  trk,
		Querier:  q,
		Store:    store,
		Notify:   rec.record,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return sched, trk, cancel
}

func TestScheduler_NoAppSelectedIsNoOp(t *testing.T) {
	q := &fakeQuerier{pid: 7, front: 7, paths: []string{"/docs/Report.docx"}}
	store := &fakeStore{}
	rec := &noticeRecorder{}

	_, trk, _ := newTestScheduler(t, q, store, rec)

	time.Sleep(50 * time.Millisecond)
	require.Zero(t, q.calls(), "no query without a selected application")
	require.Zero(t, trk.Len())
	require.Zero(t, store.upsertCount())
}

func TestScheduler_BackgroundedAppNeverAccrues(t *testing.T) {
	q := &fakeQuerier{pid: 7, front: 99, paths: []string{"/docs/Report.docx"}}
	store := &fakeStore{}
	rec := &noticeRecorder{}

	sched, trk, _ := newTestScheduler(t, q, store, rec)
	sched.SetApp("/Applications/Pages.app")

	time.Sleep(50 * time.Millisecond)
	require.Zero(t, q.calls(), "no document query while the app is backgrounded")
	require.Zero(t, trk.Len())
	require.Zero(t, store.upsertCount())
}

func TestScheduler_ForegroundAppAccruesAndSaves(t *testing.T) {
	q := &fakeQuerier{pid: 7, front: 7, paths: []string{"/docs/Report.docx"}}
	store := &fakeStore{}
	rec := &noticeRecorder{}

	sched, trk, _ := newTestScheduler(t, q, store, rec)
	sched.SetApp("/Applications/Pages.app")

	require.Eventually(t, func() bool {
		return store.upsertCount() > 0
	}, time.Second, 5*time.Millisecond)

	docs := trk.Snapshot()
	require.Len(t, docs, 1)
	require.Equal(t, "Report", docs[0].Name, "paths reduce to base names")
	require.Equal(t, 1.0, docs[0].AccruedMinutes)

	store.mu.Lock()
	first := store.upserts[0]
	store.mu.Unlock()
	require.Len(t, first, 1)
	require.Equal(t, "Report", first[0].Name)
}

func TestScheduler_QueryErrorNotifiedOncePerCondition(t *testing.T) {
	q := &fakeQuerier{pid: 7, front: 7, queryErr: errors.New("accessibility access denied")}
	store := &fakeStore{}
	rec := &noticeRecorder{}

	sched, _, _ := newTestScheduler(t, q, store, rec)
	sched.SetApp("/Applications/Pages.app")

	require.Eventually(t, func() bool {
		return q.calls() >= 5
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, 1, rec.errCount(), "an ongoing failure alerts once, not per tick")
}

func TestScheduler_AtMostOneQueryInFlight(t *testing.T) {
	q := &fakeQuerier{pid: 7, front: 7, block: make(chan struct{})}
	store := &fakeStore{}
	rec := &noticeRecorder{}

	sched, _, _ := newTestScheduler(t, q, store, rec)
	sched.SetApp("/Applications/Pages.app")

	require.Eventually(t, func() bool {
		return q.calls() == 1
	}, time.Second, 5*time.Millisecond)

	// Many ticks pass while the query hangs; they must all be skipped
	time.Sleep(50 * time.Millisecond)
	close(q.block)

	q.mu.Lock()
	defer q.mu.Unlock()
	require.Equal(t, 1, q.maxConcurrent)
}

func TestScheduler_StaleResultDiscardedAfterSwitch(t *testing.T) {
	q := &fakeQuerier{pid: 7, front: 7, paths: []string{"/docs/Report.docx"}, block: make(chan struct{})}
	store := &fakeStore{}
	rec := &noticeRecorder{}

	sched, trk, _ := newTestScheduler(t, q, store, rec)
	sched.SetApp("/Applications/Pages.app")

	require.Eventually(t, func() bool {
		return q.calls() == 1
	}, time.Second, 5*time.Millisecond)

	// Monitored app switches while the query is still in flight
	sched.SetApp("/Applications/Numbers.app")
	q.mu.Lock()
	q.front = 99 // new app never comes to the foreground
	q.mu.Unlock()
	close(q.block)

	time.Sleep(50 * time.Millisecond)
	require.Zero(t, trk.Len(), "result from before the switch must not merge")
	require.Zero(t, store.upsertCount())
}

func TestScheduler_SaveNowPersistsFullCollection(t *testing.T) {
	q := &fakeQuerier{pid: 7, front: 99}
	store := &fakeStore{}
	rec := &noticeRecorder{}

	sched, trk, _ := newTestScheduler(t, q, store, rec)
	trk.Seed([]TrackedDocument{
		{Name: "Report", AccruedMinutes: 12},
		{Name: "Memo", AccruedMinutes: 3},
	})

	sched.SaveNow()

	require.Eventually(t, func() bool {
		return store.upsertCount() == 1
	}, time.Second, 5*time.Millisecond)

	store.mu.Lock()
	saved := store.upserts[0]
	store.mu.Unlock()
	require.Len(t, saved, 2)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.notices, 1)
	require.False(t, rec.notices[0].Err)
	require.Equal(t, "Data saved successfully", rec.notices[0].Text)
}

func TestScheduler_ClearAllEmptiesMemoryAndStore(t *testing.T) {
	q := &fakeQuerier{pid: 7, front: 99}
	store := &fakeStore{}
	rec := &noticeRecorder{}

	sched, trk, _ := newTestScheduler(t, q, store, rec)
	trk.Seed([]TrackedDocument{{Name: "Report", AccruedMinutes: 12}})

	sched.ClearAll()

	require.Zero(t, trk.Len())
	require.Eventually(t, store.wasCleared, time.Second, 5*time.Millisecond)
}

func TestScheduler_SaveErrorSurfacesAndTickingContinues(t *testing.T) {
	q := &fakeQuerier{pid: 7, front: 7, paths: []string{"/docs/Report.docx"}}
	store := &fakeStore{err: errors.New("disk I/O error")}
	rec := &noticeRecorder{}

	sched, trk, _ := newTestScheduler(t, q, store, rec)
	sched.SetApp("/Applications/Pages.app")

	require.Eventually(t, func() bool {
		return rec.errCount() >= 1
	}, time.Second, 5*time.Millisecond)

	// The loop keeps sampling after a failed save
	before := q.calls()
	require.Eventually(t, func() bool {
		return q.calls() > before
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, 1, trk.Len(), "in-memory state survives a failed save")
}
