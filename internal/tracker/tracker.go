package tracker

import (
	"math"
	"sync"
	"time"
)

// bootstrapMinutes is credited on the first sighting of a new document.
// The true open time before first detection is unknowable, so the first
// observation counts as one minute rather than zero.
const bootstrapMinutes = 1.0

// Tracker owns the in-memory collection of tracked documents. Every
// access goes through its methods; a single mutex serializes accrual
// from the scheduler and project/notes edits from the presentation
// layer, so no caller ever mutates a record directly.
type Tracker struct {
	mu    sync.Mutex
	docs  map[string]*TrackedDocument
	order []string // first-observation order, drives listing and export
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{
		docs: make(map[string]*TrackedDocument),
	}
}

// Seed loads previously persisted documents into the collection. Seeded
// records keep their accrued time but have no FirstSeenAt, so accrual
// resumes only once they are observed open again.
func (t *Tracker) Seed(docs []TrackedDocument) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, d := range docs {
		if _, exists := t.docs[d.Name]; exists {
			continue
		}
		rec := d
		rec.FirstSeenAt = nil
		t.docs[rec.Name] = &rec
		t.order = append(t.order, rec.Name)
	}
}

// Observe merges one sample of currently-open document names into the
// collection and returns copies of the records whose accrued time
// changed. Names are merge keys as produced by BaseName.
func (t *Tracker) Observe(names []string, now time.Time) []TrackedDocument {
	t.mu.Lock()
	defer t.mu.Unlock()

	var dirty []TrackedDocument
	for _, name := range names {
		if name == "" {
			continue
		}
		if rec, changed := t.observeOne(name, now); changed {
			dirty = append(dirty, rec)
		}
	}
	return dirty
}

// observeOne applies the per-document accrual rule. Caller holds t.mu.
func (t *Tracker) observeOne(name string, now time.Time) (TrackedDocument, bool) {
	doc, ok := t.docs[name]
	if !ok {
		// First sighting ever
		first := now
		doc = &TrackedDocument{
			Name:           name,
			FirstSeenAt:    &first,
			AccruedMinutes: bootstrapMinutes,
		}
		t.docs[name] = doc
		t.order = append(t.order, name)
		return *doc, true
	}

	if doc.FirstSeenAt == nil {
		// Known from a prior run, first observation this run.
		// Resume tracking without touching accrued time.
		first := now
		doc.FirstSeenAt = &first
		return *doc, false
	}

	// FirstSeenAt is deliberately not cleared while the app is
	// backgrounded, so a still-open document is credited the whole gap
	// on its next observation.
	elapsed := now.Sub(*doc.FirstSeenAt).Seconds()
	computed := math.Floor((elapsed + doc.AccruedMinutes*60) / 60)
	if computed > doc.AccruedMinutes {
		doc.AccruedMinutes = computed
		first := now
		doc.FirstSeenAt = &first
		return *doc, true
	}

	// Clock anomalies can make the computed value fall short; accrued
	// time never decreases.
	return *doc, false
}

// SetProject assigns a project label to a tracked document. Returns
// false when no document with that name exists.
func (t *Tracker) SetProject(name, project string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.docs[name]
	if !ok {
		return false
	}
	doc.Project = project
	return true
}

// SetNotes replaces the notes of a tracked document. Returns false when
// no document with that name exists.
func (t *Tracker) SetNotes(name, notes string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.docs[name]
	if !ok {
		return false
	}
	doc.Notes = notes
	return true
}

// Snapshot returns copies of all tracked documents in first-observation
// order. The copies are safe to read and serialize outside the tracker.
func (t *Tracker) Snapshot() []TrackedDocument {
	t.mu.Lock()
	defer t.mu.Unlock()

	docs := make([]TrackedDocument, 0, len(t.order))
	for _, name := range t.order {
		docs = append(docs, *t.docs[name])
	}
	return docs
}

// Len reports how many documents are currently tracked.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

// Clear empties the collection.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.docs = make(map[string]*TrackedDocument)
	t.order = nil
}
