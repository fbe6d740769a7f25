package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestObserve_FirstSightingBootstrapsOneMinute(t *testing.T) {
	trk := New()

	dirty := trk.Observe([]string{"Report"}, t0)

	require.Len(t, dirty, 1, "a brand new document must be dirty")
	require.Equal(t, "Report", dirty[0].Name)
	require.Equal(t, 1.0, dirty[0].AccruedMinutes)
	require.NotNil(t, dirty[0].FirstSeenAt)
	require.True(t, dirty[0].FirstSeenAt.Equal(t0))
	require.Empty(t, dirty[0].Project)
	require.Empty(t, dirty[0].Notes)
}

func TestObserve_ReobservationAccruesWholeMinutes(t *testing.T) {
	trk := New()
	trk.Observe([]string{"Report"}, t0)

	// 61s later: floor((61 + 60) / 60) = 2
	later := t0.Add(61 * time.Second)
	dirty := trk.Observe([]string{"Report"}, later)

	require.Len(t, dirty, 1)
	require.Equal(t, 2.0, dirty[0].AccruedMinutes)
	require.True(t, dirty[0].FirstSeenAt.Equal(later), "FirstSeenAt resets when accrual advances")
}

func TestObserve_SubMinuteGapDoesNotAccrue(t *testing.T) {
	trk := New()
	trk.Observe([]string{"Report"}, t0)

	// 30s later: floor((30 + 60) / 60) = 1, not greater than 1
	dirty := trk.Observe([]string{"Report"}, t0.Add(30*time.Second))

	require.Empty(t, dirty)
	doc := trk.Snapshot()[0]
	require.Equal(t, 1.0, doc.AccruedMinutes)
	require.True(t, doc.FirstSeenAt.Equal(t0), "FirstSeenAt untouched without accrual")
}

func TestObserve_AccrualNeverDecreases(t *testing.T) {
	trk := New()
	trk.Observe([]string{"Report"}, t0)
	trk.Observe([]string{"Report"}, t0.Add(2*time.Minute))

	// Clock jumps backwards; the computed value falls below the
	// accrued total and must be ignored
	dirty := trk.Observe([]string{"Report"}, t0.Add(-10*time.Minute))

	require.Empty(t, dirty)
	require.Equal(t, 3.0, trk.Snapshot()[0].AccruedMinutes)
}

func TestObserve_SameNameNeverDuplicates(t *testing.T) {
	trk := New()
	trk.Observe([]string{"Report", "Report"}, t0)
	trk.Observe([]string{"Report"}, t0.Add(time.Second))

	require.Equal(t, 1, trk.Len())
}

func TestObserve_DisappearedDocumentResumesOnReturn(t *testing.T) {
	trk := New()
	trk.Observe([]string{"Report"}, t0)

	// Window closed: several samples without the document
	trk.Observe(nil, t0.Add(1*time.Minute))
	trk.Observe([]string{"Other"}, t0.Add(2*time.Minute))

	// Reopened: same record keeps accruing, no duplicate
	dirty := trk.Observe([]string{"Report"}, t0.Add(3*time.Minute))

	require.Equal(t, 2, trk.Len())
	require.Len(t, dirty, 1)
	require.Equal(t, "Report", dirty[0].Name)
}

// A document that stays open while the application is backgrounded is
// credited the whole gap on its next observation, because FirstSeenAt
// only resets when accrual advances. Known quirk, kept on purpose.
func TestObserve_BackgroundGapStillCredited(t *testing.T) {
	trk := New()
	trk.Observe([]string{"Report"}, t0)

	// App backgrounded for five minutes, no samples arrive.
	// floor((300 + 60) / 60) = 6
	dirty := trk.Observe([]string{"Report"}, t0.Add(5*time.Minute))

	require.Len(t, dirty, 1)
	require.Equal(t, 6.0, dirty[0].AccruedMinutes)
}

func TestSeed_ResumesWithoutTouchingAccruedTime(t *testing.T) {
	trk := New()
	trk.Seed([]TrackedDocument{
		{Name: "Report", AccruedMinutes: 42, Project: "Acme", Notes: "draft"},
	})

	// First observation this run only arms the clock
	dirty := trk.Observe([]string{"Report"}, t0)
	require.Empty(t, dirty, "resuming is not an accrual")

	doc := trk.Snapshot()[0]
	require.Equal(t, 42.0, doc.AccruedMinutes)
	require.NotNil(t, doc.FirstSeenAt)
	require.Equal(t, "Acme", doc.Project)

	// From there accrual continues on top of the stored total
	dirty = trk.Observe([]string{"Report"}, t0.Add(90*time.Second))
	require.Len(t, dirty, 1)
	require.Equal(t, 43.0, dirty[0].AccruedMinutes)
}

func TestSeed_IgnoresDuplicateNames(t *testing.T) {
	trk := New()
	trk.Observe([]string{"Report"}, t0)
	trk.Seed([]TrackedDocument{{Name: "Report", AccruedMinutes: 99}})

	require.Equal(t, 1, trk.Len())
	require.Equal(t, 1.0, trk.Snapshot()[0].AccruedMinutes)
}

func TestSetProjectAndNotes(t *testing.T) {
	trk := New()
	trk.Observe([]string{"Report"}, t0)

	require.True(t, trk.SetProject("Report", "Acme"))
	require.True(t, trk.SetNotes("Report", "final review"))
	require.False(t, trk.SetProject("Missing", "Acme"))
	require.False(t, trk.SetNotes("Missing", "x"))

	doc := trk.Snapshot()[0]
	require.Equal(t, "Acme", doc.Project)
	require.Equal(t, "final review", doc.Notes)
}

func TestSnapshot_PreservesFirstObservationOrder(t *testing.T) {
	trk := New()
	trk.Observe([]string{"b"}, t0)
	trk.Observe([]string{"a", "c"}, t0.Add(time.Second))

	docs := trk.Snapshot()
	require.Len(t, docs, 3)
	require.Equal(t, "b", docs[0].Name)
	require.Equal(t, "a", docs[1].Name)
	require.Equal(t, "c", docs[2].Name)
}

func TestSnapshot_ReturnsCopies(t *testing.T) {
	trk := New()
	trk.Observe([]string{"Report"}, t0)

	snap := trk.Snapshot()
	snap[0].AccruedMinutes = 1000
	snap[0].Project = "tampered"

	doc := trk.Snapshot()[0]
	require.Equal(t, 1.0, doc.AccruedMinutes)
	require.Empty(t, doc.Project)
}

func TestClear_EmptiesCollection(t *testing.T) {
	trk := New()
	trk.Observe([]string{"Report", "Memo"}, t0)

	trk.Clear()

	require.Equal(t, 0, trk.Len())
	require.Empty(t, trk.Snapshot())
}

func TestBaseName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/Users/cam/Documents/Report.docx", "Report"},
		{"Report.docx", "Report"},
		{"Report", "Report"},
		{"reports/Q1 Summary.pages", "Q1 Summary"},
		{"/tmp/archive.tar.gz", "archive.tar"},
		{"/Users/cam/.hidden", ".hidden"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, BaseName(tc.path), "path %q", tc.path)
	}
}
