package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.Completed)
	assert.Equal(t, 0, s.Pending)
	assert.Equal(t, float64(0), s.ProgressPercentage)
}

func TestSummarizeCountsAndPercentage(t *testing.T) {
	records := make([]Record, 0, 10)
	add := func(n int, st Status) {
		for i := 0; i < n; i++ {
			records = append(records, Record{Status: st})
		}
	}
	add(4, StatusCompleted)
	add(2, StatusInProgress)
	add(1, StatusPaused)
	add(2, StatusPending)
	add(1, StatusAwaitingQualityControl)

	s := Summarize(records)

	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 4, s.Completed)
	assert.Equal(t, 2, s.InProgress)
	assert.Equal(t, 1, s.Paused)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, 1, s.AwaitingQualityControl)
	assert.InDelta(t, 40, s.ProgressPercentage, 1e-9)

	sum := s.Completed + s.InProgress + s.Paused + s.Pending + s.AwaitingQualityControl + s.Skipped
	assert.Equal(t, s.Total, sum)
}

func TestNeedsQualityApproval(t *testing.T) {
	cases := []struct {
		name     string
		required bool
		passed   *bool
		want     bool
	}{
		{"not required, unset", false, nil, false},
		{"not required, rejected", false, boolPtr(false), false},
		{"required, unset", true, nil, true},
		{"required, rejected is re-submittable", true, boolPtr(false), true},
		{"required, approved", true, boolPtr(true), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Record{QualityControlRequired: tc.required, QualityCheckPassed: tc.passed}
			assert.Equal(t, tc.want, r.NeedsQualityApproval())
		})
	}
}

func TestRecordCanMoveTo(t *testing.T) {
	gated := Record{Status: StatusInProgress, QualityControlRequired: true}
	plain := Record{Status: StatusInProgress}

	// Only gated records enter the QC state; a plain record would dead-end
	// there with no approve action.
	assert.True(t, gated.CanMoveTo(StatusAwaitingQualityControl))
	assert.False(t, plain.CanMoveTo(StatusAwaitingQualityControl))

	// A gated record cannot complete while the gate is open.
	assert.False(t, gated.CanMoveTo(StatusCompleted))
	assert.True(t, plain.CanMoveTo(StatusCompleted))

	passed := Record{Status: StatusAwaitingQualityControl, QualityControlRequired: true, QualityCheckPassed: boolPtr(true)}
	assert.True(t, passed.CanMoveTo(StatusCompleted))

	rejected := Record{Status: StatusAwaitingQualityControl, QualityControlRequired: true, QualityCheckPassed: boolPtr(false)}
	assert.False(t, rejected.CanMoveTo(StatusCompleted))
	assert.True(t, rejected.CanMoveTo(StatusInProgress))

	// The edge set still applies underneath the qualifiers.
	assert.False(t, Record{Status: StatusCompleted}.CanMoveTo(StatusInProgress))
}

func TestStartedAndAllTerminal(t *testing.T) {
	assert.False(t, Started(nil))
	assert.False(t, AllTerminal(nil))

	pendingOnly := []Record{{Status: StatusPending}, {Status: StatusPending}}
	assert.False(t, Started(pendingOnly))
	assert.False(t, AllTerminal(pendingOnly))

	running := []Record{{Status: StatusInProgress}, {Status: StatusPending}}
	assert.True(t, Started(running))
	assert.False(t, AllTerminal(running))

	done := []Record{{Status: StatusCompleted}, {Status: StatusSkipped}}
	assert.True(t, Started(done))
	assert.True(t, AllTerminal(done))
}

func sampleRecords() []Record {
	return []Record{
		{ID: 1, Name: "Kesim (revize)", OriginalName: "Kesim", StationName: "CNC İstasyonu", Status: StatusCompleted, SortOrder: 10},
		{ID: 2, Name: "Kaynak", StationName: "Kaynak Atölyesi", Status: StatusInProgress, SortOrder: 20},
		{ID: 3, Name: "Boya", StationName: "Boyahane", Status: StatusAwaitingQualityControl, SortOrder: 30},
	}
}

func TestFilterBySearchBlankQueryReturnsAllInOrder(t *testing.T) {
	records := sampleRecords()

	assert.Equal(t, records, FilterBySearch(records, ""))
	assert.Equal(t, records, FilterBySearch(records, "   "))
}

func TestFilterBySearchPrefersOriginalName(t *testing.T) {
	got := FilterBySearch(sampleRecords(), "kesim")
	assert.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)

	// The instance override is shadowed by the template name.
	assert.Empty(t, FilterBySearch(sampleRecords(), "revize"))
}

func TestFilterBySearchTurkishCaseFolding(t *testing.T) {
	// Dotted capital İ must match lowercase i under Turkish folding.
	got := FilterBySearch(sampleRecords(), "istasyonu")
	assert.Len(t, got, 1)
	assert.Equal(t, "CNC İstasyonu", got[0].StationName)

	// Uppercase query against lowercase data.
	got = FilterBySearch(sampleRecords(), "BOYAHANE")
	assert.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].ID)
}

func TestFilterBySearchStatusLabelAndSortOrder(t *testing.T) {
	got := FilterBySearch(sampleRecords(), "kalite kontrol")
	assert.Len(t, got, 1)
	assert.Equal(t, StatusAwaitingQualityControl, got[0].Status)

	got = FilterBySearch(sampleRecords(), "20")
	assert.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].ID)
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Tamamlandı", StatusCompleted.Label())
	assert.Equal(t, "Bekliyor", StatusPending.Label())
	assert.Equal(t, "bogus", Status("bogus").Label())
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusInProgress},
		{StatusInProgress, StatusPaused},
		{StatusPaused, StatusInProgress},
		{StatusInProgress, StatusAwaitingQualityControl},
		{StatusInProgress, StatusCompleted},
		{StatusAwaitingQualityControl, StatusCompleted},
		{StatusAwaitingQualityControl, StatusInProgress},
		{StatusPending, StatusSkipped},
		{StatusPaused, StatusSkipped},
		{StatusAwaitingQualityControl, StatusSkipped},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusPaused},
		{StatusPaused, StatusCompleted},
		{StatusCompleted, StatusInProgress},
		{StatusSkipped, StatusInProgress},
		{StatusCompleted, StatusSkipped},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusSkipped.Terminal())
	assert.False(t, StatusAwaitingQualityControl.Terminal())
	assert.False(t, StatusPaused.Terminal())
}
