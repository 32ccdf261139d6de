// Package execution models the progress of one production run: the status of
// each operation record, aggregate progress, quality-control gating and the
// searchable display view of the record list.
package execution

// Status is the closed set of operation-record states.
type Status string

const (
	StatusPending                Status = "pending"
	StatusInProgress             Status = "in_progress"
	StatusPaused                 Status = "paused"
	StatusAwaitingQualityControl Status = "awaiting_quality_control"
	StatusCompleted              Status = "completed"
	StatusSkipped                Status = "skipped"
)

// statusLabels are the Turkish UI labels; search matches against these.
var statusLabels = map[Status]string{
	StatusPending:                "Bekliyor",
	StatusInProgress:             "Devam Ediyor",
	StatusPaused:                 "Duraklatıldı",
	StatusAwaitingQualityControl: "Kalite Kontrol Bekliyor",
	StatusCompleted:              "Tamamlandı",
	StatusSkipped:                "Atlandı",
}

// Label returns the human-readable (Turkish) label for s. Unknown statuses
// fall back to the raw value.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is a member of the closed enumeration.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Terminal reports whether s ends the record's lifecycle. EndTime is set only
// when a record reaches a terminal status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// transitions is the allowed edge set of the execution state machine:
// pending → in_progress → {paused ⇄ in_progress} → awaiting_quality_control →
// {completed | in_progress (resume after rejection)}; records without a QC
// gate complete straight from in_progress; skipped is reachable from any
// non-terminal state.
var transitions = map[Status][]Status{
	StatusPending:                {StatusInProgress, StatusSkipped},
	StatusInProgress:             {StatusPaused, StatusAwaitingQualityControl, StatusCompleted, StatusSkipped},
	StatusPaused:                 {StatusInProgress, StatusSkipped},
	StatusAwaitingQualityControl: {StatusCompleted, StatusInProgress, StatusSkipped},
}

// CanTransition reports whether moving a record from one status to another is
// allowed. Terminal states have no outgoing edges.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
