package execution

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Record is the validated view of one operation instance inside a production
// run, as consumed by the summary and search functions. Name is the instance
// override, OriginalName the template name; display and search prefer the
// template name when both are set.
type Record struct {
	ID                     uint       `json:"id"`
	Name                   string     `json:"name"`
	OriginalName           string     `json:"original_name"`
	StationName            string     `json:"station_name"`
	Status                 Status     `json:"status"`
	QualityControlRequired bool       `json:"quality_control_required"`
	QualityCheckPassed     *bool      `json:"quality_check_passed"`
	SortOrder              int        `json:"sort_order"`
	StartTime              *time.Time `json:"start_time"`
	EndTime                *time.Time `json:"end_time"`
	DurationSeconds        int64      `json:"duration_seconds"`
}

// DisplayName prefers the original template name over the instance override.
func (r Record) DisplayName() string {
	if r.OriginalName != "" {
		return r.OriginalName
	}
	return r.Name
}

// NeedsQualityApproval reports whether an approval action applies to the
// record: QC must be required and not yet passed. A recorded rejection
// (QualityCheckPassed == false) still needs approval, i.e. rejected work can
// be re-submitted.
func (r Record) NeedsQualityApproval() bool {
	if !r.QualityControlRequired {
		return false
	}
	return r.QualityCheckPassed == nil || !*r.QualityCheckPassed
}

// CanMoveTo applies the record-level qualifiers on top of the status graph:
// only QC-gated records enter awaiting_quality_control, and a gated record
// cannot complete while its gate is open. A record admitted to the QC state
// without a gate would dead-end there, with no approve action to leave it.
func (r Record) CanMoveTo(to Status) bool {
	if !CanTransition(r.Status, to) {
		return false
	}
	switch to {
	case StatusAwaitingQualityControl:
		return r.QualityControlRequired
	case StatusCompleted:
		return !r.NeedsQualityApproval()
	}
	return true
}

// Summary aggregates the records of one production run. The five status
// counts sum to Total for any input because the status set is closed.
type Summary struct {
	Total                  int     `json:"total"`
	Completed              int     `json:"completed"`
	InProgress             int     `json:"in_progress"`
	Paused                 int     `json:"paused"`
	Pending                int     `json:"pending"`
	AwaitingQualityControl int     `json:"awaiting_quality_control"`
	Skipped                int     `json:"skipped"`
	ProgressPercentage     float64 `json:"progress_percentage"`
}

// Summarize projects records into per-status counts and a completion
// percentage. The empty slice yields the zero Summary, never a division by
// zero.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusCompleted:
			s.Completed++
		case StatusInProgress:
			s.InProgress++
		case StatusPaused:
			s.Paused++
		case StatusPending:
			s.Pending++
		case StatusAwaitingQualityControl:
			s.AwaitingQualityControl++
		case StatusSkipped:
			s.Skipped++
		}
	}
	if s.Total > 0 {
		s.ProgressPercentage = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}

// Started reports whether work on the run has begun, i.e. any record has left
// pending.
func Started(records []Record) bool {
	for _, r := range records {
		if r.Status != StatusPending {
			return true
		}
	}
	return false
}

// AllTerminal reports whether every record reached a terminal status. An
// empty run never finishes.
func AllTerminal(records []Record) bool {
	if len(records) == 0 {
		return false
	}
	for _, r := range records {
		if !r.Status.Terminal() {
			return false
		}
	}
	return true
}

// fold lowercases text with Turkish rules for case-insensitive matching, so
// "İ" matches "i" and "I" matches "ı" instead of the ASCII pairing. A Caser
// is stateful and not safe for concurrent use, hence one per call.
func fold(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// FilterBySearch returns the records whose display name, station name, status
// label or sort order contains query, compared case-insensitively with
// Turkish folding. A blank query returns the input unchanged, in order.
func FilterBySearch(records []Record, query string) []Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}
	q := fold(query)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(fold(r.DisplayName()), q) ||
			strings.Contains(fold(r.StationName), q) ||
			strings.Contains(fold(r.Status.Label()), q) ||
			strings.Contains(strconv.Itoa(r.SortOrder), q) {
			out = append(out, r)
		}
	}
	return out
}
