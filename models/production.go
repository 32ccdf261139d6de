package models

import (
	"time"

	"atolye-backend/execution"
)

// ProductionExecution is one production run, typically started from a
// published offer. Its operation records are instantiated from operation
// templates at creation time and then live their own lifecycle.
type ProductionExecution struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Code       string     `json:"code" gorm:"unique"`
	OfferID    *uint      `json:"offer_id" gorm:"index"`
	Offer      *Offer     `json:"offer,omitempty" gorm:"foreignKey:OfferID;references:ID"`
	Notes      string     `json:"notes"`
	StartedAt  *time.Time `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	CreatedAt  time.Time  `json:"created_at"`

	Records []OperationExecutionRecord `json:"records" gorm:"foreignKey:ExecutionID;constraint:OnDelete:CASCADE"`
}

// OperationExecutionRecord is one operation instance within an execution.
// Name, station, QC flag and sort order are copied from the template when the
// execution is created; QualityControlRequired is immutable afterwards.
type OperationExecutionRecord struct {
	ID          uint  `json:"id" gorm:"primaryKey"`
	ExecutionID uint  `json:"-" gorm:"index"`
	TemplateID  *uint `json:"template_id" gorm:"index"`

	Name         string   `json:"name" gorm:"not null"` // instance override
	OriginalName string   `json:"original_name"`        // template name at creation time
	StationID    *uint    `json:"station_id"`
	Station      *Station `json:"station,omitempty" gorm:"foreignKey:StationID;references:Id"`

	Status                 execution.Status `json:"status" gorm:"type:VARCHAR(32);default:pending;index"`
	QualityControlRequired bool             `json:"quality_control_required"`
	QualityCheckPassed     *bool            `json:"quality_check_passed"`
	QualityNotes           string           `json:"quality_notes"`
	SortOrder              int              `json:"sort_order" gorm:"default:0"`

	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds int64      `json:"duration_seconds"`
}

// NeedsGate reports whether completion must first pass the QC gate.
func (r OperationExecutionRecord) NeedsGate() bool {
	return r.ToRecord().NeedsQualityApproval()
}

// ToRecord maps the row to the projector's validated view type.
func (r OperationExecutionRecord) ToRecord() execution.Record {
	stationName := ""
	if r.Station != nil {
		stationName = r.Station.Name
	}
	return execution.Record{
		ID:                     r.ID,
		Name:                   r.Name,
		OriginalName:           r.OriginalName,
		StationName:            stationName,
		Status:                 r.Status,
		QualityControlRequired: r.QualityControlRequired,
		QualityCheckPassed:     r.QualityCheckPassed,
		SortOrder:              r.SortOrder,
		StartTime:              r.StartTime,
		EndTime:                r.EndTime,
		DurationSeconds:        r.DurationSeconds,
	}
}
