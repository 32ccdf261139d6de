package models

// QualityControlItem is one checklist entry on an operation template's QC
// gate.
type QualityControlItem struct {
	Id                  uint   `json:"id" gorm:"primaryKey"`
	OperationTemplateID uint   `json:"operation_template_id" gorm:"index;not null"`
	Question            string `json:"question" gorm:"not null"`
	ExpectedResult      string `json:"expected_result"`
	SortOrder           int    `json:"sort_order" gorm:"default:0"`
}
