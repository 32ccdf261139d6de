package models

// OperationTemplate defines one production step. QualityControlRequired is
// fixed at template-definition time; execution records copy it and never
// change it afterwards.
type OperationTemplate struct {
	Id                       uint                 `json:"id" gorm:"primaryKey"`
	Name                     string               `json:"name" gorm:"not null"`
	Description              string               `json:"description"`
	StationID                *uint                `json:"station_id" gorm:"index"`
	Station                  *Station             `json:"station,omitempty" gorm:"foreignKey:StationID;references:Id"`
	QualityControlRequired   bool                 `json:"quality_control_required"`
	EstimatedDurationSeconds int64                `json:"estimated_duration_seconds"`
	SortOrder                int                  `json:"sort_order" gorm:"default:0"`
	Active                   bool                 `json:"active" gorm:"default:true"`
	QualityControlItems      []QualityControlItem `json:"quality_control_items,omitempty" gorm:"foreignKey:OperationTemplateID;constraint:OnDelete:CASCADE"`
}
