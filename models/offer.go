package models

import (
	"time"

	"gorm.io/datatypes"
)

// Offer is the current/live state of a quote document. The persisted totals
// are a projection of the line items; they are recomputed from the items on
// every write and never updated incrementally.
type Offer struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	OfferNumber string   `json:"offer_number" gorm:"unique"`
	CustomerID  uint     `json:"-"`
	Customer    Customer `json:"customer" gorm:"foreignKey:CustomerID;references:Id"`
	VehicleID   *uint    `json:"vehicle_id" gorm:"index"`
	Vehicle     *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID;references:Id"`

	// Live items (latest state)
	Items []OfferLineItem `json:"items" gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`

	// Discount & tax policy
	DiscountType  string  `json:"discount_type" gorm:"type:VARCHAR(20);default:none"` // none | flat | percentage
	DiscountValue float64 `json:"discount_value" gorm:"type:numeric(12,2)"`
	VatRate       float64 `json:"vat_rate" gorm:"default:20"`

	// Derived totals (projection of Items, see pricing.ComputeTotals)
	GrossTotal     float64 `json:"gross_total" gorm:"type:numeric(12,2)"`
	DiscountAmount float64 `json:"discount_amount" gorm:"type:numeric(12,2)"`
	NetTotal       float64 `json:"net_total" gorm:"type:numeric(12,2)"`
	VatAmount      float64 `json:"vat_amount" gorm:"type:numeric(12,2)"`
	GrandTotal     float64 `json:"grand_total" gorm:"type:numeric(12,2)"`

	// State
	Draft       bool       `json:"draft"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`

	CreatedAt time.Time `json:"created_at"`
}

type OfferLineItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OfferID   uint    `json:"-" gorm:"index"`                   // fast join
	ProductID string  `json:"product_id" gorm:"not null;index"` // FK to products.id (see migrator)
	Product   Product `json:"-" gorm:"foreignKey:ProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	LineTotal float64 `json:"line_total" gorm:"type:numeric(12,2)"`
}

// OfferRevision is an immutable snapshot written on publish.
type OfferRevision struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	OfferID    uint           `json:"offer_id" gorm:"index:idx_offer_revisions_offer_id_revision_no,unique,priority:1"`
	RevisionNo int            `json:"revision_no" gorm:"not null;index:idx_offer_revisions_offer_id_revision_no,unique,priority:2"`
	Snapshot   datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at"`
}
