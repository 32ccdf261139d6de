package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id          string  `json:"id" gorm:"primaryKey"`
	Code        string  `json:"code" gorm:"uniqueIndex;not null"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Unit        string  `json:"unit" gorm:"default:adet"` // piece, m2, kg ...
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	Active      bool    `json:"active" gorm:"default:true"`
}

func (product *Product) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if product.Id == "" {
		product.Id = uuid.NewString()
	}
	return
}
