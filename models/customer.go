package models

type Customer struct {
	Id          uint   `json:"id" gorm:"primaryKey"`
	CompanyName string `json:"company_name" gorm:"not null"`
	ContactName string `json:"contact_name" gorm:"not null"`
	Email       string `json:"email" gorm:"unique;not null"`
	PhoneNumber string `json:"phone_number"`
	TaxNumber   string `json:"tax_number"`
	TaxOffice   string `json:"tax_office"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Notes       string `json:"notes"`
	Active      bool   `json:"active" gorm:"default:true"`
}
