package models

type Vehicle struct {
	Id         uint      `json:"id" gorm:"primaryKey"`
	Plate      string    `json:"plate" gorm:"uniqueIndex;not null"`
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	Year       int       `json:"year"`
	CustomerID *uint     `json:"customer_id" gorm:"index"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;references:Id"`
	Notes      string    `json:"notes"`
}
