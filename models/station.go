package models

type Station struct {
	Id       uint   `json:"id" gorm:"primaryKey"`
	Code     string `json:"code" gorm:"uniqueIndex;not null"`
	Name     string `json:"name" gorm:"not null"`
	Area     string `json:"area"` // hall / section on the shop floor
	Capacity int    `json:"capacity" gorm:"default:1"`
	Active   bool   `json:"active" gorm:"default:true"`
}
