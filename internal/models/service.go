package models

// Serviço do catálogo (corte, barba...)
type Service struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:100;not null" json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}
