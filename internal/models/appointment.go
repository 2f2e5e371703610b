package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Client      string `gorm:"size:100;not null;index" json:"client"`
	ClientEmail string `gorm:"size:100" json:"clientEmail,omitempty"`
	ClientPhone string `gorm:"size:20" json:"clientPhone,omitempty"`

	ProID     uint `gorm:"not null;index" json:"proId"`
	ServiceID uint `gorm:"not null" json:"serviceId"`

	// Data e hora locais da barbearia (YYYY-MM-DD / HH:MM)
	Date string `gorm:"column:appointment_date;size:10;not null;index" json:"date"`
	Time string `gorm:"column:appointment_time;size:5;not null" json:"time"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	ReminderSent   bool       `gorm:"not null;default:false" json:"reminderSent"`
	ReminderSentAt *time.Time `json:"reminderSentAt,omitempty"`

	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
