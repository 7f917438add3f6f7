package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex:idx_appointment_barber_date_time" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber"`

	Date string `gorm:"size:10;uniqueIndex:idx_appointment_barber_date_time" json:"date"` // YYYY-MM-DD
	Time string `gorm:"size:5;uniqueIndex:idx_appointment_barber_date_time" json:"time"`  // HH:MM

	ServiceName string `gorm:"size:100;not null" json:"service"`

	ClientName string `gorm:"size:100;not null" json:"name"`
	LastName   string `gorm:"size:100" json:"last_name"`
	Phone      string `gorm:"size:20;not null" json:"phone"`

	// Short code handed to the client on confirmation, used for
	// self-service lookup without an account.
	BookingCode string `gorm:"size:12;uniqueIndex" json:"booking_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
