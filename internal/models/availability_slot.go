package models

import "time"

// A slot the admin opened for booking. Booking never creates or removes
// rows here; a booked slot simply stops showing up as available.
type AvailabilitySlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex:idx_slot_barber_date_time" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date string `gorm:"size:10;uniqueIndex:idx_slot_barber_date_time" json:"date"` // YYYY-MM-DD
	Time string `gorm:"size:5;uniqueIndex:idx_slot_barber_date_time" json:"time"`  // HH:MM

	CreatedAt time.Time `json:"created_at"`
}
