package dto

import "time"

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	BarberID    uint      `json:"barber_id"`
	BarberName  string    `json:"barber"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Service     string    `json:"service"`
	ClientName  string    `json:"name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	BookingCode string    `json:"booking_code"`
	CreatedAt   time.Time `json:"created_at"`
}
