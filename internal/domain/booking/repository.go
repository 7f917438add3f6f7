package booking

import (
	"context"

	"github.com/chentesbarber/booking-api/internal/models"
)

// Filters for the admin appointment list. Empty fields are ignored;
// set fields are AND-combined. Name and Phone match as case-insensitive
// substrings, Date and Service match exactly.
type AppointmentFilters struct {
	Name    string
	Phone   string
	Date    string
	Service string
}

type Repository interface {
	// -------- Catalog reads --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetBarberByName(
		ctx context.Context,
		name string,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetServiceByName(
		ctx context.Context,
		name string,
	) (*models.Service, error)

	CountFutureAppointmentsByService(
		ctx context.Context,
		name string,
		from string,
	) (int64, error)

	// DeleteService removes the service row and, when cascade is set,
	// its appointments on or after from, all in one transaction. The
	// removed appointments are returned so the caller can invalidate
	// whatever was derived from them.
	DeleteService(
		ctx context.Context,
		svc *models.Service,
		cascade bool,
		from string,
	) ([]models.Appointment, error)

	// -------- Availability --------
	GetSlots(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]string, error)

	ReplaceSlots(
		ctx context.Context,
		barberID uint,
		date string,
		times []string,
	) error

	ToggleSlot(
		ctx context.Context,
		barberID uint,
		date string,
		timeOfDay string,
	) (added bool, err error)

	ListAvailableDates(
		ctx context.Context,
	) ([]string, error)

	DeleteSlotsBefore(
		ctx context.Context,
		date string,
	) (int64, error)

	// -------- Ledger --------
	BookedTimes(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]string, error)

	// CreateAppointment checks the slot is configured and free and
	// inserts in one atomic step. Losing a race for the slot returns
	// a slot_unavailable business error.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		f AppointmentFilters,
	) ([]models.Appointment, error)

	GetAppointmentByCode(
		ctx context.Context,
		code string,
	) (*models.Appointment, error)
}
