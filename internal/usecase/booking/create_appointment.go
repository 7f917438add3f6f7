package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/chentesbarber/booking-api/internal/audit"
	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/metrics"
	"github.com/chentesbarber/booking-api/internal/models"
	"github.com/chentesbarber/booking-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID uint

	Date string
	Time string

	Service string

	ClientName string
	LastName   string
	Phone      string

	// Optional: the booking workflow stages a code before confirming.
	// Left empty, a fresh one is generated.
	BookingCode string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	cache AvailabilityCache
	audit *audit.Dispatcher

	newCode func() string
}

func NewCreateAppointment(
	repo domain.Repository,
	cache AvailabilityCache,
	dispatcher *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		cache:   cache,
		audit:   dispatcher,
		newCode: domain.NewBookingCode,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	name := strings.TrimSpace(in.ClientName)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "client name and phone are required")
	}

	date, ok := validators.NormalizeDate(in.Date)
	if !ok {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid date")
	}

	timeOfDay, ok := validators.NormalizeTimeOfDay(in.Time)
	if !ok {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid time")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	// the service must exist in the catalog at booking time
	service, err := uc.repo.GetServiceByName(ctx, strings.TrimSpace(in.Service))
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "unknown service")
		}
		return nil, err
	}

	code := strings.TrimSpace(in.BookingCode)
	generated := code == ""
	if generated {
		code = uc.newCode()
	}

	ap := &models.Appointment{
		BarberID:    barber.ID,
		Date:        date,
		Time:        timeOfDay,
		ServiceName: service.Name,
		ClientName:  name,
		LastName:    strings.TrimSpace(in.LastName),
		Phone:       phone,
		BookingCode: code,
	}

	// atomic slot check + insert; the loser of a race gets
	// slot_unavailable back. A generated code that happens to collide
	// is drawn again; a staged one surfaces the conflict.
	for attempt := 0; ; attempt++ {
		err := uc.repo.CreateAppointment(ctx, ap)
		if err == nil {
			break
		}
		if generated && attempt == 0 && errors.Is(err, domain.ErrBookingCodeTaken) {
			ap.BookingCode = uc.newCode()
			continue
		}
		if httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
			metrics.SlotConflicts.Inc()
		}
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, barber.ID, date)
	}

	metrics.AppointmentsBooked.Inc()

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id": barber.ID,
			"date":      date,
			"time":      timeOfDay,
		},
	})

	return ap, nil
}
