package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog reads
// --------------------------------------------------

func (r *BookingGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetBarberByName(
	ctx context.Context,
	name string,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&barber).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &service, nil
}

func (r *BookingGormRepository) GetServiceByName(
	ctx context.Context,
	name string,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&service).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &service, nil
}

func (r *BookingGormRepository) CountFutureAppointmentsByService(
	ctx context.Context,
	name string,
	from string,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("service_name = ? AND date >= ?", name, from).
		Count(&count).Error
	return count, err
}

func (r *BookingGormRepository) DeleteService(
	ctx context.Context,
	svc *models.Service,
	cascade bool,
	from string,
) ([]models.Appointment, error) {

	var removed []models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cascade {
			if err := tx.
				Where("service_name = ? AND date >= ?", svc.Name, from).
				Find(&removed).Error; err != nil {
				return err
			}

			if len(removed) > 0 {
				if err := tx.
					Where("service_name = ? AND date >= ?", svc.Name, from).
					Delete(&models.Appointment{}).Error; err != nil {
					return err
				}
			}
		}

		return tx.Delete(svc).Error
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) GetSlots(
	ctx context.Context,
	barberID uint,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("time ASC").
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}

	if times == nil {
		times = []string{}
	}
	return times, nil
}

func (r *BookingGormRepository) ReplaceSlots(
	ctx context.Context,
	barberID uint,
	date string,
	times []string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ? AND date = ?", barberID, date).
			Delete(&models.AvailabilitySlot{}).Error; err != nil {
			return err
		}

		for _, t := range times {
			slot := models.AvailabilitySlot{
				BarberID: barberID,
				Date:     date,
				Time:     t,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BookingGormRepository) ToggleSlot(
	ctx context.Context,
	barberID uint,
	date string,
	timeOfDay string,
) (bool, error) {

	var added bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot models.AvailabilitySlot
		err := tx.
			Where("barber_id = ? AND date = ? AND time = ?", barberID, date, timeOfDay).
			First(&slot).Error

		if err == nil {
			added = false
			return tx.Delete(&slot).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		added = true
		return tx.Create(&models.AvailabilitySlot{
			BarberID: barberID,
			Date:     date,
			Time:     timeOfDay,
		}).Error
	})

	return added, err
}

func (r *BookingGormRepository) ListAvailableDates(
	ctx context.Context,
) ([]string, error) {

	var dates []string
	if err := r.db.WithContext(ctx).
		Model(&models.AvailabilitySlot{}).
		Distinct("date").
		Order("date ASC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}

	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

func (r *BookingGormRepository) DeleteSlotsBefore(
	ctx context.Context,
	date string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("date < ?", date).
		Delete(&models.AvailabilitySlot{})

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *BookingGormRepository) BookedTimes(
	ctx context.Context,
	barberID uint,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("time ASC").
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}

	if times == nil {
		times = []string{}
	}
	return times, nil
}

// CreateAppointment is the one serialized write in the system: lock the
// availability row, check the slot is still free, insert. The unique
// index on (barber_id, date, time) backstops whatever slips through, so
// two simultaneous creates for the same slot end with exactly one row.
func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var slot models.AvailabilitySlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND date = ? AND time = ?",
				ap.BarberID, ap.Date, ap.Time,
			).
			First(&slot).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
			}
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"barber_id = ? AND date = ? AND time = ?",
				ap.BarberID, ap.Date, ap.Time,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		return tx.Create(ap).Error
	})

	// The appointments table carries two unique indexes; only the slot
	// one means "taken". A duplicate booking code must not masquerade
	// as an occupied slot.
	if constraint, ok := uniqueViolation(err); ok {
		if constraint == slotConstraint {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return domain.ErrBookingCodeTaken
	}
	return err
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, asNotFound(err)
	}

	if err := r.db.WithContext(ctx).Delete(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) ListAppointments(
	ctx context.Context,
	f domain.AppointmentFilters,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Preload("Barber")

	if f.Name != "" {
		like := "%" + strings.ToLower(f.Name) + "%"
		q = q.Where(
			"LOWER(client_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like,
		)
	}

	if f.Phone != "" {
		q = q.Where("phone LIKE ?", "%"+f.Phone+"%")
	}

	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}

	if f.Service != "" {
		q = q.Where("service_name = ?", f.Service)
	}

	var aps []models.Appointment
	if err := q.
		Order("date ASC, time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *BookingGormRepository) GetAppointmentByCode(
	ctx context.Context,
	code string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Where("booking_code = ?", code).
		First(&ap).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &ap, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return err
}

// Matches the uniqueIndex tag on models.Appointment.
const slotConstraint = "idx_appointment_barber_date_time"

// uniqueViolation reports a Postgres 23505 and the constraint that
// fired, so callers can tell the slot index from the booking-code one.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}

	// Translated or wrapped drivers lose the PgError; fall back to the
	// message, which still names the constraint.
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		if strings.Contains(err.Error(), slotConstraint) {
			return slotConstraint, true
		}
		return "", true
	}

	return "", false
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
