package booking

import (
	"context"
	"strings"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/models"
	"github.com/chentesbarber/booking-api/internal/validators"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.AppointmentFilters,
) ([]models.Appointment, error) {

	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Service = strings.TrimSpace(f.Service)
	f.Date = strings.TrimSpace(f.Date)

	if f.Date != "" {
		normalized, ok := validators.NormalizeDate(f.Date)
		if !ok {
			return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid date filter")
		}
		f.Date = normalized
	}

	return uc.repo.ListAppointments(ctx, f)
}
