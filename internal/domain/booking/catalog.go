package booking

import (
	"strings"

	"github.com/chentesbarber/booking-api/internal/httperr"
)

// ===============================
// Catalog rules
// ===============================

// NormalizeName trims a barber/service name. Empty after trimming is a
// validation error.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", httperr.ErrBusinessMsg(httperr.CodeValidation, "name must not be empty")
	}
	return trimmed, nil
}

func ValidatePrice(price float64) error {
	if price < 0 {
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "price must not be negative")
	}
	return nil
}

// ===============================
// Delete policy
// ===============================

// What to do when the admin deletes a barber or service that still has
// future appointments.
type DeletePolicy string

const (
	DeleteBlock   DeletePolicy = "block"
	DeleteCascade DeletePolicy = "cascade"
)

// CheckDelete decides whether a delete with pending appointments may
// proceed. Under the block policy it is a conflict error; under cascade
// the caller removes the appointments together with the entity.
func (p DeletePolicy) CheckDelete(futureAppointments int64) error {
	if p == DeleteCascade {
		return nil
	}
	if futureAppointments > 0 {
		return httperr.ErrBusinessMsg(httperr.CodeConflict, "entity has future appointments")
	}
	return nil
}
