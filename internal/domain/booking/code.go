package booking

import (
	"strings"

	"github.com/google/uuid"

	"github.com/chentesbarber/booking-api/internal/httperr"
)

const bookingCodeLength = 8

// ErrBookingCodeTaken reports the unique-index rejection of a duplicate
// booking code, as opposed to a taken slot. Auto-generated codes are
// simply drawn again; a staged one surfaces the conflict.
var ErrBookingCodeTaken = httperr.ErrBusinessMsg(httperr.CodeConflict, "booking code already in use")

// NewBookingCode returns the short uppercase code shown to the client
// in the confirmation dialog. Uniqueness is enforced by the ledger.
func NewBookingCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return raw[:bookingCodeLength]
}
