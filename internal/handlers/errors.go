package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/chentesbarber/booking-api/internal/httperr"
)

// mapBusinessError translates core errors to HTTP responses with the
// client-facing messages.
func mapBusinessError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Error interno, intente de nuevo.")
		return
	}

	switch code {
	case httperr.CodeValidation:
		httperr.BadRequest(c, code, "Datos inválidos.")
	case httperr.CodeNotFound:
		httperr.NotFound(c, code, "No encontrado.")
	case httperr.CodeSlotUnavailable:
		httperr.Conflict(c, code, "El horario ya no está disponible, elija otro.")
	case httperr.CodeConflict:
		httperr.Conflict(c, code, "Existen citas futuras asociadas.")
	default:
		httperr.Internal(c, code, "Error interno, intente de nuevo.")
	}
}
