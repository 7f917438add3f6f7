package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/middleware"
	ucbooking "github.com/chentesbarber/booking-api/internal/usecase/booking"
	"github.com/chentesbarber/booking-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// AvailabilityHandler is the admin surface for the availability
// calendar: read the configured slots, toggle one, or commit a staged
// set in a single save.
type AvailabilityHandler struct {
	repo   domain.Repository
	save   *ucbooking.SaveAvailability
	toggle *ucbooking.ToggleSlot
}

func NewAvailabilityHandler(
	repo domain.Repository,
	save *ucbooking.SaveAvailability,
	toggle *ucbooking.ToggleSlot,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		repo:   repo,
		save:   save,
		toggle: toggle,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SaveAvailabilityRequest struct {
	BarberID uint     `json:"barber_id" binding:"required"`
	Date     string   `json:"date" binding:"required"`
	Times    []string `json:"times" binding:"required"`
}

type ToggleSlotRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	barberIDStr := c.Query("barber_id")
	dateStr := c.Query("date")

	if barberIDStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Fecha y barbero obligatorios.")
		return
	}

	barberID, err := strconv.ParseUint(barberIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
		return
	}

	date, ok := validators.NormalizeDate(dateStr)
	if !ok {
		httperr.BadRequest(c, httperr.CodeValidation, "Fecha inválida.")
		return
	}

	times, err := h.repo.GetSlots(c.Request.Context(), uint(barberID), date)
	if err != nil {
		httperr.Internal(c, "failed_to_get_slots", "Error al leer disponibilidad.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id": barberID,
		"date":      date,
		"times":     times,
	})
}

func (h *AvailabilityHandler) Save(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req SaveAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	times, err := h.save.Execute(
		c.Request.Context(),
		&adminID,
		req.BarberID,
		req.Date,
		req.Times,
	)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id": req.BarberID,
		"date":      req.Date,
		"times":     times,
	})
}

func (h *AvailabilityHandler) Toggle(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req ToggleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	added, err := h.toggle.Execute(
		c.Request.Context(),
		&adminID,
		req.BarberID,
		req.Date,
		req.Time,
	)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id": req.BarberID,
		"date":      req.Date,
		"time":      req.Time,
		"open":      added,
	})
}
