package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/httpresp"
	"github.com/chentesbarber/booking-api/internal/models"
	ucbooking "github.com/chentesbarber/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the client-facing booking surface: catalogs,
// availability and appointment creation, no auth required.
type PublicHandler struct {
	db        *gorm.DB
	repo      domain.Repository
	available *ucbooking.AvailableTimes
	create    *ucbooking.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	available *ucbooking.AvailableTimes,
	create *ucbooking.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:        db,
		repo:      repo,
		available: available,
		create:    create,
	}
}

// ======================================================
// DTOS
// ======================================================

type PublicCreateAppointmentRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // HH:MM
	Service  string `json:"service" binding:"required"`
	Name     string `json:"name" binding:"required"`
	LastName string `json:"last_name"`
	Phone    string `json:"phone" binding:"required"`
}

// ======================================================
// CATALOG
// ======================================================

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) AvailableTimes(c *gin.Context) {
	dateStr := c.Query("date")
	barberIDStr := c.Query("barber_id")

	if dateStr == "" || barberIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Fecha y barbero obligatorios.")
		return
	}

	barberID, err := strconv.ParseUint(barberIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
		return
	}

	times, err := h.available.Execute(c.Request.Context(), uint(barberID), dateStr)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"times": times,
	})
}

// AvailableDates lists every date with at least one configured slot, so
// the client calendar can grey out the rest.
func (h *PublicHandler) AvailableDates(c *gin.Context) {
	dates, err := h.repo.ListAvailableDates(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_dates", "Error al listar fechas.")
		return
	}

	httpresp.List(c, dates)
}

// ======================================================
// APPOINTMENTS
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucbooking.CreateAppointmentInput{
		BarberID:   req.BarberID,
		Date:       req.Date,
		Time:       req.Time,
		Service:    req.Service,
		ClientName: req.Name,
		LastName:   req.LastName,
		Phone:      req.Phone,
	})
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// GetByCode lets a client look up their appointment with the booking
// code from the confirmation dialog.
func (h *PublicHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")

	ap, err := h.repo.GetAppointmentByCode(c.Request.Context(), code)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
