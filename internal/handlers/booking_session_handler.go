package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/models"
	"github.com/chentesbarber/booking-api/internal/session"
	ucbooking "github.com/chentesbarber/booking-api/internal/usecase/booking"
)

// ======================================================
// GATEWAY
// ======================================================

// workflowGateway adapts the usecases to what the booking workflow
// state machine needs.
type workflowGateway struct {
	repo      domain.Repository
	available *ucbooking.AvailableTimes
	create    *ucbooking.CreateAppointment
}

func (g *workflowGateway) AvailableTimes(ctx context.Context, barberID uint, date string) ([]string, error) {
	return g.available.Execute(ctx, barberID, date)
}

func (g *workflowGateway) BarberByName(ctx context.Context, name string) (*models.Barber, error) {
	return g.repo.GetBarberByName(ctx, name)
}

func (g *workflowGateway) Book(ctx context.Context, req domain.BookingRequest) (*models.Appointment, error) {
	return g.create.Execute(ctx, ucbooking.CreateAppointmentInput{
		BarberID:    req.BarberID,
		Date:        req.Date,
		Time:        req.Time,
		Service:     req.Service,
		ClientName:  req.Name,
		LastName:    req.LastName,
		Phone:       req.Phone,
		BookingCode: req.Code,
	})
}

// ======================================================
// HANDLER
// ======================================================

// BookingSessionHandler drives the step-by-step client booking flow
// over HTTP. Each session wraps one workflow instance.
type BookingSessionHandler struct {
	store *session.Store
	gw    domain.Gateway
}

func NewBookingSessionHandler(
	store *session.Store,
	repo domain.Repository,
	available *ucbooking.AvailableTimes,
	create *ucbooking.CreateAppointment,
) *BookingSessionHandler {
	return &BookingSessionHandler{
		store: store,
		gw: &workflowGateway{
			repo:      repo,
			available: available,
			create:    create,
		},
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type SelectBarberRequest struct {
	Barber string `json:"barber" binding:"required"`
}

type SelectTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

type PrepareRequest struct {
	Name     string `json:"name" binding:"required"`
	LastName string `json:"last_name"`
	Phone    string `json:"phone" binding:"required"`
	Service  string `json:"service" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BookingSessionHandler) Start(c *gin.Context) {
	id := h.store.Create(h.gw)
	c.JSON(http.StatusCreated, gin.H{
		"session_id": id,
		"state":      domain.StateSelectingDate,
	})
}

func (h *BookingSessionHandler) Show(c *gin.Context) {
	h.withWorkflow(c, func(wf *domain.Workflow) error {
		c.JSON(http.StatusOK, snapshot(wf))
		return nil
	})
}

func (h *BookingSessionHandler) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	h.withWorkflow(c, func(wf *domain.Workflow) error {
		if err := wf.SelectDate(req.Date); err != nil {
			return err
		}
		c.JSON(http.StatusOK, snapshot(wf))
		return nil
	})
}

func (h *BookingSessionHandler) SelectBarber(c *gin.Context) {
	var req SelectBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	h.withWorkflow(c, func(wf *domain.Workflow) error {
		if err := wf.SelectBarber(c.Request.Context(), req.Barber); err != nil {
			return err
		}

		times, err := h.gw.AvailableTimes(c.Request.Context(), wf.BarberID(), wf.Date())
		if err != nil {
			return err
		}

		body := snapshot(wf)
		body["available_times"] = times
		c.JSON(http.StatusOK, body)
		return nil
	})
}

func (h *BookingSessionHandler) SelectTime(c *gin.Context) {
	var req SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	h.withWorkflow(c, func(wf *domain.Workflow) error {
		if err := wf.SelectTime(c.Request.Context(), req.Time); err != nil {
			return err
		}
		c.JSON(http.StatusOK, snapshot(wf))
		return nil
	})
}

func (h *BookingSessionHandler) Prepare(c *gin.Context) {
	var req PrepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	h.withWorkflow(c, func(wf *domain.Workflow) error {
		err := wf.Prepare(domain.FormData{
			Name:     req.Name,
			LastName: req.LastName,
			Phone:    req.Phone,
			Service:  req.Service,
		})
		if err != nil {
			return err
		}

		body := snapshot(wf)
		body["booking_code"] = wf.PendingCode()
		c.JSON(http.StatusOK, body)
		return nil
	})
}

func (h *BookingSessionHandler) Confirm(c *gin.Context) {
	h.withWorkflow(c, func(wf *domain.Workflow) error {
		ap, fresh, err := wf.Confirm(c.Request.Context())
		if err != nil {
			if httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
				// lost the race: back to time selection with a
				// refreshed view, not a dead end
				c.JSON(http.StatusConflict, gin.H{
					"error_code":      httperr.CodeSlotUnavailable,
					"message":         "El horario ya no está disponible, elija otro.",
					"state":           wf.State(),
					"available_times": fresh,
				})
				return nil
			}
			return err
		}

		c.JSON(http.StatusCreated, gin.H{
			"state":       wf.State(),
			"appointment": ap,
		})
		return nil
	})
}

func (h *BookingSessionHandler) CancelConfirmation(c *gin.Context) {
	h.withWorkflow(c, func(wf *domain.Workflow) error {
		if err := wf.CancelConfirmation(); err != nil {
			return err
		}
		c.JSON(http.StatusOK, snapshot(wf))
		return nil
	})
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingSessionHandler) withWorkflow(c *gin.Context, fn func(*domain.Workflow) error) {
	id := c.Param("id")

	err := h.store.Do(id, fn)
	if err != nil {
		mapBusinessError(c, err)
	}
}

func snapshot(wf *domain.Workflow) gin.H {
	return gin.H{
		"state":  wf.State(),
		"date":   wf.Date(),
		"barber": wf.BarberName(),
		"time":   wf.TimeOfDay(),
	}
}
