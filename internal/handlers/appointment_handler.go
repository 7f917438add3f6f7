package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/dto"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/httpresp"
	"github.com/chentesbarber/booking-api/internal/middleware"
	ucbooking "github.com/chentesbarber/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler is the admin view of the ledger: filtered listing
// and deletion. Deleting an appointment frees its slot with no further
// admin action.
type AppointmentHandler struct {
	list *ucbooking.ListAppointments
	del  *ucbooking.DeleteAppointment
}

func NewAppointmentHandler(
	list *ucbooking.ListAppointments,
	del *ucbooking.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		list: list,
		del:  del,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	filters := domain.AppointmentFilters{
		Name:    c.Query("name"),
		Phone:   c.Query("phone"),
		Date:    c.Query("date"),
		Service: c.Query("service"),
	}

	aps, err := h.list.Execute(c.Request.Context(), filters)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			BarberID:    ap.BarberID,
			BarberName:  ap.Barber.Name,
			Date:        ap.Date,
			Time:        ap.Time,
			Service:     ap.ServiceName,
			ClientName:  ap.ClientName,
			LastName:    ap.LastName,
			Phone:       ap.Phone,
			BookingCode: ap.BookingCode,
			CreatedAt:   ap.CreatedAt,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Cita inválida.")
		return
	}

	ap, err := h.del.Execute(c.Request.Context(), uint(id), &adminID)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(200, gin.H{"deleted": ap.ID})
}
