package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chentesbarber/booking-api/internal/audit"
	"github.com/chentesbarber/booking-api/internal/config"
	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/middleware"
	"github.com/chentesbarber/booking-api/internal/models"
	"github.com/chentesbarber/booking-api/internal/timezone"
	ucbooking "github.com/chentesbarber/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// CatalogHandler owns the admin CRUD for barbers and services.
type CatalogHandler struct {
	db            *gorm.DB
	audit         *audit.Dispatcher
	policy        domain.DeletePolicy
	deleteService *ucbooking.DeleteService
}

func NewCatalogHandler(
	db *gorm.DB,
	cfg *config.Config,
	dispatcher *audit.Dispatcher,
	deleteService *ucbooking.DeleteService,
) *CatalogHandler {
	return &CatalogHandler{
		db:            db,
		audit:         dispatcher,
		policy:        domain.DeletePolicy(cfg.DeletePolicy),
		deleteService: deleteService,
	}
}

// entityID rejects non-numeric :id params before they reach the
// database as a bigint comparison.
func entityID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// REQUESTS
// ======================================================

type BarberRequest struct {
	Name string `json:"name" binding:"required"`
}

type ServiceRequest struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"required"`
}

// ======================================================
// BARBERS
// ======================================================

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	barber := models.Barber{Name: name}
	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Error al crear el barbero.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusCreated, barber)
}

func (h *CatalogHandler) UpdateBarber(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := entityID(c)
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeNotFound, "Barbero no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Error al buscar el barbero.")
		return
	}

	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	barber.Name = name
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Error al actualizar el barbero.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_updated",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusOK, barber)
}

func (h *CatalogHandler) DeleteBarber(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := entityID(c)
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeNotFound, "Barbero no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Error al buscar el barbero.")
		return
	}

	var future int64
	if err := h.db.Model(&models.Appointment{}).
		Where("barber_id = ? AND date >= ?", barber.ID, timezone.Today()).
		Count(&future).Error; err != nil {
		httperr.Internal(c, "failed_to_check_appointments", "Error al revisar citas.")
		return
	}

	if err := h.policy.CheckDelete(future); err != nil {
		mapBusinessError(c, err)
		return
	}

	// appointments and availability rows go with the barber via FK
	if err := h.db.Delete(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Error al eliminar el barbero.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_deleted",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": barber.ID})
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) CreateService(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	if err := domain.ValidatePrice(*req.Price); err != nil {
		mapBusinessError(c, err)
		return
	}

	service := models.Service{Name: name, Price: *req.Price}
	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error al crear el servicio.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := entityID(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeNotFound, "Servicio no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Error al buscar el servicio.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	name, err := domain.NormalizeName(req.Name)
	if err != nil {
		mapBusinessError(c, err)
		return
	}
	if err := domain.ValidatePrice(*req.Price); err != nil {
		mapBusinessError(c, err)
		return
	}

	service.Name = name
	service.Price = *req.Price
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar el servicio.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, service)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := entityID(c)
	if !ok {
		return
	}

	service, err := h.deleteService.Execute(c.Request.Context(), &adminID, id)
	if err != nil {
		mapBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": service.ID})
}
