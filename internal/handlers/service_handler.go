package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/httpresp"
	"github.com/cortemaestro/barbershop-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    int    `json:"price" binding:"required,min=1"`
	Duration int    `json:"duration" binding:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name     *string `json:"name,omitempty"`
	Price    *int    `json:"price,omitempty"`
	Duration *int    `json:"duration,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al obtener servicios.")
		return
	}

	httpresp.OK(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nombre, precio y duración son obligatorios.")
		return
	}

	svc := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		DurationMin: req.Duration,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "service_name_exists", "Nombre de servicio ya existe.")
			return
		}
		httperr.Internal(c, "failed_to_create_service", "Error al crear servicio.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var svc models.Service
	if err := h.db.First(&svc, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Error al obtener servicio.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name == nil && req.Price == nil && req.Duration == nil {
		httperr.BadRequest(c, "nothing_to_update", "Nada para actualizar.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nombre vacío.")
			return
		}
		svc.Name = name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			httperr.BadRequest(c, "invalid_price", "Precio inválido (entero > 0).")
			return
		}
		svc.Price = *req.Price
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			httperr.BadRequest(c, "invalid_duration", "Duración inválida (minutos > 0).")
			return
		}
		svc.DurationMin = *req.Duration
	}

	if err := h.db.Save(&svc).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "service_name_exists", "Nombre de servicio ya existe.")
			return
		}
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar servicio.")
		return
	}

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		if httperr.IsForeignKeyViolation(res.Error) {
			httperr.Conflict(c, "service_in_use", "No se puede eliminar: tiene citas asociadas.")
			return
		}
		httperr.Internal(c, "failed_to_delete_service", "Error al eliminar servicio.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"ok": true})
}
