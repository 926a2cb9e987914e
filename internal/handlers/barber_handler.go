package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/httpresp"
	"github.com/cortemaestro/barbershop-api/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
}

type UpdateBarberRequest struct {
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Order("id ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al obtener barberos.")
		return
	}

	httpresp.OK(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nombre requerido.")
		return
	}

	barber := models.Barber{
		Name:      strings.TrimSpace(req.Name),
		Specialty: strings.TrimSpace(req.Specialty),
		Active:    true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "barber_name_exists", "Nombre de barbero ya existe.")
			return
		}
		httperr.Internal(c, "failed_to_create_barber", "Error al crear barbero.")
		return
	}

	httpresp.Created(c, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var barber models.Barber
	if err := h.db.First(&barber, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Error al obtener barbero.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name == nil && req.Specialty == nil && req.Active == nil {
		httperr.BadRequest(c, "nothing_to_update", "Nada para actualizar.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nombre vacío.")
			return
		}
		barber.Name = name
	}
	if req.Specialty != nil {
		barber.Specialty = strings.TrimSpace(*req.Specialty)
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "barber_name_exists", "Nombre de barbero ya existe.")
			return
		}
		httperr.Internal(c, "failed_to_update_barber", "Error al actualizar barbero.")
		return
	}

	httpresp.OK(c, barber)
}

func (h *BarberHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.Barber{}, "id = ?", id)
	if res.Error != nil {
		if httperr.IsForeignKeyViolation(res.Error) {
			httperr.Conflict(c, "barber_in_use", "No se puede eliminar: tiene citas asociadas.")
			return
		}
		httperr.Internal(c, "failed_to_delete_barber", "Error al eliminar barbero.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"ok": true})
}
