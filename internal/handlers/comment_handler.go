package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/httpresp"
	"github.com/cortemaestro/barbershop-api/internal/models"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// --------- Requests ---------

type CreateCommentRequest struct {
	Name    string `json:"name" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type UpdateCommentRequest struct {
	Visible *bool   `json:"visible,omitempty"`
	Name    *string `json:"name,omitempty"`
	Message *string `json:"message,omitempty"`
}

// --------- Handlers ---------

// List returns visible comments. Admin screens pass ?all=true to see
// hidden ones too.
func (h *CommentHandler) List(c *gin.Context) {
	q := h.db.Order("created_at DESC")
	if c.Query("all") != "true" {
		q = q.Where("visible = ?", true)
	}

	var comments []models.Comment
	if err := q.Find(&comments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_comments", "Error al obtener comentarios.")
		return
	}

	httpresp.OK(c, comments)
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nombre y mensaje son obligatorios.")
		return
	}

	comment := models.Comment{
		Name:    strings.TrimSpace(req.Name),
		Message: strings.TrimSpace(req.Message),
		Visible: true,
	}

	if comment.Name == "" || comment.Message == "" {
		httperr.BadRequest(c, "invalid_request", "Nombre y mensaje son obligatorios.")
		return
	}

	if err := h.db.Create(&comment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_comment", "Error al crear comentario.")
		return
	}

	httpresp.Created(c, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var comment models.Comment
	if err := h.db.First(&comment, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "comment_not_found", "Comentario no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_comment", "Error al obtener comentario.")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Visible == nil && req.Name == nil && req.Message == nil {
		httperr.BadRequest(c, "nothing_to_update", "Nada para actualizar.")
		return
	}

	if req.Visible != nil {
		comment.Visible = *req.Visible
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nombre vacío.")
			return
		}
		comment.Name = name
	}
	if req.Message != nil {
		msg := strings.TrimSpace(*req.Message)
		if msg == "" {
			httperr.BadRequest(c, "invalid_message", "Mensaje vacío.")
			return
		}
		comment.Message = msg
	}

	if err := h.db.Save(&comment).Error; err != nil {
		httperr.Internal(c, "failed_to_update_comment", "Error al actualizar comentario.")
		return
	}

	httpresp.OK(c, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_comment", "Error al eliminar comentario.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "comment_not_found", "Comentario no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"ok": true})
}
