package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/httpresp"
	"github.com/cortemaestro/barbershop-api/internal/models"
	"github.com/cortemaestro/barbershop-api/internal/storage"
)

const maxUploadBytes = 10 << 20 // 10 MiB
const galleryMaxWidth = 1600

type GalleryHandler struct {
	db    *gorm.DB
	store *storage.ImageStore
}

func NewGalleryHandler(db *gorm.DB, store *storage.ImageStore) *GalleryHandler {
	return &GalleryHandler{db: db, store: store}
}

// --------- Requests ---------

type CreateGalleryURLRequest struct {
	URL string `json:"url" binding:"required"`
	Alt string `json:"alt"`
}

type UpdateGalleryRequest struct {
	URL     *string `json:"url,omitempty"`
	Alt     *string `json:"alt,omitempty"`
	Visible *bool   `json:"visible,omitempty"`
	Order   *int    `json:"order,omitempty"`
}

type ReorderGalleryRequest struct {
	Items []struct {
		ID    uint `json:"id" binding:"required"`
		Order int  `json:"order"`
	} `json:"items" binding:"required,dive"`
}

// --------- Handlers ---------

// List returns visible images ordered for the public page; admin passes
// ?all=true.
func (h *GalleryHandler) List(c *gin.Context) {
	q := h.db.Order("sort_order ASC, id DESC")
	if c.Query("all") != "true" {
		q = q.Where("visible = ?", true)
	}

	var items []models.GalleryImage
	if err := q.Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_gallery", "Error al obtener galería.")
		return
	}

	httpresp.OK(c, items)
}

// Create accepts either a multipart upload under "file" (converted to
// webp and pushed to the bucket) or a JSON body with an external URL.
func (h *GalleryHandler) Create(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.createFromFile(c)
		return
	}

	var req CreateGalleryURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "URL requerida.")
		return
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		httperr.BadRequest(c, "invalid_url", "URL vacía.")
		return
	}

	h.insert(c, url, strings.TrimSpace(req.Alt))
}

func (h *GalleryHandler) createFromFile(c *gin.Context) {
	if h.store == nil {
		httperr.BadRequest(c, "uploads_disabled", "Subida de archivos no configurada.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Archivo requerido.")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Imagen demasiado grande.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "upload_failed", "Error al leer archivo.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		httperr.Internal(c, "upload_failed", "Error al leer archivo.")
		return
	}

	processed, err := storage.ProcessImage(raw, galleryMaxWidth)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "El archivo no es una imagen válida.")
		return
	}

	url, err := h.store.UploadWebp(c.Request.Context(), processed)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Error al subir imagen.")
		return
	}

	h.insert(c, url, strings.TrimSpace(c.PostForm("alt")))
}

func (h *GalleryHandler) insert(c *gin.Context, url, alt string) {
	img := models.GalleryImage{
		URL:     url,
		Alt:     alt,
		Visible: true,
	}

	if err := h.db.Create(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_create_image", "Error al guardar imagen.")
		return
	}

	httpresp.Created(c, img)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var img models.GalleryImage
	if err := h.db.First(&img, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "image_not_found", "Imagen no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_image", "Error al obtener imagen.")
		return
	}

	var req UpdateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.URL == nil && req.Alt == nil && req.Visible == nil && req.Order == nil {
		httperr.BadRequest(c, "nothing_to_update", "Nada para actualizar.")
		return
	}

	if req.URL != nil {
		url := strings.TrimSpace(*req.URL)
		if url == "" {
			httperr.BadRequest(c, "invalid_url", "URL vacía.")
			return
		}
		img.URL = url
	}
	if req.Alt != nil {
		img.Alt = strings.TrimSpace(*req.Alt)
	}
	if req.Visible != nil {
		img.Visible = *req.Visible
	}
	if req.Order != nil {
		if *req.Order < 0 {
			httperr.BadRequest(c, "invalid_order", "Orden inválido.")
			return
		}
		img.SortOrder = *req.Order
	}

	if err := h.db.Save(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_update_image", "Error al actualizar imagen.")
		return
	}

	httpresp.OK(c, img)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.db.Delete(&models.GalleryImage{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_image", "Error al eliminar imagen.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "image_not_found", "Imagen no encontrada.")
		return
	}

	httpresp.OK(c, gin.H{"ok": true})
}

// Reorder applies a bulk sort-order update in one transaction.
func (h *GalleryHandler) Reorder(c *gin.Context) {
	var req ReorderGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		httperr.BadRequest(c, "invalid_request", "Lista de orden requerida.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			res := tx.Model(&models.GalleryImage{}).
				Where("id = ?", item.ID).
				Update("sort_order", item.Order)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "image_not_found", "Imagen no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_reorder", "Error al reordenar galería.")
		return
	}

	httpresp.OK(c, gin.H{"ok": true})
}
