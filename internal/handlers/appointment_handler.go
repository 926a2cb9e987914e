package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortemaestro/barbershop-api/internal/audit"
	"github.com/cortemaestro/barbershop-api/internal/cache"
	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/httpresp"
	"github.com/cortemaestro/barbershop-api/internal/middleware"
	"github.com/cortemaestro/barbershop-api/internal/models"
	"github.com/cortemaestro/barbershop-api/internal/timezone"
	ucAppointment "github.com/cortemaestro/barbershop-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER (admin surface)
// ======================================================

type AppointmentHandler struct {
	db         *gorm.DB
	transition *ucAppointment.TransitionAppointment
	summary    *ucAppointment.DailySummary
	audit      *audit.Dispatcher
	cache      *cache.Cache
	tz         string
}

func NewAppointmentHandler(
	db *gorm.DB,
	transition *ucAppointment.TransitionAppointment,
	summary *ucAppointment.DailySummary,
	auditDispatcher *audit.Dispatcher,
	c *cache.Cache,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		transition: transition,
		summary:    summary,
		audit:      auditDispatcher,
		cache:      c,
		tz:         tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type TransitionRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

type appointmentFilters struct {
	Date     string
	BarberID uint
	Status   string
	Today    bool
	Upcoming bool
	Limit    int
}

func parseAppointmentFilters(c *gin.Context) (appointmentFilters, error) {
	f := appointmentFilters{
		Date:   c.Query("date"),
		Status: c.Query("status"),
	}

	if v := c.Query("barberId"); v != "" && v != "all" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return f, httperr.ErrBusiness("invalid_barber_id")
		}
		f.BarberID = uint(id)
	}

	if f.Status != "" && f.Status != "all" {
		if _, err := domain.ParseStatus(f.Status); err != nil {
			return f, err
		}
	}

	f.Today = c.Query("today") == "true"
	f.Upcoming = c.Query("upcoming") == "true"

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, httperr.ErrBusiness("invalid_limit")
		}
		f.Limit = n
	}

	return f, nil
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	f, err := parseAppointmentFilters(c)
	if err != nil {
		httperr.BadRequest(c, httperr.BusinessCode(err), "Filtros inválidos.")
		return
	}

	q := h.db.Preload("Barber").Preload("Service")

	loc := timezone.Location(h.tz)
	now := time.Now().In(loc)

	if f.Date != "" {
		day, err := parseDate(h.tz, f.Date)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return
		}
		dayStart := startOfDay(day)
		q = q.Where("start_time >= ? AND start_time < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	if f.Today {
		dayStart := startOfDay(now)
		q = q.Where("start_time >= ? AND start_time < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	if f.Upcoming {
		q = q.Where("start_time >= ? AND status <> ?", now, string(domain.StatusCancelled))
	}

	if f.BarberID != 0 {
		q = q.Where("barber_id = ?", f.BarberID)
	}

	if f.Status != "" && f.Status != "all" {
		q = q.Where("status = ?", f.Status)
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var appointments []models.Appointment
	if err := q.Order("start_time ASC").Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al obtener citas.")
		return
	}

	httpresp.OK(c, appointments)
}

// ======================================================
// TRANSITION (status / payment)
// ======================================================

func (h *AppointmentHandler) Transition(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.transition.Execute(
		c.Request.Context(),
		&userID,
		ucAppointment.TransitionInput{
			AppointmentID: uint(id),
			Status:        req.Status,
			PaymentStatus: req.PaymentStatus,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
			return
		}
		if code := httperr.BusinessCode(err); code != "" {
			httperr.BadRequest(c, code, "Transición no permitida.")
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Error al actualizar.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.DashboardKey, cache.MetricsKey)

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res := h.db.Delete(&models.Appointment{}, uint(id))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "Error al eliminar cita.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
		return
	}

	entityID := uint(id)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &entityID,
	})

	h.cache.Invalidate(c.Request.Context(), cache.DashboardKey, cache.MetricsKey)

	httpresp.OK(c, gin.H{"ok": true})
}

// ======================================================
// SUMMARY (per-service revenue of a day)
// ======================================================

func (h *AppointmentHandler) Summary(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Fecha requerida.")
		return
	}

	date, err := parseDate(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	result, err := h.summary.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "summary_failed", "Error al calcular resumen.")
		return
	}

	httpresp.OK(c, result)
}
