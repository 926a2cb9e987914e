package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cortemaestro/barbershop-api/internal/cache"
	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/httpresp"
	ucAppointment "github.com/cortemaestro/barbershop-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER (public booking surface)
// ======================================================

type PublicHandler struct {
	repo         domain.Repository
	create       *ucAppointment.CreateAppointment
	cancelLatest *ucAppointment.CancelLatestByPhone
	availability *ucAppointment.GetAvailability
	cache        *cache.Cache
	tz           string
}

func NewPublicHandler(
	repo domain.Repository,
	create *ucAppointment.CreateAppointment,
	cancelLatest *ucAppointment.CancelLatestByPhone,
	availability *ucAppointment.GetAvailability,
	c *cache.Cache,
	tz string,
) *PublicHandler {
	return &PublicHandler{
		repo:         repo,
		create:       create,
		cancelLatest: cancelLatest,
		availability: availability,
		cache:        c,
		tz:           tz,
	}
}

// ======================================================
// DTOs
// ======================================================

type BookAppointmentRequest struct {
	CustomerName string `json:"customerName" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	ServiceID    uint   `json:"serviceId" binding:"required"`
	BarberID     uint   `json:"barberId" binding:"required"`
	Start        string `json:"start" binding:"required"`
	Notes        string `json:"notes"`
}

type CancelLatestRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type AvailableTimesRequest struct {
	BarberID  uint   `json:"barberId" binding:"required"`
	ServiceID uint   `json:"serviceId" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
}

type CheckDuplicateRequest struct {
	Phone string `json:"phone" binding:"required"`
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
}

// ======================================================
// CREATE
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos incompletos.")
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			CustomerName: req.CustomerName,
			Phone:        req.Phone,
			ServiceID:    req.ServiceID,
			BarberID:     req.BarberID,
			Start:        req.Start,
			Notes:        req.Notes,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.DashboardKey, cache.MetricsKey)

	httpresp.Created(c, ap)
}

func mapBookingError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "missing_fields", "invalid_phone", "invalid_start":
		httperr.BadRequest(c, code, "Datos inválidos.")
	case "service_not_found":
		httperr.NotFound(c, code, "Servicio no encontrado.")
	case "barber_not_found":
		httperr.NotFound(c, code, "Barbero no encontrado.")
	case "duplicate_booking":
		httperr.Conflict(c, code, "Ya existe una cita para este número hoy.")
	case "time_conflict":
		httperr.Conflict(c, code, "El horario ya está tomado.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Error al crear cita.")
	}
}

// ======================================================
// CANCEL LATEST BY PHONE
// ======================================================

func (h *PublicHandler) CancelLatest(c *gin.Context) {
	var req CancelLatestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Número de teléfono requerido.")
		return
	}

	ap, err := h.cancelLatest.Execute(c.Request.Context(), req.Phone)
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "No se encontró ninguna cita con ese número.")
			return
		}
		if httperr.IsBusiness(err, "invalid_phone") {
			httperr.BadRequest(c, "invalid_phone", "Número inválido.")
			return
		}
		httperr.Internal(c, "failed_to_cancel", "Error al cancelar la cita.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), cache.DashboardKey, cache.MetricsKey)

	httpresp.OK(c, gin.H{"ok": true, "cancelledId": ap.ID})
}

// ======================================================
// AVAILABILITY
// ======================================================

// AvailableTimes is the booking-form variant: HH:mm strings.
func (h *PublicHandler) AvailableTimes(c *gin.Context) {
	var req AvailableTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos incompletos.")
		return
	}

	slots, err := h.slotsFor(c, req.BarberID, req.ServiceID, req.Date)
	if err != nil {
		return // response already written
	}

	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Start.Format("15:04"))
	}

	httpresp.OK(c, times)
}

// Availability is the ISO variant used by the admin calendar.
func (h *PublicHandler) Availability(c *gin.Context) {
	barberID, err1 := strconv.ParseUint(c.Query("barberId"), 10, 64)
	serviceID, err2 := strconv.ParseUint(c.Query("serviceId"), 10, 64)
	dateStr := c.Query("date")

	if err1 != nil || err2 != nil || dateStr == "" {
		httperr.BadRequest(c, "invalid_params", "Parámetros inválidos.")
		return
	}

	slots, err := h.slotsFor(c, uint(barberID), uint(serviceID), dateStr)
	if err != nil {
		return
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.Format(time.RFC3339))
	}

	httpresp.OK(c, gin.H{"slots": out})
}

func (h *PublicHandler) slotsFor(
	c *gin.Context,
	barberID uint,
	serviceID uint,
	dateStr string,
) ([]domain.TimeSlot, error) {

	date, err := parseDate(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return nil, err
	}

	slots, err := h.availability.Execute(c.Request.Context(), barberID, serviceID, date)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Error calculando disponibilidad.")
		return nil, err
	}

	return slots, nil
}

// ======================================================
// DUPLICATE CHECK (booking form pre-validation)
// ======================================================

func (h *PublicHandler) CheckDuplicate(c *gin.Context) {
	var req CheckDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Faltan datos.")
		return
	}

	normalized := domain.NormalizePhone(req.Phone)
	if normalized == "" {
		httperr.BadRequest(c, "invalid_phone", "Número inválido.")
		return
	}

	date, err := parseDate(h.tz, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	dayStart := startOfDay(date)
	exists, err := h.repo.HasBookingForPhoneOnDay(
		c.Request.Context(),
		normalized,
		dayStart,
		dayStart.Add(24*time.Hour),
	)
	if err != nil {
		httperr.Internal(c, "check_failed", "Error en el servidor.")
		return
	}

	httpresp.OK(c, gin.H{"exists": exists})
}
