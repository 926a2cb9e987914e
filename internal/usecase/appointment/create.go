package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/cortemaestro/barbershop-api/internal/audit"
	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/models"
	"github.com/cortemaestro/barbershop-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerName string
	Phone        string
	ServiceID    uint
	BarberID     uint

	// RFC3339 instant, or "2006-01-02 15:04" interpreted in the shop
	// timezone.
	Start string

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	name := strings.TrimSpace(in.CustomerName)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" || in.ServiceID == 0 || in.BarberID == 0 || in.Start == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	normalized := domain.NormalizePhone(phone)
	if normalized == "" {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	loc := timezone.Location(uc.tz)
	start, err := parseStart(in.Start, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_start")
	}
	start = start.In(loc)

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	dup, err := uc.repo.HasBookingForPhoneOnDay(ctx, normalized, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, httperr.ErrBusiness("duplicate_booking")
	}

	if err := uc.repo.AssertNoTimeConflict(ctx, barber.ID, start, end); err != nil {
		return nil, err
	}

	snapshot := svc.Price
	ap := &models.Appointment{
		CustomerName:    name,
		Phone:           phone,
		PhoneNormalized: normalized,
		StartTime:       start,
		EndTime:         end,
		BookingDate:     dayStart,
		Status:          string(domain.StatusScheduled),
		PaymentStatus:   string(domain.PaymentUnpaid),
		PriceSnapshot:   &snapshot,
		Notes:           in.Notes,
		BarberID:        barber.ID,
		ServiceID:       svc.ID,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, ap.ID)
}

func parseStart(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", raw, loc)
}
