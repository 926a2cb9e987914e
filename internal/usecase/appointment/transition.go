package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cortemaestro/barbershop-api/internal/audit"
	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/models"
	"github.com/cortemaestro/barbershop-api/internal/timezone"
)

type TransitionInput struct {
	AppointmentID uint

	// Either field may be nil; at least one is required.
	Status        *string
	PaymentStatus *string
}

type TransitionAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewTransitionAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	userID *uint,
	in TransitionInput,
) (*models.Appointment, error) {

	var newStatus *domain.Status
	if in.Status != nil {
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		newStatus = &st
	}

	var newPayment *domain.PaymentStatus
	if in.PaymentStatus != nil {
		ps, err := domain.ParsePaymentStatus(*in.PaymentStatus)
		if err != nil {
			return nil, err
		}
		newPayment = &ps
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	// Current catalog price backfills a missing snapshot on first PAID.
	// Only fetched when that backfill is actually needed, so a booking
	// that already carries its snapshot survives a deleted service.
	servicePrice := 0
	needsSnapshot := newPayment != nil && *newPayment == domain.PaymentPaid &&
		(ap.PriceSnapshot == nil || *ap.PriceSnapshot <= 0)
	if needsSnapshot {
		svc, err := uc.repo.GetService(ctx, ap.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness("service_not_found")
			}
			return nil, err
		}
		servicePrice = svc.Price
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Transition(ap, newStatus, newPayment, servicePrice, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"status":         ap.Status,
			"payment_status": ap.PaymentStatus,
		},
	})

	return ap, nil
}
