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

// CancelLatestByPhone is the public "cancel my booking" flow: the most
// recent non-cancelled appointment for the phone is soft-cancelled so
// history and revenue reporting stay intact. A paid booking is refunded
// by the same transition rules.
type CancelLatestByPhone struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCancelLatestByPhone(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CancelLatestByPhone {
	return &CancelLatestByPhone{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *CancelLatestByPhone) Execute(
	ctx context.Context,
	phone string,
) (*models.Appointment, error) {

	normalized := domain.NormalizePhone(phone)
	if normalized == "" {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	ap, err := uc.repo.FindLatestByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_cancelled_by_phone",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
