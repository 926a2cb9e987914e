package appointment

import (
	"context"
	"time"

	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
)

type GetAvailability struct {
	repo  domain.Repository
	sched domain.Schedule
}

func NewGetAvailability(
	repo domain.Repository,
	sched domain.Schedule,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		sched: sched,
	}
}

// Execute computes free slots for a barber/service/day. An unknown
// service soft-fails to an empty list so the booking form simply shows
// no times instead of an error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	date time.Time,
) ([]domain.TimeSlot, error) {

	svc, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return []domain.TimeSlot{}, nil
	}

	loc := date.Location()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	existing, err := uc.repo.ListActiveForBarberDay(ctx, barberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return domain.AvailableSlots(uc.sched, svc.DurationMin, existing, dayStart), nil
}
