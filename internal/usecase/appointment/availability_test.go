package appointment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
	"github.com/cortemaestro/barbershop-api/internal/models"
	uc "github.com/cortemaestro/barbershop-api/internal/usecase/appointment"
)

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()
	loc, _ := time.LoadLocation(testTZ)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	sched := domain.Schedule{StartHour: 9, EndHour: 19}

	t.Run("free day exposes the whole window", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(models.Service{ID: 1, Price: 8000, DurationMin: 60})

		availability := uc.NewGetAvailability(repo, sched)

		slots, err := availability.Execute(ctx, 2, 1, day)
		require.NoError(t, err)

		require.Len(t, slots, 10)
		assert.Equal(t, 9, slots[0].Start.Hour())
		assert.Equal(t, 18, slots[9].Start.Hour())
	})

	t.Run("active bookings block their slots, cancelled ones do not", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(models.Service{ID: 1, Price: 8000, DurationMin: 60})

		repo.addAppointment(models.Appointment{
			BarberID:  2,
			StartTime: day.Add(10 * time.Hour),
			EndTime:   day.Add(11 * time.Hour),
			Status:    string(domain.StatusConfirmed),
		})
		repo.addAppointment(models.Appointment{
			BarberID:  2,
			StartTime: day.Add(12 * time.Hour),
			EndTime:   day.Add(13 * time.Hour),
			Status:    string(domain.StatusCancelled),
		})

		availability := uc.NewGetAvailability(repo, sched)

		slots, err := availability.Execute(ctx, 2, 1, day)
		require.NoError(t, err)

		starts := make([]int, 0, len(slots))
		for _, s := range slots {
			starts = append(starts, s.Start.Hour())
		}
		assert.NotContains(t, starts, 10)
		assert.Contains(t, starts, 12)
	})

	t.Run("another barber's bookings are irrelevant", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(models.Service{ID: 1, Price: 8000, DurationMin: 60})
		repo.addAppointment(models.Appointment{
			BarberID:  7,
			StartTime: day.Add(10 * time.Hour),
			EndTime:   day.Add(11 * time.Hour),
			Status:    string(domain.StatusScheduled),
		})

		availability := uc.NewGetAvailability(repo, sched)

		slots, err := availability.Execute(ctx, 2, 1, day)
		require.NoError(t, err)
		assert.Len(t, slots, 10)
	})

	t.Run("unknown service soft-fails to no slots", func(t *testing.T) {
		availability := uc.NewGetAvailability(newFakeRepo(), sched)

		slots, err := availability.Execute(ctx, 2, 99, day)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}
