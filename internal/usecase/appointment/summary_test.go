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

func TestDailySummary(t *testing.T) {
	ctx := context.Background()
	loc, _ := time.LoadLocation(testTZ)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	intPtr := func(n int) *int { return &n }

	completed := func(serviceID uint, hour int, snapshot *int) models.Appointment {
		return models.Appointment{
			ServiceID:     serviceID,
			StartTime:     day.Add(time.Duration(hour) * time.Hour),
			Status:        string(domain.StatusCompleted),
			PriceSnapshot: snapshot,
		}
	}

	t.Run("groups completed bookings per service", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(models.Service{ID: 1, Name: "Corte Clásico", Price: 8000})
		repo.addService(models.Service{ID: 2, Name: "Barba", Price: 5000})

		repo.addAppointment(completed(1, 10, intPtr(8000)))
		repo.addAppointment(completed(1, 11, intPtr(7500)))
		repo.addAppointment(completed(2, 12, intPtr(5000)))

		// Cancelled and scheduled bookings stay out of the report.
		sc := completed(2, 13, intPtr(5000))
		sc.Status = string(domain.StatusScheduled)
		repo.addAppointment(sc)

		// Yesterday's completed booking stays out too.
		old := completed(1, 10, intPtr(8000))
		old.StartTime = day.AddDate(0, 0, -1).Add(10 * time.Hour)
		repo.addAppointment(old)

		summary := uc.NewDailySummary(repo, testTZ)

		result, err := summary.Execute(ctx, day)
		require.NoError(t, err)

		require.Len(t, result.Rows, 2)
		assert.Equal(t, uint(1), result.Rows[0].ServiceID)
		assert.Equal(t, "Corte Clásico", result.Rows[0].Name)
		assert.Equal(t, 2, result.Rows[0].Count)
		assert.Equal(t, 15500, result.Rows[0].Total)
		assert.Equal(t, 5000, result.Rows[1].Total)
		assert.Equal(t, 20500, result.GrandTotal)
	})

	t.Run("missing snapshot falls back to the catalog price", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(models.Service{ID: 1, Name: "Corte Clásico", Price: 9000})
		repo.addAppointment(completed(1, 10, nil))
		repo.addAppointment(completed(1, 11, intPtr(0)))

		summary := uc.NewDailySummary(repo, testTZ)

		result, err := summary.Execute(ctx, day)
		require.NoError(t, err)

		require.Len(t, result.Rows, 1)
		assert.Equal(t, 18000, result.Rows[0].Total)
	})

	t.Run("empty day", func(t *testing.T) {
		summary := uc.NewDailySummary(newFakeRepo(), testTZ)

		result, err := summary.Execute(ctx, day)
		require.NoError(t, err)

		assert.Empty(t, result.Rows)
		assert.Zero(t, result.GrandTotal)
	})
}
