package appointment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/models"
	uc "github.com/cortemaestro/barbershop-api/internal/usecase/appointment"
)

func strPtr(s string) *string { return &s }

func TestTransitionAppointment(t *testing.T) {
	ctx := context.Background()
	loc, _ := time.LoadLocation(testTZ)

	seed := func(repo *fakeRepo) *models.Appointment {
		repo.addService(models.Service{ID: 1, Name: "Corte Clásico", Price: 8000, DurationMin: 45})
		return repo.addAppointment(models.Appointment{
			ID:            1,
			ServiceID:     1,
			StartTime:     time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
			EndTime:       time.Date(2026, 3, 10, 10, 45, 0, 0, loc),
			Status:        string(domain.StatusScheduled),
			PaymentStatus: string(domain.PaymentUnpaid),
		})
	}

	t.Run("marks paid with catalog backfill", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo)
		transition := uc.NewTransitionAppointment(repo, nil, testTZ)

		ap, err := transition.Execute(ctx, nil, uc.TransitionInput{
			AppointmentID: 1,
			Status:        strPtr("CONFIRMED"),
			PaymentStatus: strPtr("PAID"),
		})
		require.NoError(t, err)

		assert.Equal(t, "CONFIRMED", ap.Status)
		assert.Equal(t, "PAID", ap.PaymentStatus)
		require.NotNil(t, ap.PaidAt)
		require.NotNil(t, ap.PriceSnapshot)
		assert.Equal(t, 8000, *ap.PriceSnapshot)

		stored, err := repo.GetAppointment(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "PAID", stored.PaymentStatus)
	})

	t.Run("marking paid fails when the service is gone", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addAppointment(models.Appointment{
			ID:            1,
			ServiceID:     99,
			StartTime:     time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
			EndTime:       time.Date(2026, 3, 10, 10, 45, 0, 0, loc),
			Status:        string(domain.StatusConfirmed),
			PaymentStatus: string(domain.PaymentUnpaid),
		})
		transition := uc.NewTransitionAppointment(repo, nil, testTZ)

		_, err := transition.Execute(ctx, nil, uc.TransitionInput{
			AppointmentID: 1,
			PaymentStatus: strPtr("PAID"),
		})
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))

		stored, err := repo.GetAppointment(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "UNPAID", stored.PaymentStatus)
	})

	t.Run("an existing snapshot pays without the catalog", func(t *testing.T) {
		repo := newFakeRepo()
		snapshot := 7000
		repo.addAppointment(models.Appointment{
			ID:            1,
			ServiceID:     99,
			StartTime:     time.Date(2026, 3, 10, 10, 0, 0, 0, loc),
			EndTime:       time.Date(2026, 3, 10, 10, 45, 0, 0, loc),
			Status:        string(domain.StatusConfirmed),
			PaymentStatus: string(domain.PaymentUnpaid),
			PriceSnapshot: &snapshot,
		})
		transition := uc.NewTransitionAppointment(repo, nil, testTZ)

		ap, err := transition.Execute(ctx, nil, uc.TransitionInput{
			AppointmentID: 1,
			PaymentStatus: strPtr("PAID"),
		})
		require.NoError(t, err)

		assert.Equal(t, "PAID", ap.PaymentStatus)
		require.NotNil(t, ap.PriceSnapshot)
		assert.Equal(t, 7000, *ap.PriceSnapshot)
	})

	t.Run("invalid enum values never touch the repo", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo)
		transition := uc.NewTransitionAppointment(repo, nil, testTZ)

		_, err := transition.Execute(ctx, nil, uc.TransitionInput{
			AppointmentID: 1,
			Status:        strPtr("DONE"),
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))

		_, err = transition.Execute(ctx, nil, uc.TransitionInput{
			AppointmentID: 1,
			PaymentStatus: strPtr("PENDING"),
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_payment_status"))

		stored, err := repo.GetAppointment(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "SCHEDULED", stored.Status)
	})

	t.Run("missing appointment", func(t *testing.T) {
		repo := newFakeRepo()
		transition := uc.NewTransitionAppointment(repo, nil, testTZ)

		_, err := transition.Execute(ctx, nil, uc.TransitionInput{
			AppointmentID: 42,
			Status:        strPtr("CONFIRMED"),
		})
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})

	t.Run("empty patch", func(t *testing.T) {
		repo := newFakeRepo()
		seed(repo)
		transition := uc.NewTransitionAppointment(repo, nil, testTZ)

		_, err := transition.Execute(ctx, nil, uc.TransitionInput{AppointmentID: 1})
		assert.True(t, httperr.IsBusiness(err, "nothing_to_update"))
	})

	t.Run("rejected transition leaves the record untouched", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seed(repo)
		ap.Status = string(domain.StatusCompleted)
		require.NoError(t, repo.UpdateAppointment(ctx, ap))

		transition := uc.NewTransitionAppointment(repo, nil, testTZ)

		_, err := transition.Execute(ctx, nil, uc.TransitionInput{
			AppointmentID: 1,
			Status:        strPtr("CANCELLED"),
		})
		assert.True(t, httperr.IsBusiness(err, "status_transition_not_allowed"))

		stored, err := repo.GetAppointment(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", stored.Status)
	})
}
