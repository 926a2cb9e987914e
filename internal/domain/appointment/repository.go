package appointment

import (
	"context"
	"time"

	"github.com/cortemaestro/barbershop-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// AssertNoTimeConflict fails with "time_conflict" when the barber
	// has a non-cancelled appointment intersecting [start, end).
	AssertNoTimeConflict(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) error

	// HasBookingForPhoneOnDay checks the one-booking-per-phone-per-day
	// rule against non-cancelled appointments.
	HasBookingForPhoneOnDay(
		ctx context.Context,
		phoneNormalized string,
		dayStart time.Time,
		dayEnd time.Time,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// FindLatestByPhone returns the most recent still-cancellable
	// booking for the phone: cancelled and completed ones are skipped.
	FindLatestByPhone(
		ctx context.Context,
		phoneNormalized string,
	) (*models.Appointment, error)

	// -------- Availability / reporting --------
	ListActiveForBarberDay(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	ListCompletedBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
