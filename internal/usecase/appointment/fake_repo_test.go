package appointment_test

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/models"
)

// fakeRepo is an in-memory Repository with the same observable
// behavior as the gorm implementation.
type fakeRepo struct {
	services     map[uint]*models.Service
	barbers      map[uint]*models.Barber
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]*models.Service{},
		barbers:      map[uint]*models.Barber{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (f *fakeRepo) addService(svc models.Service) *models.Service {
	f.services[svc.ID] = &svc
	return &svc
}

func (f *fakeRepo) addBarber(b models.Barber) *models.Barber {
	f.barbers[b.ID] = &b
	return &b
}

func (f *fakeRepo) addAppointment(ap models.Appointment) *models.Appointment {
	if ap.ID == 0 {
		f.nextID++
		ap.ID = f.nextID
	} else if ap.ID > f.nextID {
		f.nextID = ap.ID
	}
	f.appointments[ap.ID] = &ap
	return &ap
}

func (f *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return svc, nil
}

func (f *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.nextID++
	ap.ID = f.nextID
	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeRepo) AssertNoTimeConflict(
	_ context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) error {

	for _, ap := range f.appointments {
		if ap.BarberID != barberID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (f *fakeRepo) HasBookingForPhoneOnDay(
	_ context.Context,
	phoneNormalized string,
	dayStart time.Time,
	dayEnd time.Time,
) (bool, error) {

	for _, ap := range f.appointments {
		if ap.PhoneNormalized != phoneNormalized || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if !ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *ap
	if svc, ok := f.services[ap.ServiceID]; ok {
		copied.Service = *svc
	}
	if b, ok := f.barbers[ap.BarberID]; ok {
		copied.Barber = *b
	}
	return &copied, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := f.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, id uint) error {
	if _, ok := f.appointments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeRepo) FindLatestByPhone(
	_ context.Context,
	phoneNormalized string,
) (*models.Appointment, error) {

	var latest *models.Appointment
	for _, ap := range f.appointments {
		if ap.PhoneNormalized != phoneNormalized ||
			ap.Status == string(domain.StatusCancelled) ||
			ap.Status == string(domain.StatusCompleted) {
			continue
		}
		if latest == nil || ap.StartTime.After(latest.StartTime) {
			latest = ap
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeRepo) ListActiveForBarberDay(
	_ context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	out := []models.Appointment{}
	for _, ap := range f.appointments {
		if ap.BarberID != barberID || ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if !ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) ListCompletedBetween(
	_ context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	out := []models.Appointment{}
	for _, ap := range f.appointments {
		if ap.Status != string(domain.StatusCompleted) {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			copied := *ap
			if svc, ok := f.services[ap.ServiceID]; ok {
				copied.Service = *svc
			}
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
