package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/models"
)

// In-memory Repository used across the usecase tests. The mutex makes
// CreateAppointment honor the same atomicity contract the gorm
// implementation gets from its transaction.
type memoryRepo struct {
	mu sync.Mutex

	barbers      map[uint]*models.Barber
	services     map[string]*models.Service
	slots        map[string]map[string]struct{} // barberID|date -> times
	appointments map[uint]*models.Appointment

	nextID uint
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		barbers:      make(map[uint]*models.Barber),
		services:     make(map[string]*models.Service),
		slots:        make(map[string]map[string]struct{}),
		appointments: make(map[uint]*models.Appointment),
	}
}

func slotKey(barberID uint, date string) string {
	return fmt.Sprintf("%d|%s", barberID, date)
}

func (m *memoryRepo) addBarber(name string) *models.Barber {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	b := &models.Barber{ID: m.nextID, Name: name}
	m.barbers[b.ID] = b
	return b
}

func (m *memoryRepo) addService(name string, price float64) *models.Service {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	s := &models.Service{ID: m.nextID, Name: name, Price: price}
	m.services[s.Name] = s
	return s
}

func (m *memoryRepo) setSlots(barberID uint, date string, times ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := make(map[string]struct{}, len(times))
	for _, t := range times {
		set[t] = struct{}{}
	}
	m.slots[slotKey(barberID, date)] = set
}

// -------- domain.Repository --------

func (m *memoryRepo) CountFutureAppointmentsByService(
	_ context.Context,
	name string,
	from string,
) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, ap := range m.appointments {
		if ap.ServiceName == name && ap.Date >= from {
			count++
		}
	}
	return count, nil
}

func (m *memoryRepo) DeleteService(
	_ context.Context,
	svc *models.Service,
	cascade bool,
	from string,
) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []models.Appointment
	if cascade {
		for id, ap := range m.appointments {
			if ap.ServiceName == svc.Name && ap.Date >= from {
				removed = append(removed, *ap)
				delete(m.appointments, id)
			}
		}
	}

	delete(m.services, svc.Name)
	return removed, nil
}

func (m *memoryRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.barbers[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return b, nil
}

func (m *memoryRepo) GetBarberByName(_ context.Context, name string) (*models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.barbers {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (m *memoryRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (m *memoryRepo) GetServiceByName(_ context.Context, name string) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.services[name]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return s, nil
}

func (m *memoryRepo) GetSlots(_ context.Context, barberID uint, date string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return sortedTimes(m.slots[slotKey(barberID, date)]), nil
}

func (m *memoryRepo) ReplaceSlots(_ context.Context, barberID uint, date string, times []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := make(map[string]struct{}, len(times))
	for _, t := range times {
		set[t] = struct{}{}
	}
	m.slots[slotKey(barberID, date)] = set
	return nil
}

func (m *memoryRepo) ToggleSlot(_ context.Context, barberID uint, date, timeOfDay string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := slotKey(barberID, date)
	set, ok := m.slots[key]
	if !ok {
		set = make(map[string]struct{})
		m.slots[key] = set
	}

	if _, present := set[timeOfDay]; present {
		delete(set, timeOfDay)
		return false, nil
	}
	set[timeOfDay] = struct{}{}
	return true, nil
}

func (m *memoryRepo) ListAvailableDates(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]struct{})
	for key, set := range m.slots {
		if len(set) == 0 {
			continue
		}
		parts := strings.SplitN(key, "|", 2)
		seen[parts[1]] = struct{}{}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

func (m *memoryRepo) DeleteSlotsBefore(_ context.Context, date string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for key, set := range m.slots {
		parts := strings.SplitN(key, "|", 2)
		if parts[1] < date {
			removed += int64(len(set))
			delete(m.slots, key)
		}
	}
	return removed, nil
}

func (m *memoryRepo) BookedTimes(_ context.Context, barberID uint, date string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var times []string
	for _, ap := range m.appointments {
		if ap.BarberID == barberID && ap.Date == date {
			times = append(times, ap.Time)
		}
	}
	sort.Strings(times)
	return times, nil
}

func (m *memoryRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := m.slots[slotKey(ap.BarberID, ap.Date)]
	if _, configured := set[ap.Time]; !configured {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	for _, existing := range m.appointments {
		if existing.BarberID == ap.BarberID && existing.Date == ap.Date && existing.Time == ap.Time {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		if existing.BookingCode == ap.BookingCode {
			return domain.ErrBookingCodeTaken
		}
	}

	m.nextID++
	ap.ID = m.nextID
	clone := *ap
	m.appointments[ap.ID] = &clone
	return nil
}

func (m *memoryRepo) DeleteAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ap, ok := m.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	delete(m.appointments, id)
	return ap, nil
}

func (m *memoryRepo) ListAppointments(_ context.Context, f domain.AppointmentFilters) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Appointment
	for _, ap := range m.appointments {
		if f.Name != "" {
			needle := strings.ToLower(f.Name)
			if !strings.Contains(strings.ToLower(ap.ClientName), needle) &&
				!strings.Contains(strings.ToLower(ap.LastName), needle) {
				continue
			}
		}
		if f.Phone != "" && !strings.Contains(ap.Phone, f.Phone) {
			continue
		}
		if f.Date != "" && ap.Date != f.Date {
			continue
		}
		if f.Service != "" && ap.ServiceName != f.Service {
			continue
		}
		out = append(out, *ap)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (m *memoryRepo) GetAppointmentByCode(_ context.Context, code string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ap := range m.appointments {
		if ap.BookingCode == code {
			return ap, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func sortedTimes(set map[string]struct{}) []string {
	times := make([]string, 0, len(set))
	for t := range set {
		times = append(times, t)
	}
	sort.Strings(times)
	return times
}

// Compile-time check
var _ domain.Repository = (*memoryRepo)(nil)
