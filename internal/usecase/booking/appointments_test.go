package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
)

func TestListAppointments(t *testing.T) {
	ctx := context.Background()

	repo := newMemoryRepo()
	barber := repo.addBarber("Juan")
	repo.addService("Corte", 150)
	repo.addService("Barba", 80)
	repo.setSlots(barber.ID, "2024-06-01", "09:00", "10:00")
	repo.setSlots(barber.ID, "2024-06-02", "09:00")

	create := NewCreateAppointment(repo, nil, nil)
	for _, in := range []CreateAppointmentInput{
		{BarberID: barber.ID, Date: "2024-06-01", Time: "10:00", Service: "Corte", ClientName: "Ana", LastName: "García", Phone: "5511111111"},
		{BarberID: barber.ID, Date: "2024-06-01", Time: "09:00", Service: "Barba", ClientName: "Luis", LastName: "Pérez", Phone: "5522222222"},
		{BarberID: barber.ID, Date: "2024-06-02", Time: "09:00", Service: "Corte", ClientName: "Carmen", LastName: "Ana López", Phone: "5533333333"},
	} {
		_, err := create.Execute(ctx, in)
		require.NoError(t, err)
	}

	uc := NewListAppointments(repo)

	t.Run("no filters returns all, date then time", func(t *testing.T) {
		out, err := uc.Execute(ctx, domain.AppointmentFilters{})
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "Luis", out[0].ClientName)
		assert.Equal(t, "Ana", out[1].ClientName)
		assert.Equal(t, "Carmen", out[2].ClientName)
	})

	t.Run("name matches first or last name, case-insensitive", func(t *testing.T) {
		out, err := uc.Execute(ctx, domain.AppointmentFilters{Name: "ana"})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		out, err := uc.Execute(ctx, domain.AppointmentFilters{
			Service: "Corte",
			Date:    "2024-06-01",
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Ana", out[0].ClientName)
	})

	t.Run("bad date filter", func(t *testing.T) {
		_, err := uc.Execute(ctx, domain.AppointmentFilters{Date: "junio"})
		requireBusiness(t, err, httperr.CodeValidation)
	})
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()

	repo := newMemoryRepo()
	barber := repo.addBarber("Juan")
	repo.addService("Corte", 150)
	repo.setSlots(barber.ID, "2024-06-01", "09:00")

	ap, err := NewCreateAppointment(repo, nil, nil).Execute(ctx, CreateAppointmentInput{
		BarberID: barber.ID, Date: "2024-06-01", Time: "09:00",
		Service: "Corte", ClientName: "Ana", Phone: "5511111111",
	})
	require.NoError(t, err)

	uc := NewDeleteAppointment(repo, nil, nil)

	deleted, err := uc.Execute(ctx, ap.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, ap.ID, deleted.ID)

	_, err = uc.Execute(ctx, ap.ID, nil)
	requireBusiness(t, err, httperr.CodeNotFound)
}

func TestGetAppointmentByCode(t *testing.T) {
	ctx := context.Background()

	repo := newMemoryRepo()
	barber := repo.addBarber("Juan")
	repo.addService("Corte", 150)
	repo.setSlots(barber.ID, "2024-06-01", "09:00")

	created, err := NewCreateAppointment(repo, nil, nil).Execute(ctx, CreateAppointmentInput{
		BarberID: barber.ID, Date: "2024-06-01", Time: "09:00",
		Service: "Corte", ClientName: "Ana", Phone: "5511111111",
	})
	require.NoError(t, err)
	require.Len(t, created.BookingCode, 8)

	// the code handed back at creation finds the appointment again
	found, err := repo.GetAppointmentByCode(ctx, created.BookingCode)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Ana", found.ClientName)

	_, err = repo.GetAppointmentByCode(ctx, "ZZZZ0000")
	requireBusiness(t, err, httperr.CodeNotFound)
}

// End-to-end pass through the resolver and the ledger: booking consumes
// a time, deleting the appointment releases it.
func TestSlotLifecycle(t *testing.T) {
	ctx := context.Background()

	repo := newMemoryRepo()
	barber := repo.addBarber("Juan")
	repo.addService("Corte", 150)
	repo.setSlots(barber.ID, "2024-06-01", "09:00", "10:00")

	resolver := NewAvailableTimes(repo, nil)

	times, err := resolver.Execute(ctx, barber.ID, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, times)

	ap, err := NewCreateAppointment(repo, nil, nil).Execute(ctx, CreateAppointmentInput{
		BarberID: barber.ID, Date: "2024-06-01", Time: "09:00",
		Service: "Corte", ClientName: "Ana", Phone: "5511111111",
	})
	require.NoError(t, err)

	times, err = resolver.Execute(ctx, barber.ID, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)

	_, err = NewDeleteAppointment(repo, nil, nil).Execute(ctx, ap.ID, nil)
	require.NoError(t, err)

	times, err = resolver.Execute(ctx, barber.ID, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, times)
}
