package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
)

func TestDeleteService(t *testing.T) {
	ctx := context.Background()

	// dates far in the future so they count as pending
	const day = "2999-06-01"

	setup := func() (*memoryRepo, uint) {
		repo := newMemoryRepo()
		barber := repo.addBarber("Juan")
		svc := repo.addService("Corte", 150)
		repo.setSlots(barber.ID, day, "09:00", "10:00")

		_, err := NewCreateAppointment(repo, nil, nil).Execute(ctx, CreateAppointmentInput{
			BarberID: barber.ID, Date: day, Time: "09:00",
			Service: "Corte", ClientName: "Ana", Phone: "5511111111",
		})
		require.NoError(t, err)
		return repo, svc.ID
	}

	t.Run("block policy refuses with pending appointments", func(t *testing.T) {
		repo, svcID := setup()

		uc := NewDeleteService(repo, nil, nil, domain.DeleteBlock)
		_, err := uc.Execute(ctx, nil, svcID)
		requireBusiness(t, err, httperr.CodeConflict)

		// service survives the refusal
		_, err = repo.GetServiceByName(ctx, "Corte")
		require.NoError(t, err)
	})

	t.Run("block policy deletes when nothing is pending", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := repo.addService("Barba", 80)

		uc := NewDeleteService(repo, nil, nil, domain.DeleteBlock)
		deleted, err := uc.Execute(ctx, nil, svc.ID)
		require.NoError(t, err)
		assert.Equal(t, "Barba", deleted.Name)

		_, err = repo.GetServiceByName(ctx, "Barba")
		requireBusiness(t, err, httperr.CodeNotFound)
	})

	t.Run("cascade removes pending appointments", func(t *testing.T) {
		repo, svcID := setup()

		uc := NewDeleteService(repo, nil, nil, domain.DeleteCascade)
		_, err := uc.Execute(ctx, nil, svcID)
		require.NoError(t, err)

		aps, err := NewListAppointments(repo).Execute(ctx, domain.AppointmentFilters{})
		require.NoError(t, err)
		assert.Empty(t, aps)
	})

	t.Run("cascade frees the slots through the cache", func(t *testing.T) {
		repo, svcID := setup()
		barber, err := repo.GetBarberByName(ctx, "Juan")
		require.NoError(t, err)

		cache := newFakeCache()
		resolver := NewAvailableTimes(repo, cache)

		// prime the cache while 09:00 is booked
		times, err := resolver.Execute(ctx, barber.ID, day)
		require.NoError(t, err)
		require.Equal(t, []string{"10:00"}, times)

		uc := NewDeleteService(repo, cache, nil, domain.DeleteCascade)
		_, err = uc.Execute(ctx, nil, svcID)
		require.NoError(t, err)

		// the freed time is visible right away, not after a TTL
		times, err = resolver.Execute(ctx, barber.ID, day)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:00"}, times)
	})

	t.Run("unknown service", func(t *testing.T) {
		repo := newMemoryRepo()

		uc := NewDeleteService(repo, nil, nil, domain.DeleteBlock)
		_, err := uc.Execute(ctx, nil, 999)
		requireBusiness(t, err, httperr.CodeNotFound)
	})
}
