package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/models"
)

type noopGateway struct{}

func (noopGateway) AvailableTimes(context.Context, uint, string) ([]string, error) {
	return nil, nil
}

func (noopGateway) BarberByName(context.Context, string) (*models.Barber, error) {
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (noopGateway) Book(context.Context, domain.BookingRequest) (*models.Appointment, error) {
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func TestStoreDo(t *testing.T) {
	s := NewStore(time.Minute)
	id := s.Create(noopGateway{})

	err := s.Do(id, func(wf *domain.Workflow) error {
		assert.Equal(t, domain.StateSelectingDate, wf.State())
		return wf.SelectDate("2024-06-01")
	})
	require.NoError(t, err)

	// state survives between calls
	err = s.Do(id, func(wf *domain.Workflow) error {
		assert.Equal(t, domain.StateSelectingBarber, wf.State())
		return nil
	})
	require.NoError(t, err)
}

func TestStoreUnknownSession(t *testing.T) {
	s := NewStore(time.Minute)

	err := s.Do("no-such-id", func(*domain.Workflow) error { return nil })
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestStoreDelete(t *testing.T) {
	s := NewStore(time.Minute)
	id := s.Create(noopGateway{})
	s.Delete(id)

	err := s.Do(id, func(*domain.Workflow) error { return nil })
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore(time.Minute)

	current := time.Now()
	s.now = func() time.Time { return current }

	id := s.Create(noopGateway{})

	// activity extends the deadline
	current = current.Add(50 * time.Second)
	require.NoError(t, s.Do(id, func(*domain.Workflow) error { return nil }))

	current = current.Add(50 * time.Second)
	require.NoError(t, s.Do(id, func(*domain.Workflow) error { return nil }))

	// idle past the TTL expires it
	current = current.Add(2 * time.Minute)
	err := s.Do(id, func(*domain.Workflow) error { return nil })
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestStorePrune(t *testing.T) {
	s := NewStore(time.Minute)

	current := time.Now()
	s.now = func() time.Time { return current }

	s.Create(noopGateway{})
	s.Create(noopGateway{})

	current = current.Add(2 * time.Minute)
	s.Create(noopGateway{}) // triggers prune of the two expired entries

	assert.Len(t, s.sessions, 1)
}
