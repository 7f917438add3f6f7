package booking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chentesbarber/booking-api/internal/httperr"
)

func requireBusiness(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, httperr.IsBusiness(err, code),
		"expected %s business error, got %v", code, err)
}
