package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/chentesbarber/booking-api/internal/config"
	"github.com/chentesbarber/booking-api/internal/middleware"
)

func TestCatalogHandlerRejectsBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewCatalogHandler(nil, &config.Config{DeletePolicy: config.DeletePolicyBlock}, nil, nil)

	cases := []struct {
		name    string
		handler gin.HandlerFunc
	}{
		{"update barber", h.UpdateBarber},
		{"delete barber", h.DeleteBarber},
		{"update service", h.UpdateService},
		{"delete service", h.DeleteService},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
			c.Params = gin.Params{{Key: "id", Value: "abc"}}
			c.Set(middleware.ContextUserID, uint(1))

			// a non-numeric id must be rejected before any lookup
			tc.handler(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "invalid_id")
		})
	}
}
