package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_api_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	AppointmentsBooked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_api_appointments_booked_total",
			Help: "Appointments successfully written to the ledger.",
		},
	)

	SlotConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_api_slot_conflicts_total",
			Help: "Bookings rejected because the slot was already taken.",
		},
	)
)

func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		HTTPRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
