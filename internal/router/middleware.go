package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/centsible/backend/internal/auth"
	"github.com/centsible/backend/internal/httperror"
	"github.com/centsible/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// URLMiddleware puts the API base URL into the request context so that
// controllers can build resource links from it.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url.String())
		c.Next()
	}
}

// AuthMiddleware resolves the Bearer token to a user and puts the user ID
// into the request context. Requests without a valid token for an active
// user are rejected.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		header := c.GetHeader("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = parts[1]
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(auth.ErrNoToken))
			return
		}

		userID, err := auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(err))
			return
		}

		var user models.User
		err = models.DB.First(&user, userID).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(auth.ErrInvalidToken))
			return
		}

		if !user.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperror.New(models.ErrUserInactive))
			return
		}

		c.Set(string(models.DBContextUser), user.ID)
		c.Next()
	}
}

var registerMetricsOnce sync.Once

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(requestCount, requestDuration)
	})

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// Replace all URL parameters with their name to reduce cardinality
		// https://prometheus.io/docs/practices/naming/#labels
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}
