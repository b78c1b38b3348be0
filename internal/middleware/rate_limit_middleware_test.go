package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"portfolio-tracker/internal/config"
)

func setupRateLimitRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewRateLimitMiddleware(cfg).Limit())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimit(t *testing.T) {
	t.Run("requests over the burst are rejected", func(t *testing.T) {
		router := setupRateLimitRouter(config.RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 1,
			Burst:             2,
		})

		statuses := []int{}
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			router.ServeHTTP(w, req)
			statuses = append(statuses, w.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
	})

	t.Run("disabled limiter passes everything", func(t *testing.T) {
		router := setupRateLimitRouter(config.RateLimitConfig{Enabled: false})

		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}
