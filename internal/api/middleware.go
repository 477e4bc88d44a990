package api

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

var localNetworkOrigin = regexp.MustCompile(`^http://192\.168\.1\.\d+(:\d+)?$`)

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			h.logger.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func (h *Handler) corsOptions() cors.Options {
	return cors.Options{
		AllowOriginFunc:  h.allowOrigin,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin", "X-CSRF-TOKEN"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
}

func (h *Handler) allowOrigin(_ *http.Request, origin string) bool {
	if !strings.EqualFold(h.opts.Environment, "production") {
		return true
	}
	for _, allowed := range h.opts.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return localNetworkOrigin.MatchString(origin)
}

// rateLimiter returns a per-IP limiter backed by an in-memory store, or nil when disabled.
func (h *Handler) rateLimiter() func(http.Handler) http.Handler {
	if h.opts.RateLimit == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(h.opts.RateLimit)
	if err != nil {
		h.logger.WithField("rate", h.opts.RateLimit).Warn("invalid RATE_LIMIT, rate limiting disabled")
		return nil
	}
	instance := limiter.New(memory.NewStore(), rate)
	return stdlib.NewMiddleware(instance).Handler
}
