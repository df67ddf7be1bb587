// Package middleware contains echo middleware shared by every HTTP delivery.
package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"nutrilens/config"
	deliverycontext "nutrilens/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestRecorder observes finished requests.
type RequestRecorder interface {
	RecordRequest(method, route string, status int, d time.Duration)
}

// LoggerMiddleware controllable logging middleware
type LoggerMiddleware struct {
	logger   *slog.Logger
	recorder RequestRecorder
	debug    bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config, recorder RequestRecorder) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger:   logger,
		recorder: recorder,
		debug:    config.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		// Execute next handler
		err := next(c)

		// The error handler has not run yet, so render the error now to record its status
		if err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		if m.recorder != nil {
			m.recorder.RecordRequest(c.Request().Method, routeLabel(c), status, time.Since(start))
		}
		if m.debug || status >= 500 {
			m.logRequest(c, start, err)
		}

		return nil
	}
}

// routeLabel keeps metric cardinality bounded by using the route template.
func routeLabel(c echo.Context) string {
	if path := c.Path(); path != "" {
		return path
	}

	return "unmatched"
}

// logRequest logs request details
func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	// Calculate latency
	latency := time.Since(start)

	// Prepare log fields
	fields := []slog.Attr{
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.String("route", routeLabel(c)),
		slog.Int("status", res.Status),
		slog.Duration("latency", latency),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
		slog.String("bytes_out", strconv.FormatInt(res.Size, 10)),
	}

	// If there are query parameters, log them too
	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}

	// If there's an error, log error details
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	// Choose log level based on status code
	logLevel := slog.LevelInfo
	if res.Status >= 400 {
		logLevel = slog.LevelWarn
	}
	if res.Status >= 500 {
		logLevel = slog.LevelError
	}

	// Log the request
	m.logger.LogAttrs(context.Background(), logLevel, "HTTP Request", fields...)
}
