// Package mhttp holds the small set of Fiber handlers and middleware
// shared across every REST route: a health probe, request logging, and
// the logger/tracer context-injection the rest of the core expects to
// find on ctx.
package mhttp

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/motel"
)

// Ping answers the health check every deployment's readiness probe
// polls.
func Ping(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// WithContext installs logger and tracer on each request's
// UserContext so downstream command/query use cases can retrieve them
// via mlog.NewLoggerFromContext/motel.NewTracerFromContext without the
// handler threading them through explicitly.
func WithContext(logger mlog.Logger, tracer trace.Tracer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := mlog.NewContext(c.UserContext(), logger)
		ctx = motel.ContextWithTracer(ctx, tracer)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// WithLogging logs one line per request with method, path, status, and
// duration.
func WithLogging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		logger := mlog.NewLoggerFromContext(c.UserContext())
		logger.Infof("%s %s -> %d (%s)", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))

		return err
	}
}
