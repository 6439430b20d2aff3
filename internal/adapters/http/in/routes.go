// Package in implements the REST/JSON transport surface: one Fiber
// handler struct per aggregate plus the shared x-api-key auth
// middleware and error-to-status mapping.
package in

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	swagger "github.com/swaggo/fiber-swagger"
	"go.opentelemetry.io/otel/trace"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/command"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/services/query"
	httpcommon "github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mhttp"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
)

// NewRouter builds the Fiber app and registers the full REST route
// surface.
func NewRouter(cmd *command.UseCase, qry *query.UseCase, logger mlog.Logger, tracer trace.Tracer) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(cors.New())
	app.Use(httpcommon.WithContext(logger, tracer))
	app.Use(httpcommon.WithLogging())

	app.Get("/health", httpcommon.Ping)
	app.Get("/swagger/*", swagger.WrapHandler)

	system := &SystemHandler{Command: cmd}
	app.Post("/v1/system/init", system.Init)

	authorize := Authorize(cmd)

	users := &UserHandler{Command: cmd, Query: qry}
	u := app.Group("/v1/users", authorize)
	u.Post("/", users.Create)
	u.Get("/:id", users.Get)
	u.Put("/:id", users.Update)
	u.Delete("/:id", users.Delete)

	apikeys := &ApiKeyHandler{Command: cmd, Query: qry}
	k := app.Group("/v1/apikeys", authorize)
	k.Post("/", apikeys.Create)
	k.Get("/", apikeys.List)
	k.Get("/:id", apikeys.Get)
	k.Put("/:id", apikeys.Update)
	k.Delete("/:id", apikeys.Delete)

	embedders := &EmbedderHandler{Command: cmd, Query: qry}
	e := app.Group("/v1/embedders", authorize)
	e.Post("/", embedders.Create)
	e.Get("/", embedders.List)
	e.Get("/:id", embedders.Get)
	e.Put("/:id", embedders.Update)
	e.Delete("/:id", embedders.Delete)

	spaces := &SpaceHandler{Command: cmd, Query: qry}
	s := app.Group("/v1/spaces", authorize)
	s.Post("/", spaces.Create)
	s.Get("/", spaces.List)
	s.Get("/:id", spaces.Get)
	s.Put("/:id", spaces.Update)
	s.Delete("/:id", spaces.Delete)

	memories := &MemoryHandler{Command: cmd, Query: qry}
	m := app.Group("/v1/memories", authorize)
	m.Post("/", memories.Create)
	m.Get("/:id", memories.Get)
	m.Delete("/:id", memories.Delete)

	s.Get("/:spaceId/memories", memories.ListForSpace)

	return app
}
