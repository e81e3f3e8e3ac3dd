package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/distill-api/internal/api"
	apiMiddleware "github.com/phrazzld/distill-api/internal/api/middleware"
)

// setupRouter creates the router with middleware and the extraction routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	// Bounds generation retries together with the rest of the request.
	r.Use(middleware.Timeout(app.config.Server.RequestTimeout()))

	handler := api.NewHandler(app.extractor, app.logger)

	r.Get("/health", handler.Health)
	r.Post("/extract", handler.Extract)
	r.Post("/action-items", handler.ActionItems)
	r.Post("/extractor", handler.Extractor)

	return r
}
