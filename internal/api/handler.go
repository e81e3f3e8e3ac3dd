package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/distill-api/internal/api/shared"
	"github.com/phrazzld/distill-api/internal/platform/logger"
	"github.com/phrazzld/distill-api/internal/schema"
	"github.com/phrazzld/distill-api/internal/service"
)

// Extractor is the service surface the handlers depend on.
type Extractor interface {
	Model() string
	Summarize(ctx context.Context, text string) (*service.Result, error)
	ActionItems(ctx context.Context, text string) (*service.Result, error)
	Run(ctx context.Context, mode schema.Mode, text string) (*service.Result, error)
}

// Handler serves the extraction endpoints.
type Handler struct {
	extractor Extractor
	logger    *slog.Logger
}

// NewHandler creates a Handler. A nil logger falls back to slog.Default.
func NewHandler(extractor Extractor, logger *slog.Logger) *Handler {
	if extractor == nil {
		panic("extractor cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		extractor: extractor,
		logger:    logger.With(slog.String("component", "api_handler")),
	}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{OK: true, Model: h.extractor.Model()})
}

// Extract handles POST /extract. Every failure is reported as 500.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.extractor.Summarize(r.Context(), req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{OK: true, Data: res.Data})
}

// ActionItems handles POST /action-items. Every failure, including an empty
// list, is reported as 500.
func (h *Handler) ActionItems(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.extractor.ActionItems(r.Context(), req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{OK: true, Data: res.Data})
}

// Extractor handles POST /extractor. The mode is checked before the model is
// called; failures map to 400, 422, or 500.
func (h *Handler) Extractor(w http.ResponseWriter, r *http.Request) {
	var req ExtractorRequest
	if !h.decode(w, r, &req) {
		return
	}

	mode, err := schema.ParseMode(req.Mode)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Debug("running extraction", slog.String("mode", string(mode)))

	res, err := h.extractor.Run(r.Context(), mode, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{OK: true, Data: res.Data})
}

// decode parses and validates the body into v, writing a 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
