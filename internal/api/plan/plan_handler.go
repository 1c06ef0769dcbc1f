package plan

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/cityscout-app/cityscout/internal/api"
	"github.com/cityscout-app/cityscout/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewPlanHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GetRecommendations handles POST /plan/recommendations - weather-aware
// pre-trip tips for the planning screen.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlanHandler").Start(r.Context(), "GetRecommendations")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetRecommendations"))

	var req types.PlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid plan payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Coords == nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "coords required")
		return
	}

	tips, err := h.service.GetRecommendations(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to build recommendations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Recommendations failed")
		api.ErrorResponse(w, r, http.StatusBadGateway, "Failed to build recommendations")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, tips)
	span.SetStatus(codes.Ok, "Recommendations returned")
}
