package route

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	appMiddleware "github.com/cityscout-app/cityscout/app/middleware"
	"github.com/cityscout-app/cityscout/app/observability/metrics"
	"github.com/cityscout-app/cityscout/internal/api"
	"github.com/cityscout-app/cityscout/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
	metrics *metrics.AppMetrics
}

func NewRouteHandler(service Service, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		metrics: appMetrics,
	}
}

// GenerateRoute handles POST /routes - runs the generation pipeline and
// returns the saved itinerary.
func (h *Handler) GenerateRoute(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RouteHandler").Start(r.Context(), "GenerateRoute")
	defer span.End()

	l := h.logger.With(slog.String("method", "GenerateRoute"))
	start := time.Now()

	userID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		span.SetStatus(codes.Error, "Missing user id")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid route request payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.service.GenerateRoute(ctx, userID, req)
	h.metrics.RouteRequestsTotal.Add(ctx, 1)
	h.metrics.RouteDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Route generation failed")
		switch {
		case errors.Is(err, ErrInvalidRequest):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrDraftParse):
			h.metrics.DraftFailuresTotal.Add(ctx, 1)
			api.ErrorResponse(w, r, http.StatusBadGateway, "Route generation returned an unreadable itinerary, please try again")
		case errors.Is(err, ErrDraftUpstream):
			h.metrics.DraftFailuresTotal.Add(ctx, 1)
			api.ErrorResponse(w, r, http.StatusBadGateway, "Route generation backend is unavailable")
		case errors.Is(err, ErrPersistence):
			h.metrics.PersistenceFailuresTotal.Add(ctx, 1)
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Itinerary was generated but could not be saved")
		default:
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Route generation failed")
		}
		return
	}

	var misses int64
	for i := range saved.Route.Places {
		if saved.Route.Places[i].Coords == nil {
			misses++
		}
	}
	if misses > 0 {
		h.metrics.GeocodeMissesTotal.Add(ctx, misses)
	}

	api.WriteJSONResponse(w, r, http.StatusOK, saved)
	span.SetStatus(codes.Ok, "Route generated")
}

// GetRouteHistory handles GET /routes - returns the user's saved routes,
// newest first.
func (h *Handler) GetRouteHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RouteHandler").Start(r.Context(), "GetRouteHistory")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetRouteHistory"))

	userID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		span.SetStatus(codes.Error, "Missing user id")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	routes, err := h.service.GetRouteHistory(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch route history", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "History fetch failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch route history")
		return
	}
	if routes == nil {
		routes = []types.SavedRoute{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, routes)
	span.SetStatus(codes.Ok, "History returned")
}
