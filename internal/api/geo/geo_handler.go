package geo

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

func NewGeoHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// SearchCities handles GET /geo/search?q= - city lookup for the search screen.
func (h *Handler) SearchCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GeoHandler").Start(r.Context(), "SearchCities")
	defer span.End()

	l := h.logger.With(slog.String("method", "SearchCities"))

	query := api.TrimmedQueryParam(r, "q")
	if query == "" {
		api.WriteJSONResponse(w, r, http.StatusOK, []types.CityMatch{})
		return
	}

	matches, err := h.service.SearchCities(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "City search failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "City search failed")
		api.ErrorResponse(w, r, http.StatusBadGateway, "City search failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, matches)
	span.SetStatus(codes.Ok, "Cities returned")
}

type checkLocationRequest struct {
	City *types.Coordinates `json:"city"`
	User *types.Coordinates `json:"user"`
}

type checkLocationResponse struct {
	OnLocation bool    `json:"onLocation"`
	DistanceKm float64 `json:"distanceKm"`
}

// CheckLocation handles POST /geo/check-location - reports whether the user
// is within the city radius.
func (h *Handler) CheckLocation(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GeoHandler").Start(r.Context(), "CheckLocation")
	defer span.End()

	l := h.logger.With(slog.String("method", "CheckLocation"))

	var req checkLocationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid check-location payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.City == nil || req.User == nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "city and user coordinates required")
		return
	}

	onLocation, distanceKm := h.service.CheckLocation(*req.City, *req.User)
	api.WriteJSONResponse(w, r, http.StatusOK, checkLocationResponse{
		OnLocation: onLocation,
		DistanceKm: distanceKm,
	})
	span.SetStatus(codes.Ok, "Location checked")
}
