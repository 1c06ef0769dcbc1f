package profile

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	appMiddleware "github.com/cityscout-app/cityscout/app/middleware"
	"github.com/cityscout-app/cityscout/internal/api"
	"github.com/cityscout-app/cityscout/internal/types"
)

type Handler struct {
	logger *slog.Logger
	repo   Repository
}

func NewProfileHandler(repo Repository, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		repo:   repo,
	}
}

// GetProfile handles GET /profile - returns the user's saved preferences,
// or null when the profile was never set.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "GetProfile")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetProfile"))

	userID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.repo.GetByUser(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Profile fetch failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, profile)
	span.SetStatus(codes.Ok, "Profile returned")
}

// UpsertProfile handles POST /profile - creates or updates preferences.
func (h *Handler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "UpsertProfile")
	defer span.End()

	l := h.logger.With(slog.String("method", "UpsertProfile"))

	userID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var params types.UpsertProfileParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Invalid profile payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.repo.Upsert(ctx, userID, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to upsert profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Profile upsert failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, profile)
	span.SetStatus(codes.Ok, "Profile saved")
}
