package favorites

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

func NewFavoritesHandler(repo Repository, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		repo:   repo,
	}
}

// ListFavorites handles GET /favorites?city= - returns the user's saved
// places, newest first.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("FavoritesHandler").Start(r.Context(), "ListFavorites")
	defer span.End()

	l := h.logger.With(slog.String("method", "ListFavorites"))

	userID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	city := api.TrimmedQueryParam(r, "city")
	favorites, err := h.repo.ListByUser(ctx, userID, city)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list favorites", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Favorites fetch failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}
	if favorites == nil {
		favorites = []types.Favorite{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, favorites)
	span.SetStatus(codes.Ok, "Favorites returned")
}

// CreateFavorite handles POST /favorites - saves a place. Coordinates are
// optional so a place can be saved even if geocoding failed for it.
func (h *Handler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("FavoritesHandler").Start(r.Context(), "CreateFavorite")
	defer span.End()

	l := h.logger.With(slog.String("method", "CreateFavorite"))

	userID, ok := appMiddleware.GetUserIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var params types.CreateFavoriteParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Invalid favorite payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if params.City == "" || params.Name == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "city and name are required")
		return
	}

	fav, err := h.repo.Create(ctx, userID, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create favorite", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Favorite insert failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to save favorite")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, fav)
	span.SetStatus(codes.Ok, "Favorite saved")
}
