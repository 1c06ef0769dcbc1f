package auth

import (
	"errors"
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

func NewAuthHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

type verifyRequest struct {
	InitData string `json:"initData"`
}

type verifyResponse struct {
	OK    bool        `json:"ok"`
	Token string      `json:"token"`
	User  *types.User `json:"user"`
}

// Verify handles POST /auth/verify - validates Telegram initData and returns
// an access token. The client calls this right after the WebApp opens.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Verify")
	defer span.End()

	l := h.logger.With(slog.String("method", "Verify"))

	var req verifyRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid verify payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.InitData == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "initData required")
		return
	}

	token, user, err := h.service.VerifyInitData(ctx, req.InitData)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrInvalidInitData) {
			l.WarnContext(ctx, "initData verification failed", slog.Any("error", err))
			span.SetStatus(codes.Error, "initData verification failed")
			api.ErrorResponse(w, r, http.StatusUnauthorized, "initData verification failed")
			return
		}
		l.ErrorContext(ctx, "Failed to establish user", slog.Any("error", err))
		span.SetStatus(codes.Error, "User upsert failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to establish user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, verifyResponse{
		OK:    true,
		Token: token,
		User:  user,
	})
	span.SetStatus(codes.Ok, "User verified")
}
