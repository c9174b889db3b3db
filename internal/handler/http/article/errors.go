package article

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"williampedia/internal/domain/entity"
	"williampedia/internal/handler/http/respond"
	"williampedia/internal/observability/logging"
	artUC "williampedia/internal/usecase/article"
)

// writeError maps use case and domain errors onto HTTP statuses.
// More specific sentinels are checked before the domain class they wrap.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *respond.AppError
	switch {
	case errors.Is(err, entity.ErrNotFound):
		appErr = respond.NewAppError(http.StatusNotFound, "Article not found", err)
	case errors.Is(err, artUC.ErrQueryTooLong):
		appErr = respond.NewAppError(http.StatusBadRequest, "Search query too long", err)
	case errors.Is(err, artUC.ErrInvalidArticleID):
		appErr = respond.NewAppError(http.StatusBadRequest, "Invalid article id", err)
	case errors.Is(err, artUC.ErrInvalidVoteDirection):
		appErr = respond.NewAppError(http.StatusBadRequest, `Direction must be "up" or "down"`, err)
	case errors.Is(err, entity.ErrInvalidInput), errors.Is(err, entity.ErrValidationFailed):
		appErr = respond.NewAppError(http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, entity.ErrConflict):
		appErr = respond.NewAppError(http.StatusConflict, "Article already exists", err)
	case errors.Is(err, entity.ErrStoreUnavailable):
		appErr = respond.NewAppError(http.StatusInternalServerError, "Database unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		appErr = respond.NewAppError(http.StatusGatewayTimeout, "Request timed out", err)
	}

	if appErr != nil && appErr.Code < 500 {
		logging.WithRequestID(r.Context(), logger).Debug("request rejected",
			slog.Int("status", appErr.Code),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	if appErr != nil {
		respond.SafeError(w, appErr)
		return
	}
	respond.SafeError(w, err)
}
