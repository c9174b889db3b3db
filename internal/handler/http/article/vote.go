package article

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"williampedia/internal/handler/http/pathutil"
	"williampedia/internal/handler/http/respond"
	"williampedia/internal/observability/logging"
	artUC "williampedia/internal/usecase/article"
)

type VoteHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP 投票
// @Summary      投票
// @Description  記事の up / down カウンタをアトミックに1増やします。重複排除や認証は行いません
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        slug path string true "記事スラッグ"
// @Param        vote body VoteRequest true "投票方向"
// @Success      200 {object} VoteResponse "投票結果"
// @Failure      400 {object} respond.ErrorBody "Bad request - malformed body or direction"
// @Failure      404 {object} respond.ErrorBody "Not found - article not found"
// @Failure      429 {object} respond.ErrorBody "Too many requests - rate limit exceeded" headers(Retry-After=integer)
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /api/article/{slug}/vote [post]
func (h VoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug, err := pathutil.Param(r, "slug")
	if err != nil {
		respond.SafeError(w, respond.NewAppError(http.StatusBadRequest, "Invalid slug", err))
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, respond.NewAppError(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	dir, err := h.Svc.Vote(r.Context(), slug, req.Direction)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	logging.WithRequestID(r.Context(), h.Logger).Info("vote recorded",
		slog.String("slug", slug),
		slog.String("direction", string(dir)))
	respond.JSON(w, http.StatusOK, VoteResponse{Slug: slug, Direction: string(dir), OK: true})
}
