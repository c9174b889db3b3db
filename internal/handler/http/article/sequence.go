package article

import (
	"log/slog"
	"net/http"

	"williampedia/internal/handler/http/pathutil"
	"williampedia/internal/handler/http/respond"
	artUC "williampedia/internal/usecase/article"
)

type SequenceHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP 前後の記事
// @Summary      前後の記事
// @Description  作成日時順で前と次の記事を返します。端では null になります
// @Tags         articles
// @Produce      json
// @Param        slug path string true "記事スラッグ"
// @Success      200 {object} SequenceResponse "前後の記事"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid slug"
// @Failure      404 {object} respond.ErrorBody "Not found - article not found"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /api/article-sequence/{slug} [get]
func (h SequenceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug, err := pathutil.Param(r, "slug")
	if err != nil {
		respond.SafeError(w, respond.NewAppError(http.StatusBadRequest, "Invalid slug", err))
		return
	}

	res, err := h.Svc.Sequence(r.Context(), slug)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, SequenceResponse{
		Current:  toRefDTO(res.Current),
		Previous: toOptionalRefDTO(res.Previous),
		Next:     toOptionalRefDTO(res.Next),
	})
}
