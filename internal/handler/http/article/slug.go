package article

import (
	"log/slog"
	"net/http"

	"williampedia/internal/handler/http/pathutil"
	"williampedia/internal/handler/http/respond"
	artUC "williampedia/internal/usecase/article"
)

type SlugHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP IDからスラッグ取得
// @Summary      IDからスラッグ取得
// @Description  内部IDを記事スラッグに変換します。IDの形式はストア依存です（Mongo: 16進24桁、SQL: 整数）
// @Tags         articles
// @Produce      json
// @Param        id path string true "内部ID"
// @Success      200 {object} SlugResponse "スラッグ"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid article id"
// @Failure      404 {object} respond.ErrorBody "Not found - article not found"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /api/slug/{id} [get]
func (h SlugHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.Param(r, "id")
	if err != nil {
		writeError(w, r, h.Logger, artUC.ErrInvalidArticleID)
		return
	}

	slug, err := h.Svc.SlugByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, SlugResponse{Slug: slug})
}
