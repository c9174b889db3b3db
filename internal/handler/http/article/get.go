package article

import (
	"log/slog"
	"net/http"

	"williampedia/internal/handler/http/pathutil"
	"williampedia/internal/handler/http/respond"
	artUC "williampedia/internal/usecase/article"
)

type GetHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP 記事取得
// @Summary      記事取得
// @Description  スラッグで記事を1件取得します
// @Tags         articles
// @Produce      json
// @Param        slug path string true "記事スラッグ"
// @Success      200 {object} DTO "記事"
// @Failure      400 {object} respond.ErrorBody "Bad request - invalid slug"
// @Failure      404 {object} respond.ErrorBody "Not found - article not found"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /api/article/{slug} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug, err := pathutil.Param(r, "slug")
	if err != nil {
		respond.SafeError(w, respond.NewAppError(http.StatusBadRequest, "Invalid slug", err))
		return
	}

	article, err := h.Svc.Get(r.Context(), slug)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(article))
}

type RandomHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP ランダム記事取得
// @Summary      ランダム記事取得
// @Description  記事を1件ランダムに取得します
// @Tags         articles
// @Produce      json
// @Success      200 {object} DTO "記事"
// @Failure      404 {object} respond.ErrorBody "Not found - no articles"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /api/random-article [get]
func (h RandomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	article, err := h.Svc.Random(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(article))
}

type OfTheDayHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP 今日の記事
// @Summary      今日の記事
// @Description  最も新しく作成された記事を返します
// @Tags         articles
// @Produce      json
// @Success      200 {object} DTO "記事"
// @Failure      404 {object} respond.ErrorBody "Not found - no articles"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /api/article-of-the-day [get]
func (h OfTheDayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	article, err := h.Svc.OfTheDay(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(article))
}
