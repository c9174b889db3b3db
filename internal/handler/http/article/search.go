package article

import (
	"log/slog"
	"net/http"

	"williampedia/internal/handler/http/respond"
	artUC "williampedia/internal/usecase/article"
)

type SearchHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP 記事検索
// @Summary      記事検索
// @Description  タイトルの部分一致（大文字小文字を区別しない）で最大10件を返します。入力はリテラルとして扱われます
// @Tags         articles
// @Produce      json
// @Param        q query string false "検索文字列（最大200文字）"
// @Success      200 {object} SearchResponse "検索結果"
// @Failure      400 {object} respond.ErrorBody "Bad request - query too long"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /api/search [get]
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	refs, err := h.Svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	items := make([]SearchItemDTO, 0, len(refs))
	for _, ref := range refs {
		items = append(items, SearchItemDTO{Title: ref.Title, Slug: ref.Slug})
	}
	respond.JSON(w, http.StatusOK, SearchResponse{Articles: items})
}
