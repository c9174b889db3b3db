package article

import (
	"errors"
	"log/slog"
	"net/http"

	"williampedia/internal/common/pagination"
	"williampedia/internal/domain/entity"
	"williampedia/internal/handler/http/respond"
	"williampedia/internal/observability/logging"
	artUC "williampedia/internal/usecase/article"
)

type HistoryHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP 記事履歴
// @Summary      記事履歴（ページネーション対応）
// @Description  新しい順に記事を返します。不正な page は 1、不正な limit は既定値に補正されます
// @Tags         articles
// @Produce      json
// @Param        page   query    int  false  "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit  query    int  false  "1ページあたりの件数" default(10) minimum(1) maximum(100)
// @Success      200 {object} HistoryResponse "ページネーション付き記事一覧"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /api/history [get]
func (h HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := pagination.ParseQueryParams(r, h.PaginationCfg)
	obs := pagination.Begin(logging.WithRequestID(ctx, h.Logger), params)

	result, err := h.Svc.History(ctx, params)
	if err != nil {
		errorType := "internal"
		if errors.Is(err, entity.ErrStoreUnavailable) {
			errorType = "database"
		}
		obs.Fail(err, errorType)
		writeError(w, r, h.Logger, err)
		return
	}

	items := make([]HistoryItemDTO, 0, len(result.Articles))
	for _, ref := range result.Articles {
		items = append(items, HistoryItemDTO{
			ID:        ref.ID,
			Slug:      ref.Slug,
			Title:     ref.Title,
			CreatedAt: ref.CreatedAt,
		})
	}

	obs.Done(http.StatusOK, len(items))

	respond.JSON(w, http.StatusOK, HistoryResponse{Articles: items, Pagination: result.Pagination})
}
