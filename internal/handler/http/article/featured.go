package article

import (
	"log/slog"
	"net/http"

	"williampedia/internal/handler/http/respond"
	artUC "williampedia/internal/usecase/article"
)

type FeaturedHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP 注目記事
// @Summary      注目記事
// @Description  ランダムに選んだ最大3件の記事を抜粋付きで返します。画像がない記事にはプレースホルダーを使います
// @Tags         articles
// @Produce      json
// @Success      200 {array} FeaturedDTO "注目記事"
// @Failure      404 {object} respond.ErrorBody "Not found - no articles"
// @Failure      500 {object} respond.ErrorBody "サーバーエラー"
// @Router       /api/featured-articles [get]
func (h FeaturedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	featured, err := h.Svc.Featured(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	out := make([]FeaturedDTO, 0, len(featured))
	for _, f := range featured {
		out = append(out, toFeaturedDTO(f))
	}
	respond.JSON(w, http.StatusOK, out)
}
