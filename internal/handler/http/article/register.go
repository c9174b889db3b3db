package article

import (
	"log/slog"
	"net/http"

	"williampedia/internal/common/pagination"
	artUC "williampedia/internal/usecase/article"
)

// Register registers the article routes on mux.
// voteMiddleware wraps only the vote route, typically with a per-client rate limiter.
func Register(mux *http.ServeMux, svc *artUC.Service, paginationCfg pagination.Config, logger *slog.Logger, voteMiddleware ...func(http.Handler) http.Handler) {
	if logger == nil {
		logger = slog.Default()
	}

	mux.Handle("GET /api/article/{slug}", GetHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/article-sequence/{slug}", SequenceHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/history", HistoryHandler{Svc: svc, PaginationCfg: paginationCfg, Logger: logger})
	mux.Handle("GET /api/search", SearchHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/random-article", RandomHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/article-of-the-day", OfTheDayHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/slug/{id}", SlugHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/featured-articles", FeaturedHandler{Svc: svc, Logger: logger})

	var vote http.Handler = VoteHandler{Svc: svc, Logger: logger}
	for i := len(voteMiddleware) - 1; i >= 0; i-- {
		vote = voteMiddleware[i](vote)
	}
	mux.Handle("POST /api/article/{slug}/vote", vote)
}
