// Package logging provides structured logging utilities with context propagation.
//
//	logger := logging.New(logging.Options{Level: "info", Format: "json"})
//	slog.SetDefault(logger)
//
//	func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.WithRequestID(r.Context(), slog.Default())
//	    logger.Info("article served", slog.String("slug", slug))
//	}
package logging
