// Package metrics provides the Prometheus collectors for the article store
// and for business events such as votes and searches.
//
// HTTP request metrics live with the HTTP middleware in internal/handler/http;
// everything here is recorded below the handler layer.
//
//	start := time.Now()
//	art, err := repo.GetBySlug(ctx, slug)
//	metrics.RecordStoreOperation("get_by_slug", time.Since(start), err)
package metrics
