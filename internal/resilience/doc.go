// Package resilience provides the fault tolerance patterns wrapped around
// the article store: a circuit breaker that fails fast while the store is
// down, and bounded retry with exponential backoff and jitter.
//
//	cb := circuitbreaker.New(circuitbreaker.StoreConfig())
//	art, err := circuitbreaker.Do(cb, func() (*entity.Article, error) {
//	    return repo.GetBySlug(ctx, slug)
//	})
//
//	err := retry.Do(ctx, retry.ReadPolicy(), repo.Ping)
package resilience
