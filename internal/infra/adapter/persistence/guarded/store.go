// Package guarded decorates an article repository with a circuit breaker,
// a bounded retry for reads, tracing spans and store metrics.
package guarded

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"williampedia/internal/domain/entity"
	"williampedia/internal/observability/metrics"
	"williampedia/internal/observability/tracing"
	"williampedia/internal/repository"
	"williampedia/internal/resilience/circuitbreaker"
	"williampedia/internal/resilience/retry"
)

// Store wraps a repository.ArticleRepository. Reads failing with
// entity.ErrStoreUnavailable are retried; writes never are.
type Store struct {
	inner     repository.ArticleRepository
	breaker   *circuitbreaker.Breaker
	readRetry retry.Policy
	tracer    trace.Tracer
}

var _ repository.ArticleRepository = (*Store)(nil)

type Option func(*options)

type options struct {
	breaker   circuitbreaker.Config
	readRetry retry.Policy
	tracer    trace.Tracer
}

func WithBreaker(cfg circuitbreaker.Config) Option {
	return func(o *options) { o.breaker = cfg }
}

func WithReadRetry(cfg retry.Policy) Option {
	return func(o *options) { o.readRetry = cfg }
}

func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// New returns inner guarded by a breaker tuned with circuitbreaker.StoreConfig
// and a single read retry from retry.ReadPolicy unless overridden.
func New(inner repository.ArticleRepository, opts ...Option) *Store {
	o := options{
		breaker:   circuitbreaker.StoreConfig(),
		readRetry: retry.ReadPolicy(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.breaker.IsSuccessful == nil {
		o.breaker.IsSuccessful = countsAsSuccess
	}
	if o.breaker.OnStateChange == nil {
		o.breaker.OnStateChange = func(_ string, _, to gobreaker.State) {
			metrics.SetBreakerOpen(to == gobreaker.StateOpen)
		}
	}
	if o.readRetry.RetryIf == nil {
		o.readRetry.RetryIf = isUnavailable
	}
	if o.tracer == nil {
		o.tracer = tracing.GetTracer()
	}
	return &Store{
		inner:     inner,
		breaker:   circuitbreaker.New(o.breaker),
		readRetry: o.readRetry,
		tracer:    o.tracer,
	}
}

// countsAsSuccess keeps caller mistakes from tripping the breaker.
func countsAsSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, entity.ErrInvalidInput) ||
		errors.Is(err, entity.ErrConflict) ||
		errors.Is(err, context.Canceled)
}

func isUnavailable(err error) bool {
	return errors.Is(err, entity.ErrStoreUnavailable)
}

// errorClass labels store_operation_errors_total.
func errorClass(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, entity.ErrStoreUnavailable):
		return "unavailable"
	case errors.Is(err, entity.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, entity.ErrConflict):
		return "conflict"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}

// Name and IsOpen expose the breaker to the health check.
func (s *Store) Name() string { return s.breaker.Name() }

func (s *Store) IsOpen() bool { return s.breaker.IsOpen() }

// Unwrap returns the decorated repository.
func (s *Store) Unwrap() repository.ArticleRepository { return s.inner }

func call[T any](ctx context.Context, s *Store, op string, read bool, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := s.tracer.Start(ctx, "store."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.operation", op)))
	defer span.End()

	start := time.Now()
	var out T
	attempt := func(ctx context.Context) error {
		res, err := circuitbreaker.Do(s.breaker, func() (T, error) {
			return fn(ctx)
		})
		if err != nil {
			if circuitbreaker.IsRejection(err) {
				return fmt.Errorf("%s: %w: %w", op, entity.ErrStoreUnavailable, err)
			}
			return err
		}
		out = res
		return nil
	}

	var err error
	if read {
		err = retry.Do(ctx, s.readRetry, attempt)
	} else {
		err = attempt(ctx)
	}

	metrics.RecordStoreOperation(op, time.Since(start), errorClass(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errorClass(err))
	}
	return out, err
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	return call(ctx, s, "GetBySlug", true, func(ctx context.Context) (*entity.Article, error) {
		return s.inner.GetBySlug(ctx, slug)
	})
}

func (s *Store) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return call(ctx, s, "GetByID", true, func(ctx context.Context) (*entity.Article, error) {
		return s.inner.GetByID(ctx, id)
	})
}

func (s *Store) Previous(ctx context.Context, pos entity.Position) (*entity.ArticleRef, error) {
	return call(ctx, s, "Previous", true, func(ctx context.Context) (*entity.ArticleRef, error) {
		return s.inner.Previous(ctx, pos)
	})
}

func (s *Store) Next(ctx context.Context, pos entity.Position) (*entity.ArticleRef, error) {
	return call(ctx, s, "Next", true, func(ctx context.Context) (*entity.ArticleRef, error) {
		return s.inner.Next(ctx, pos)
	})
}

func (s *Store) ListNewest(ctx context.Context, offset, limit int) ([]entity.ArticleRef, error) {
	return call(ctx, s, "ListNewest", true, func(ctx context.Context) ([]entity.ArticleRef, error) {
		return s.inner.ListNewest(ctx, offset, limit)
	})
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return call(ctx, s, "Count", true, func(ctx context.Context) (int64, error) {
		return s.inner.Count(ctx)
	})
}

func (s *Store) SearchTitles(ctx context.Context, query string, limit int) ([]entity.ArticleRef, error) {
	return call(ctx, s, "SearchTitles", true, func(ctx context.Context) ([]entity.ArticleRef, error) {
		return s.inner.SearchTitles(ctx, query, limit)
	})
}

func (s *Store) Latest(ctx context.Context) (*entity.Article, error) {
	return call(ctx, s, "Latest", true, func(ctx context.Context) (*entity.Article, error) {
		return s.inner.Latest(ctx)
	})
}

func (s *Store) At(ctx context.Context, offset int64) (*entity.Article, error) {
	return call(ctx, s, "At", true, func(ctx context.Context) (*entity.Article, error) {
		return s.inner.At(ctx, offset)
	})
}

func (s *Store) Sample(ctx context.Context, size int) ([]*entity.Article, error) {
	return call(ctx, s, "Sample", true, func(ctx context.Context) ([]*entity.Article, error) {
		return s.inner.Sample(ctx, size)
	})
}

func (s *Store) IncrementVote(ctx context.Context, slug string, dir entity.VoteDirection) (bool, error) {
	return call(ctx, s, "IncrementVote", false, func(ctx context.Context) (bool, error) {
		return s.inner.IncrementVote(ctx, slug, dir)
	})
}

func (s *Store) Create(ctx context.Context, article *entity.Article) error {
	_, err := call(ctx, s, "Create", false, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.inner.Create(ctx, article)
	})
	return err
}

func (s *Store) NormalizeVotes(ctx context.Context) (int64, error) {
	return call(ctx, s, "NormalizeVotes", false, func(ctx context.Context) (int64, error) {
		return s.inner.NormalizeVotes(ctx)
	})
}

// Ping is not retried so readiness reflects the current state.
func (s *Store) Ping(ctx context.Context) error {
	_, err := call(ctx, s, "Ping", false, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.inner.Ping(ctx)
	})
	return err
}
