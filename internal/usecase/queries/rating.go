package queries

import (
	"context"
	"log/slog"
	"time"

	"slotmarket/internal/infra"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RatingReadStore aggregates live ratings.
type RatingReadStore interface {
	// AverageRating returns the mean rating of a service and whether any
	// rating exists. Returns a KindNotFound error when the service does
	// not exist.
	AverageRating(ctx context.Context, serviceID uuid.UUID) (decimal.Decimal, bool, error)
}

type RatingQueries interface {
	// AverageRating returns the mean rating rounded to two decimal
	// places, or zero when the service has no ratings yet.
	AverageRating(ctx context.Context, serviceID uuid.UUID) (decimal.Decimal, error)
}

type ratingQueriesImpl struct {
	reads RatingReadStore
	cache shared.Cache
	ttl   time.Duration
}

func NewRatingQueries(reads RatingReadStore, cache shared.Cache, ttl time.Duration) RatingQueries {
	return &ratingQueriesImpl{reads: reads, cache: cache, ttl: ttl}
}

func (q *ratingQueriesImpl) AverageRating(ctx context.Context, serviceID uuid.UUID) (decimal.Decimal, error) {
	cacheKey := shared.AvgRatingKey(serviceID)

	cached, hit, err := q.cache.Get(ctx, cacheKey)
	if err != nil {
		slog.WarnContext(ctx, "rating cache read failed", "key", cacheKey, "error", err)
	} else if hit {
		if avg, perr := decimal.NewFromString(cached); perr == nil {
			return avg, nil
		}
		slog.WarnContext(ctx, "rating cache entry malformed", "key", cacheKey, "value", cached)
	}

	avg, found, err := q.reads.AverageRating(ctx, serviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return decimal.Zero, ErrServiceNotFound
		}
		return decimal.Zero, err
	}
	if !found {
		avg = decimal.Zero
	}
	avg = avg.Round(2)

	if err := q.cache.Set(ctx, cacheKey, avg.StringFixed(2), q.ttl); err != nil {
		slog.WarnContext(ctx, "rating cache write failed", "key", cacheKey, "error", err)
	}
	return avg, nil
}
