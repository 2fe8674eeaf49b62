// Package inflation resolves the latest known annual inflation rate for a
// country, memoizing lookups for the lifetime of the resolver.
package inflation

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Observation is one year of an indicator series. A nil Value marks a year
// the source has no data for.
type Observation struct {
	Year  string
	Value *float64
}

// Source provides the annual inflation indicator series for a country,
// ordered most-recent-first.
type Source interface {
	Series(ctx context.Context, countryCode string) ([]Observation, error)
}

// Rate is the resolved annual inflation rate for a country. A nil
// AnnualPercent (and empty ReferenceYear) means no usable data exists.
type Rate struct {
	CountryCode   string
	AnnualPercent *float64
	ReferenceYear string
}

// Known reports whether the rate carries a usable value.
func (r Rate) Known() bool {
	return r.AnnualPercent != nil
}

// Resolver looks up inflation rates through a Source and caches every
// completed lookup, including negative ones, so a country is queried at
// most once per resolver lifetime. There is no expiry: callers needing
// fresh data build a new resolver. That staleness is a deliberate tradeoff
// favoring fewer external calls.
type Resolver struct {
	source Source
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]Rate
}

// NewResolver creates a resolver backed by the given source. A nil logger
// is replaced with a no-op logger.
func NewResolver(source Source, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		source: source,
		logger: logger,
		cache:  make(map[string]Rate),
	}
}

// Resolve returns the latest known annual inflation rate for countryCode.
// A blank code resolves to an unknown rate immediately, without touching
// the source or the cache. Source failures and series with no non-null
// entry both degrade to an unknown rate, which is cached like any other
// result. The lock is held across the source call so concurrent lookups
// for the same key populate the cache at most once.
func (r *Resolver) Resolve(ctx context.Context, countryCode string) Rate {
	code := strings.ToLower(strings.TrimSpace(countryCode))
	if code == "" {
		return Rate{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rate, ok := r.cache[code]; ok {
		return rate
	}

	rate := r.lookup(ctx, code)
	r.cache[code] = rate
	return rate
}

func (r *Resolver) lookup(ctx context.Context, code string) Rate {
	rate := Rate{CountryCode: code}

	series, err := r.source.Series(ctx, code)
	if err != nil {
		r.logger.Warn("inflation lookup failed",
			zap.String("country", code),
			zap.Error(err),
		)
		return rate
	}

	// The series is ordered most-recent-first; take the first year that
	// actually has a value.
	for _, obs := range series {
		if obs.Value != nil {
			value := *obs.Value
			rate.AnnualPercent = &value
			rate.ReferenceYear = obs.Year
			r.logger.Debug("inflation rate resolved",
				zap.String("country", code),
				zap.Float64("annual_percent", value),
				zap.String("reference_year", obs.Year),
			)
			return rate
		}
	}

	r.logger.Warn("inflation series has no usable entries",
		zap.String("country", code),
	)
	return rate
}
