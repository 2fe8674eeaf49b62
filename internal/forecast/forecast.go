// Package forecast combines price parsing, inflation resolution, and
// monthly compounding into per-product forecasts. A batch never aborts:
// every input product yields exactly one result, in input order.
package forecast

import (
	"context"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/Parsa-ux360/PriceForecastApp/internal/inflation"
	"github.com/Parsa-ux360/PriceForecastApp/internal/money"
	"github.com/Parsa-ux360/PriceForecastApp/internal/projection"
)

// ProductRecord is one product to forecast. Fields are strings at this
// boundary; looser upstream shapes (YAML numbers, missing keys) are
// normalized before a record is built. Defaults for missing values:
// CurrentPrice "0", ForecastMonths "0", Currency "USD".
type ProductRecord struct {
	Product        string
	CurrentPrice   string
	ForecastMonths string
	Country        string
	Currency       string
}

// Reason categorizes why a product could not be forecast
type Reason string

const (
	// ReasonNoInflationData indicates no usable inflation rate exists for the product's country
	ReasonNoInflationData Reason = "no_inflation_data"
	// ReasonInvalidPriceFormat indicates the product's price text could not be parsed
	ReasonInvalidPriceFormat Reason = "invalid_price_format"
)

// Result is the outcome of forecasting a single product. Either Reason is
// set and the forecast fields are zero, or Reason is empty and FinalPrice,
// Series, and Symbol carry the projection.
type Result struct {
	Product ProductRecord
	Rate    inflation.Rate

	FinalPrice float64
	Series     []float64
	Symbol     string

	Reason Reason
}

// Resolved reports whether the product was successfully forecast.
func (r Result) Resolved() bool {
	return r.Reason == ""
}

// Forecaster orchestrates forecasts against a shared inflation resolver.
// The resolver owns the only mutable state (its lookup cache).
type Forecaster struct {
	resolver *inflation.Resolver
	logger   *zap.Logger
}

// New creates a Forecaster. A nil logger is replaced with a no-op logger.
func New(resolver *inflation.Resolver, logger *zap.Logger) *Forecaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Forecaster{
		resolver: resolver,
		logger:   logger,
	}
}

// ForecastOne produces the forecast for a single product. Every failure is
// converted into a typed unresolved result; nothing propagates past this
// boundary.
func (f *Forecaster) ForecastOne(ctx context.Context, product ProductRecord) Result {
	result := Result{Product: product}

	result.Rate = f.resolver.Resolve(ctx, product.Country)
	if !result.Rate.Known() {
		f.logger.Info("no inflation data for product",
			zap.String("product", product.Product),
			zap.String("country", product.Country),
		)
		result.Reason = ReasonNoInflationData
		return result
	}

	amount, err := money.Parse(product.CurrentPrice, product.Currency)
	if err != nil {
		f.logger.Info("unparseable price for product",
			zap.String("product", product.Product),
			zap.String("price", product.CurrentPrice),
			zap.Error(err),
		)
		result.Reason = ReasonInvalidPriceFormat
		return result
	}

	months := coerceMonths(product.ForecastMonths)
	series := projection.Project(amount.Value, result.Rate.AnnualPercent, months)

	result.FinalPrice = series[len(series)-1]
	result.Series = series
	result.Symbol = amount.CurrencySymbol
	return result
}

// ForecastBatch forecasts products strictly sequentially in input order,
// returning exactly one result per product.
func (f *Forecaster) ForecastBatch(ctx context.Context, products []ProductRecord) []Result {
	results := make([]Result, 0, len(products))
	for _, product := range products {
		results = append(results, f.ForecastOne(ctx, product))
	}
	return results
}

// coerceMonths is the total string-to-months conversion: anything that does
// not coerce to an integer, and any negative value, becomes 0.
func coerceMonths(raw string) int {
	months, err := cast.ToIntE(raw)
	if err != nil || months < 0 {
		return 0
	}
	return months
}
