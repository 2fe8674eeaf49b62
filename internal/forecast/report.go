package forecast

import "fmt"

// Sentinel display strings substituted for a numeric forecast when a
// product could not be forecast. Downstream renderers show these verbatim.
const (
	DisplayNoInflationData    = "Inflation data not found"
	DisplayInvalidPriceFormat = "Invalid price format"
)

// ReportEntry is one row of the batch forecast report: the product fields
// echoed back, the inflation rate used, and the forecast. This shape is the
// contract consumed by the rendering and persistence layers.
type ReportEntry struct {
	Product        string    `json:"product"`
	CurrentPrice   string    `json:"current_price"`
	ForecastMonths string    `json:"forecast_months"`
	Country        string    `json:"country"`
	Currency       string    `json:"currency"`
	InflationRate  *float64  `json:"inflation_rate"`
	InflationYear  string    `json:"inflation_year,omitempty"`
	ForecastPrice  string    `json:"forecasted_price"`
	PriceSeries    []float64 `json:"price_series,omitempty"`
}

// BuildReport assembles report rows from batch results, one per result, in
// order.
func BuildReport(results []Result) []ReportEntry {
	report := make([]ReportEntry, 0, len(results))
	for _, result := range results {
		report = append(report, buildEntry(result))
	}
	return report
}

func buildEntry(result Result) ReportEntry {
	entry := ReportEntry{
		Product:        result.Product.Product,
		CurrentPrice:   result.Product.CurrentPrice,
		ForecastMonths: result.Product.ForecastMonths,
		Country:        result.Product.Country,
		Currency:       result.Product.Currency,
	}

	switch result.Reason {
	case ReasonNoInflationData:
		entry.ForecastPrice = DisplayNoInflationData
		return entry
	case ReasonInvalidPriceFormat:
		entry.InflationRate = result.Rate.AnnualPercent
		entry.InflationYear = result.Rate.ReferenceYear
		entry.ForecastPrice = DisplayInvalidPriceFormat
		return entry
	}

	entry.InflationRate = result.Rate.AnnualPercent
	entry.InflationYear = result.Rate.ReferenceYear
	entry.ForecastPrice = DisplayPrice(result)
	entry.PriceSeries = result.Series
	return entry
}

// DisplayPrice renders a resolved forecast as "<symbol><price>" when a
// symbol is known, else "<price> <code>".
func DisplayPrice(result Result) string {
	if result.Symbol != "" {
		return fmt.Sprintf("%s%.2f", result.Symbol, result.FinalPrice)
	}
	return fmt.Sprintf("%.2f %s", result.FinalPrice, result.Product.Currency)
}
