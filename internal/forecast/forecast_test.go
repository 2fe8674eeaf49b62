package forecast

import (
	"context"
	"fmt"
	"testing"

	"github.com/Parsa-ux360/PriceForecastApp/internal/inflation"
	"github.com/Parsa-ux360/PriceForecastApp/internal/testutil"
)

// newTestForecaster builds a forecaster over a source that knows a 12%
// rate for "us" and nothing for any other country.
func newTestForecaster() (*Forecaster, *testutil.MockSource) {
	source := &testutil.MockSource{
		SeriesFunc: func(ctx context.Context, countryCode string) ([]inflation.Observation, error) {
			if countryCode == "us" {
				return []inflation.Observation{
					{Year: "2024", Value: testutil.FloatPtr(12.0)},
				}, nil
			}
			return nil, fmt.Errorf("no data for %s", countryCode)
		},
	}
	resolver := inflation.NewResolver(source, nil)
	return New(resolver, nil), source
}

func TestForecastOne_Resolved(t *testing.T) {
	forecaster, _ := newTestForecaster()

	result := forecaster.ForecastOne(context.Background(), ProductRecord{
		Product:        "Laptop",
		CurrentPrice:   "$100",
		ForecastMonths: "12",
		Country:        "US",
		Currency:       "USD",
	})

	if !result.Resolved() {
		t.Fatalf("ForecastOne() unresolved with reason %q", result.Reason)
	}
	if result.FinalPrice != 112.00 {
		t.Errorf("FinalPrice = %v, want 112.00", result.FinalPrice)
	}
	if len(result.Series) != 13 {
		t.Errorf("len(Series) = %d, want 13", len(result.Series))
	}
	if result.Series[0] != 100.00 {
		t.Errorf("Series[0] = %v, want 100.00", result.Series[0])
	}
	if result.Series[len(result.Series)-1] != result.FinalPrice {
		t.Errorf("last series entry = %v, want FinalPrice %v", result.Series[len(result.Series)-1], result.FinalPrice)
	}
	if result.Symbol != "$" {
		t.Errorf("Symbol = %q, want %q", result.Symbol, "$")
	}
	if result.Rate.ReferenceYear != "2024" {
		t.Errorf("ReferenceYear = %q, want %q", result.Rate.ReferenceYear, "2024")
	}
}

func TestForecastOne_NoInflationData(t *testing.T) {
	forecaster, _ := newTestForecaster()

	tests := []struct {
		name    string
		country string
	}{
		{"unknown country", "ZZ"},
		{"blank country", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := forecaster.ForecastOne(context.Background(), ProductRecord{
				Product:      "Widget",
				CurrentPrice: "10",
				Country:      tt.country,
				Currency:     "USD",
			})

			if result.Resolved() {
				t.Fatal("ForecastOne() resolved, want unresolved")
			}
			if result.Reason != ReasonNoInflationData {
				t.Errorf("Reason = %q, want %q", result.Reason, ReasonNoInflationData)
			}
			if result.Series != nil {
				t.Errorf("Series = %v, want nil", result.Series)
			}
		})
	}
}

func TestForecastOne_InvalidPriceFormat(t *testing.T) {
	forecaster, _ := newTestForecaster()

	result := forecaster.ForecastOne(context.Background(), ProductRecord{
		Product:        "Widget",
		CurrentPrice:   "garbage",
		ForecastMonths: "6",
		Country:        "US",
		Currency:       "USD",
	})

	if result.Resolved() {
		t.Fatal("ForecastOne() resolved, want unresolved")
	}
	if result.Reason != ReasonInvalidPriceFormat {
		t.Errorf("Reason = %q, want %q", result.Reason, ReasonInvalidPriceFormat)
	}
	// The rate resolved before parsing failed; it stays on the result.
	if !result.Rate.Known() {
		t.Error("Rate unknown, want resolved rate on invalid-price result")
	}
}

func TestForecastOne_MonthsCoercion(t *testing.T) {
	forecaster, _ := newTestForecaster()

	tests := []struct {
		name       string
		months     string
		wantLength int
	}{
		{"numeric string", "6", 7},
		{"unparseable defaults to zero", "about a year", 1},
		{"negative clamps to zero", "-3", 1},
		{"empty defaults to zero", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := forecaster.ForecastOne(context.Background(), ProductRecord{
				Product:        "Widget",
				CurrentPrice:   "100",
				ForecastMonths: tt.months,
				Country:        "US",
				Currency:       "USD",
			})

			if !result.Resolved() {
				t.Fatalf("ForecastOne() unresolved with reason %q", result.Reason)
			}
			if len(result.Series) != tt.wantLength {
				t.Errorf("len(Series) = %d, want %d", len(result.Series), tt.wantLength)
			}
		})
	}
}

func TestForecastBatch_PreservesOrderAndLength(t *testing.T) {
	forecaster, _ := newTestForecaster()

	products := []ProductRecord{
		{Product: "Unresolvable", CurrentPrice: "10", Country: "ZZ", Currency: "USD"},
		{Product: "Laptop", CurrentPrice: "$100", ForecastMonths: "12", Country: "US", Currency: "USD"},
		{Product: "Bad Price", CurrentPrice: "n/a", Country: "US", Currency: "USD"},
	}

	results := forecaster.ForecastBatch(context.Background(), products)

	if len(results) != len(products) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(products))
	}
	for i, result := range results {
		if result.Product.Product != products[i].Product {
			t.Errorf("results[%d].Product = %q, want %q", i, result.Product.Product, products[i].Product)
		}
	}

	if results[0].Reason != ReasonNoInflationData {
		t.Errorf("results[0].Reason = %q, want %q", results[0].Reason, ReasonNoInflationData)
	}
	if !results[1].Resolved() {
		t.Errorf("results[1] unresolved with reason %q", results[1].Reason)
	}
	if results[2].Reason != ReasonInvalidPriceFormat {
		t.Errorf("results[2].Reason = %q, want %q", results[2].Reason, ReasonInvalidPriceFormat)
	}
}

func TestForecastBatch_SharesResolverCache(t *testing.T) {
	forecaster, source := newTestForecaster()

	products := []ProductRecord{
		{Product: "A", CurrentPrice: "10", Country: "US", Currency: "USD"},
		{Product: "B", CurrentPrice: "20", Country: "us", Currency: "USD"},
		{Product: "C", CurrentPrice: "30", Country: "US", Currency: "USD"},
	}

	forecaster.ForecastBatch(context.Background(), products)

	if len(source.Calls) != 1 {
		t.Errorf("source queried %d times, want 1", len(source.Calls))
	}
}

func TestForecastBatch_Empty(t *testing.T) {
	forecaster, _ := newTestForecaster()

	results := forecaster.ForecastBatch(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestBuildReport(t *testing.T) {
	forecaster, _ := newTestForecaster()

	products := []ProductRecord{
		{Product: "Laptop", CurrentPrice: "$100", ForecastMonths: "12", Country: "US", Currency: "USD"},
		{Product: "Unresolvable", CurrentPrice: "10", ForecastMonths: "3", Country: "ZZ", Currency: "USD"},
		{Product: "Bad Price", CurrentPrice: "n/a", ForecastMonths: "3", Country: "US", Currency: "USD"},
	}

	report := BuildReport(forecaster.ForecastBatch(context.Background(), products))

	if len(report) != 3 {
		t.Fatalf("len(report) = %d, want 3", len(report))
	}

	if report[0].ForecastPrice != "$112.00" {
		t.Errorf("report[0].ForecastPrice = %q, want %q", report[0].ForecastPrice, "$112.00")
	}
	if report[0].InflationRate == nil || *report[0].InflationRate != 12.0 {
		t.Errorf("report[0].InflationRate = %v, want 12.0", report[0].InflationRate)
	}
	if report[0].InflationYear != "2024" {
		t.Errorf("report[0].InflationYear = %q, want %q", report[0].InflationYear, "2024")
	}
	if len(report[0].PriceSeries) != 13 {
		t.Errorf("len(report[0].PriceSeries) = %d, want 13", len(report[0].PriceSeries))
	}

	if report[1].ForecastPrice != DisplayNoInflationData {
		t.Errorf("report[1].ForecastPrice = %q, want %q", report[1].ForecastPrice, DisplayNoInflationData)
	}
	if report[1].InflationRate != nil {
		t.Errorf("report[1].InflationRate = %v, want nil", report[1].InflationRate)
	}
	if report[1].PriceSeries != nil {
		t.Errorf("report[1].PriceSeries = %v, want nil", report[1].PriceSeries)
	}

	if report[2].ForecastPrice != DisplayInvalidPriceFormat {
		t.Errorf("report[2].ForecastPrice = %q, want %q", report[2].ForecastPrice, DisplayInvalidPriceFormat)
	}
	if report[2].InflationRate == nil {
		t.Error("report[2].InflationRate = nil, want resolved rate echoed")
	}

	// Product fields are echoed verbatim.
	if report[1].Product != "Unresolvable" || report[1].Country != "ZZ" || report[1].ForecastMonths != "3" {
		t.Errorf("report[1] echo = %+v, want original product fields", report[1])
	}
}

func TestDisplayPrice_CodeWhenNoSymbol(t *testing.T) {
	forecaster, _ := newTestForecaster()

	result := forecaster.ForecastOne(context.Background(), ProductRecord{
		Product:        "Watch",
		CurrentPrice:   "100",
		ForecastMonths: "12",
		Country:        "US",
		Currency:       "CHF",
	})

	if !result.Resolved() {
		t.Fatalf("ForecastOne() unresolved with reason %q", result.Reason)
	}
	if got := DisplayPrice(result); got != "112.00 CHF" {
		t.Errorf("DisplayPrice() = %q, want %q", got, "112.00 CHF")
	}
}
