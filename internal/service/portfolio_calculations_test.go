package service_test

import (
	"math"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func quote(symbol string, price float64, ts int64) model.Quote {
	return model.Quote{Symbol: symbol, CMP: &price, Timestamp: ts}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestCalculatePortfolioRows tests the per-holding calculations.
//
// WHY: Every number in the dashboard table comes from these rows. Weights must
// add up to 100% and a missing price must only blank out live values.
func TestCalculatePortfolioRows(t *testing.T) {
	t.Run("computes investment and portfolio weight", func(t *testing.T) {
		holdings := []model.Holding{
			testutil.NewHolding().WithExchange("A").WithPosition(100, 10).Build(),
			testutil.NewHolding().WithExchange("B").WithPosition(50, 20).Build(),
		}

		rows := service.CalculatePortfolioRows(holdings, nil, nil)

		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}
		for i, row := range rows {
			if row.Investment != 1000 {
				t.Errorf("rows[%d].Investment = %v, want 1000", i, row.Investment)
			}
			if row.PortfolioPercent != 50 {
				t.Errorf("rows[%d].PortfolioPercent = %v, want 50", i, row.PortfolioPercent)
			}
		}
	})

	t.Run("weights sum to 100", func(t *testing.T) {
		holdings := []model.Holding{
			testutil.NewHolding().WithPosition(100, 1).Build(),
			testutil.NewHolding().WithPosition(100, 1).Build(),
			testutil.NewHolding().WithPosition(100, 1).Build(),
			testutil.NewHolding().WithPosition(17.35, 7).Build(),
		}

		rows := service.CalculatePortfolioRows(holdings, nil, nil)

		sum := 0.0
		for _, row := range rows {
			sum += row.PortfolioPercent
		}
		if !approxEqual(sum, 100) {
			t.Errorf("Expected weights to sum to 100, got %v", sum)
		}
	})

	t.Run("derives live values from the quote", func(t *testing.T) {
		holdings := []model.Holding{
			testutil.NewHolding().WithExchange("TCS").WithPosition(3000, 10).Build(),
		}
		quotes := []model.Quote{quote("TCS.NS", 3300, 1_700_000_000_000)}

		row := service.CalculatePortfolioRows(holdings, quotes, nil)[0]

		if row.CMP == nil || *row.CMP != 3300 {
			t.Fatalf("Expected CMP 3300, got %v", row.CMP)
		}
		if row.PresentValue == nil || *row.PresentValue != 33000 {
			t.Errorf("Expected present value 33000, got %v", row.PresentValue)
		}
		if row.GainLoss == nil || *row.GainLoss != 3000 {
			t.Errorf("Expected gain 3000, got %v", row.GainLoss)
		}
		if row.GainLossPercent == nil || !approxEqual(*row.GainLossPercent, 10) {
			t.Errorf("Expected gain percent 10, got %v", row.GainLossPercent)
		}
		if row.LastUpdated == nil || *row.LastUpdated != 1_700_000_000_000 {
			t.Errorf("Expected lastUpdated from quote, got %v", row.LastUpdated)
		}
		if row.HasError {
			t.Error("Expected HasError false")
		}
	})

	t.Run("leaves live values nil when price is missing", func(t *testing.T) {
		holdings := []model.Holding{
			testutil.NewHolding().WithExchange("TCS").Build(),
			testutil.NewHolding().WithExchange("INFY").Build(),
		}
		quotes := []model.Quote{
			quote("TCS.NS", 120, 1),
			{Symbol: "INFY.NS", Timestamp: 1, Error: "yahoo finance api error: 404"},
		}

		rows := service.CalculatePortfolioRows(holdings, quotes, nil)

		if rows[0].PresentValue == nil {
			t.Error("Expected present value for priced row")
		}
		missing := rows[1]
		if missing.CMP != nil || missing.PresentValue != nil || missing.GainLoss != nil || missing.GainLossPercent != nil {
			t.Errorf("Expected nil live values, got %+v", missing)
		}
		if !missing.HasError {
			t.Error("Expected HasError for failed quote")
		}
		if missing.Investment != 1000 {
			t.Errorf("Expected investment preserved, got %v", missing.Investment)
		}
	})

	t.Run("joins metrics and flags metric-only failures", func(t *testing.T) {
		earnings := "₹65.0B"
		holdings := []model.Holding{
			testutil.NewHolding().WithExchange("TCS").Build(),
			testutil.NewHolding().WithExchange("500034").Build(),
		}
		quotes := []model.Quote{quote("TCS.NS", 120, 10), quote("500034.BO", 90, 10)}
		metrics := []model.Metrics{
			{Symbol: "TCS.NS", PERatio: testutil.Float(28.5), LatestEarnings: &earnings, Timestamp: 20},
			{Symbol: "500034.BO", Timestamp: 5, Error: "no results returned"},
		}

		rows := service.CalculatePortfolioRows(holdings, quotes, metrics)

		if rows[0].PERatio == nil || *rows[0].PERatio != 28.5 {
			t.Errorf("Expected P/E 28.5, got %v", rows[0].PERatio)
		}
		if rows[0].LatestEarnings == nil || *rows[0].LatestEarnings != earnings {
			t.Errorf("Expected earnings %s, got %v", earnings, rows[0].LatestEarnings)
		}
		if rows[0].LastUpdated == nil || *rows[0].LastUpdated != 20 {
			t.Errorf("Expected lastUpdated 20, got %v", rows[0].LastUpdated)
		}
		if !rows[1].HasError {
			t.Error("Expected HasError when metrics failed without data")
		}
		if rows[1].LastUpdated == nil || *rows[1].LastUpdated != 10 {
			t.Errorf("Expected lastUpdated 10, got %v", rows[1].LastUpdated)
		}
	})

	t.Run("defaults sector and skips lookup without exchange", func(t *testing.T) {
		holdings := []model.Holding{
			testutil.NewHolding().WithoutExchange().WithoutSector().Build(),
		}

		row := service.CalculatePortfolioRows(holdings, []model.Quote{quote("", 10, 1)}, nil)[0]

		if row.Sector != model.UncategorizedSector {
			t.Errorf("Expected sector %q, got %q", model.UncategorizedSector, row.Sector)
		}
		if row.CMP != nil {
			t.Error("Expected no CMP for holding without exchange")
		}
		if row.LastUpdated != nil {
			t.Errorf("Expected nil lastUpdated, got %v", *row.LastUpdated)
		}
	})

	t.Run("handles empty holdings", func(t *testing.T) {
		rows := service.CalculatePortfolioRows(nil, nil, nil)
		if rows == nil || len(rows) != 0 {
			t.Errorf("Expected empty non-nil rows, got %v", rows)
		}
	})
}

// TestCalculateSectorGroups tests sector bucketing and ordering.
//
// WHY: The sector view must show named sectors alphabetically and keep the
// Uncategorized bucket at the bottom, with totals that fall back to cost for
// unpriced holdings.
func TestCalculateSectorGroups(t *testing.T) {
	holdings := []model.Holding{
		testutil.NewHolding().WithExchange("A").WithSector("technology").WithPosition(100, 10).Build(),
		testutil.NewHolding().WithExchange("B").WithoutSector().WithPosition(10, 10).Build(),
		testutil.NewHolding().WithExchange("C").WithSector("Energy").WithPosition(50, 10).Build(),
		testutil.NewHolding().WithExchange("D").WithSector("technology").WithPosition(200, 5).Build(),
	}
	quotes := []model.Quote{
		quote("A.NS", 110, 1),
		quote("C.NS", 40, 1),
	}

	rows := service.CalculatePortfolioRows(holdings, quotes, nil)
	groups := service.CalculateSectorGroups(rows)

	t.Run("sorts named sectors and puts Uncategorized last", func(t *testing.T) {
		want := []string{"Energy", "technology", model.UncategorizedSector}
		if len(groups) != len(want) {
			t.Fatalf("Expected %d groups, got %d", len(want), len(groups))
		}
		for i, g := range groups {
			if g.Sector != want[i] {
				t.Errorf("groups[%d].Sector = %q, want %q", i, g.Sector, want[i])
			}
		}
	})

	t.Run("totals fall back to investment for unpriced rows", func(t *testing.T) {
		tech := groups[1]
		if len(tech.Holdings) != 2 {
			t.Fatalf("Expected 2 technology holdings, got %d", len(tech.Holdings))
		}
		if tech.TotalInvestment != 2000 {
			t.Errorf("Expected investment 2000, got %v", tech.TotalInvestment)
		}
		// A is priced (1100), D is not and contributes its cost (1000).
		if tech.TotalPresentValue != 2100 {
			t.Errorf("Expected present value 2100, got %v", tech.TotalPresentValue)
		}
		if tech.TotalGainLoss != 100 {
			t.Errorf("Expected gain 100, got %v", tech.TotalGainLoss)
		}
		if !approxEqual(tech.GainLossPercent, 5) {
			t.Errorf("Expected gain percent 5, got %v", tech.GainLossPercent)
		}
	})

	t.Run("computes losses", func(t *testing.T) {
		energy := groups[0]
		if energy.TotalGainLoss != -100 {
			t.Errorf("Expected loss -100, got %v", energy.TotalGainLoss)
		}
		if !approxEqual(energy.GainLossPercent, -20) {
			t.Errorf("Expected gain percent -20, got %v", energy.GainLossPercent)
		}
	})

	t.Run("returns empty slice for no rows", func(t *testing.T) {
		if got := service.CalculateSectorGroups(nil); got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil groups, got %v", got)
		}
	})
}

// TestCalculatePortfolioSummary tests the portfolio-wide totals.
func TestCalculatePortfolioSummary(t *testing.T) {
	t.Run("totals priced and unpriced rows", func(t *testing.T) {
		holdings := []model.Holding{
			testutil.NewHolding().WithExchange("A").WithPosition(100, 10).Build(),
			testutil.NewHolding().WithExchange("B").WithPosition(50, 20).Build(),
		}
		quotes := []model.Quote{quote("A.NS", 150, 42)}

		summary := service.CalculatePortfolioSummary(service.CalculatePortfolioRows(holdings, quotes, nil))

		if summary.TotalInvestment != 2000 {
			t.Errorf("Expected investment 2000, got %v", summary.TotalInvestment)
		}
		if summary.TotalPresentValue != 2500 {
			t.Errorf("Expected present value 2500, got %v", summary.TotalPresentValue)
		}
		if summary.TotalGainLoss != 500 {
			t.Errorf("Expected gain 500, got %v", summary.TotalGainLoss)
		}
		if !approxEqual(summary.TotalGainLossPercent, 25) {
			t.Errorf("Expected gain percent 25, got %v", summary.TotalGainLossPercent)
		}
		if summary.TotalHoldings != 2 {
			t.Errorf("Expected 2 holdings, got %d", summary.TotalHoldings)
		}
		if summary.LastUpdated == nil || *summary.LastUpdated != 42 {
			t.Errorf("Expected lastUpdated 42, got %v", summary.LastUpdated)
		}
	})

	t.Run("guards against an empty portfolio", func(t *testing.T) {
		summary := service.CalculatePortfolioSummary(nil)

		if summary.TotalGainLossPercent != 0 || summary.TotalInvestment != 0 {
			t.Errorf("Expected zero totals, got %+v", summary)
		}
		if summary.LastUpdated != nil {
			t.Errorf("Expected nil lastUpdated, got %v", *summary.LastUpdated)
		}
	})
}
