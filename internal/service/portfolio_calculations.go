package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/symbols"
)

// CalculatePortfolioRows joins holdings with their quotes and metrics and
// derives the per-row values.
//
// Quotes and metrics are matched to a holding by its normalized exchange code.
// A holding without a usable price keeps its investment figures, but its
// present value, gain/loss and gain/loss percent are nil.
func CalculatePortfolioRows(holdings []model.Holding, quotes []model.Quote, metrics []model.Metrics) []model.PortfolioRow {
	quoteBySymbol := make(map[string]model.Quote, len(quotes))
	for _, q := range quotes {
		quoteBySymbol[q.Symbol] = q
	}
	metricsBySymbol := make(map[string]model.Metrics, len(metrics))
	for _, m := range metrics {
		metricsBySymbol[m.Symbol] = m
	}

	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(dec(h.PurchasePrice).Mul(dec(h.Quantity)))
	}

	rows := make([]model.PortfolioRow, 0, len(holdings))
	for _, h := range holdings {
		investment := dec(h.PurchasePrice).Mul(dec(h.Quantity))

		row := model.PortfolioRow{
			Name:             h.Name,
			Symbol:           h.Symbol,
			Exchange:         h.Exchange,
			PurchasePrice:    h.PurchasePrice,
			Quantity:         h.Quantity,
			Sector:           sectorOf(h),
			Investment:       investment.InexactFloat64(),
			PortfolioPercent: percentOf(investment, total).InexactFloat64(),
		}

		sym := symbols.ForHolding(h)
		quote, hasQuote := quoteBySymbol[sym]
		metric, hasMetric := metricsBySymbol[sym]
		if sym == "" {
			hasQuote, hasMetric = false, false
		}

		if hasQuote && quote.CMP != nil && *quote.CMP > 0 {
			price := *quote.CMP
			row.CMP = &price

			present := dec(price).Mul(dec(h.Quantity))
			gainLoss := present.Sub(investment)
			row.PresentValue = floatPtr(present)
			row.GainLoss = floatPtr(gainLoss)
			if !investment.IsZero() {
				row.GainLossPercent = floatPtr(percentOf(gainLoss, investment))
			}
		}

		if hasMetric {
			if metric.PERatio != nil && *metric.PERatio != 0 {
				pe := *metric.PERatio
				row.PERatio = &pe
			}
			if metric.LatestEarnings != nil && *metric.LatestEarnings != "" {
				earnings := *metric.LatestEarnings
				row.LatestEarnings = &earnings
			}
		}

		quoteFailed := hasQuote && quote.Error != "" && row.CMP == nil
		metricsFailed := hasMetric && metric.Error != "" && row.PERatio == nil && row.LatestEarnings == nil
		row.HasError = quoteFailed || metricsFailed

		var quoteTS, metricTS int64
		if hasQuote {
			quoteTS = quote.Timestamp
		}
		if hasMetric {
			metricTS = metric.Timestamp
		}
		row.LastUpdated = maxTimestamp(quoteTS, metricTS)

		rows = append(rows, row)
	}

	return rows
}

// CalculateSectorGroups buckets rows by sector and totals each bucket.
// Groups are sorted by sector name with Uncategorized always last.
func CalculateSectorGroups(rows []model.PortfolioRow) []model.SectorGroup {
	bySector := make(map[string][]model.PortfolioRow)
	for _, row := range rows {
		sector := row.Sector
		if sector == "" {
			sector = model.UncategorizedSector
		}
		bySector[sector] = append(bySector[sector], row)
	}

	groups := make([]model.SectorGroup, 0, len(bySector))
	for sector, sectorRows := range bySector {
		t := sumRows(sectorRows)
		groups = append(groups, model.SectorGroup{
			Sector:            sector,
			Holdings:          sectorRows,
			TotalInvestment:   t.investment.InexactFloat64(),
			TotalPresentValue: t.presentValue.InexactFloat64(),
			TotalGainLoss:     t.gainLoss().InexactFloat64(),
			GainLossPercent:   percentOf(t.gainLoss(), t.investment).InexactFloat64(),
		})
	}

	slices.SortFunc(groups, func(a, b model.SectorGroup) int {
		return compareSectors(a.Sector, b.Sector)
	})

	return groups
}

// CalculatePortfolioSummary totals the whole portfolio.
func CalculatePortfolioSummary(rows []model.PortfolioRow) model.PortfolioSummary {
	t := sumRows(rows)

	var latest int64
	for _, row := range rows {
		if row.LastUpdated != nil && *row.LastUpdated > latest {
			latest = *row.LastUpdated
		}
	}

	return model.PortfolioSummary{
		TotalInvestment:      t.investment.InexactFloat64(),
		TotalPresentValue:    t.presentValue.InexactFloat64(),
		TotalGainLoss:        t.gainLoss().InexactFloat64(),
		TotalGainLossPercent: percentOf(t.gainLoss(), t.investment).InexactFloat64(),
		TotalHoldings:        len(rows),
		LastUpdated:          maxTimestamp(latest),
	}
}

type totals struct {
	investment   decimal.Decimal
	presentValue decimal.Decimal
}

func (t totals) gainLoss() decimal.Decimal {
	return t.presentValue.Sub(t.investment)
}

// sumRows adds up investment and present value. Rows without a live price
// contribute their investment as present value.
func sumRows(rows []model.PortfolioRow) totals {
	t := totals{investment: decimal.Zero, presentValue: decimal.Zero}
	for _, row := range rows {
		investment := dec(row.Investment)
		t.investment = t.investment.Add(investment)
		if row.PresentValue != nil && *row.PresentValue != 0 {
			t.presentValue = t.presentValue.Add(dec(*row.PresentValue))
		} else {
			t.presentValue = t.presentValue.Add(investment)
		}
	}
	return t
}

func sectorOf(h model.Holding) string {
	if h.Sector == nil || strings.TrimSpace(*h.Sector) == "" {
		return model.UncategorizedSector
	}
	return strings.TrimSpace(*h.Sector)
}

// compareSectors orders names case-insensitively and pins Uncategorized to the end.
func compareSectors(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == model.UncategorizedSector:
		return 1
	case b == model.UncategorizedSector:
		return -1
	}
	if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
