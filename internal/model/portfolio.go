package model

// UncategorizedSector is the sector label used for holdings without one.
const UncategorizedSector = "Uncategorized"

// PortfolioRow is a holding joined with its quote and metrics.
// Value fields derived from the live price are nil when no price is available.
type PortfolioRow struct {
	Name             string   `json:"name"`
	Symbol           *string  `json:"symbol"`
	Exchange         *string  `json:"exchange"`
	PurchasePrice    float64  `json:"purchasePrice"`
	Quantity         float64  `json:"quantity"`
	Sector           string   `json:"sector"`
	Investment       float64  `json:"investment"`
	PortfolioPercent float64  `json:"portfolioPercent"`
	CMP              *float64 `json:"cmp"`
	PresentValue     *float64 `json:"presentValue"`
	GainLoss         *float64 `json:"gainLoss"`
	GainLossPercent  *float64 `json:"gainLossPercent"`
	PERatio          *float64 `json:"peRatio"`
	LatestEarnings   *string  `json:"latestEarnings"`
	LastUpdated      *int64   `json:"lastUpdated"`
	HasError         bool     `json:"hasError"`
}

// SectorGroup aggregates the rows that share a sector label.
type SectorGroup struct {
	Sector            string         `json:"sector"`
	Holdings          []PortfolioRow `json:"holdings"`
	TotalInvestment   float64        `json:"totalInvestment"`
	TotalPresentValue float64        `json:"totalPresentValue"`
	TotalGainLoss     float64        `json:"totalGainLoss"`
	GainLossPercent   float64        `json:"gainLossPercent"`
}

// PortfolioSummary represents the portfolio-wide totals.
// Rows without a live price contribute their investment as present value.
type PortfolioSummary struct {
	TotalInvestment      float64 `json:"totalInvestment"`
	TotalPresentValue    float64 `json:"totalPresentValue"`
	TotalGainLoss        float64 `json:"totalGainLoss"`
	TotalGainLossPercent float64 `json:"totalGainLossPercent"`
	TotalHoldings        int     `json:"totalHoldings"`
	LastUpdated          *int64  `json:"lastUpdated"`
}

// Portfolio bundles every derived view computed from a single market snapshot.
type Portfolio struct {
	Rows    []PortfolioRow   `json:"rows"`
	Sectors []SectorGroup    `json:"sectors"`
	Summary PortfolioSummary `json:"summary"`
}
