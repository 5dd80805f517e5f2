package testutil

import (
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	// Simple creation with defaults
//	holding := testutil.NewHolding().Build()
//
//	// Customized holding
//	holding := testutil.NewHolding().
//	    WithName("Infosys").
//	    WithExchange("INFY").
//	    WithSector("Technology").
//	    WithPosition(1500, 10).
//	    Build()
type HoldingBuilder struct {
	holding model.Holding
}

// NewHolding creates a HoldingBuilder with sensible defaults.
func NewHolding() *HoldingBuilder {
	return &HoldingBuilder{
		holding: model.Holding{
			Name:          "Test Holding",
			Exchange:      ptr("TEST"),
			PurchasePrice: 100,
			Quantity:      10,
			Sector:        ptr("Technology"),
		},
	}
}

func (b *HoldingBuilder) WithName(name string) *HoldingBuilder {
	b.holding.Name = name
	return b
}

func (b *HoldingBuilder) WithSymbol(symbol string) *HoldingBuilder {
	b.holding.Symbol = ptr(symbol)
	return b
}

func (b *HoldingBuilder) WithExchange(exchange string) *HoldingBuilder {
	b.holding.Exchange = ptr(exchange)
	return b
}

// WithoutExchange removes the exchange code, so no market data can be looked up.
func (b *HoldingBuilder) WithoutExchange() *HoldingBuilder {
	b.holding.Exchange = nil
	return b
}

func (b *HoldingBuilder) WithSector(sector string) *HoldingBuilder {
	b.holding.Sector = ptr(sector)
	return b
}

// WithoutSector removes the sector, so the holding lands in Uncategorized.
func (b *HoldingBuilder) WithoutSector() *HoldingBuilder {
	b.holding.Sector = nil
	return b
}

// WithPosition sets the purchase price and quantity.
func (b *HoldingBuilder) WithPosition(purchasePrice, quantity float64) *HoldingBuilder {
	b.holding.PurchasePrice = purchasePrice
	b.holding.Quantity = quantity
	return b
}

// Build returns the configured holding.
func (b *HoldingBuilder) Build() model.Holding {
	return b.holding
}

// SampleHoldings returns a small mixed portfolio: two NSE tickers, one numeric
// BSE code and one holding without a sector.
func SampleHoldings() []model.Holding {
	return []model.Holding{
		NewHolding().WithName("Tata Consultancy Services").WithExchange("TCS").WithSector("Technology").WithPosition(3200, 10).Build(),
		NewHolding().WithName("HDFC Bank").WithExchange("HDFCBANK").WithSector("Financials").WithPosition(1500, 20).Build(),
		NewHolding().WithName("Bajaj Finance").WithExchange("500034").WithSector("Financials").WithPosition(6500, 2).Build(),
		NewHolding().WithName("Unlisted Co").WithExchange("UNLISTED").WithoutSector().WithPosition(100, 50).Build(),
	}
}

func ptr[T any](v T) *T {
	return &v
}
