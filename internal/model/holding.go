package model

// Holding is a single position from the static portfolio file.
// Exchange carries the NSE ticker or BSE scrip code used to look up market data;
// Symbol is the display ticker and may differ from it.
type Holding struct {
	Name          string  `json:"name" yaml:"name" toml:"name" validate:"required"`
	Symbol        *string `json:"symbol" yaml:"symbol" toml:"symbol"`
	Exchange      *string `json:"exchange" yaml:"exchange" toml:"exchange"`
	PurchasePrice float64 `json:"purchasePrice" yaml:"purchasePrice" toml:"purchasePrice" validate:"gt=0,finite"`
	Quantity      float64 `json:"quantity" yaml:"quantity" toml:"quantity" validate:"gt=0,finite"`
	Sector        *string `json:"sector" yaml:"sector" toml:"sector"`
}

