package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestHoldingRepository_JSON(t *testing.T) {
	path := writeFile(t, "portfolio.json", `[
		{"name":"HDFC Bank","symbol":"HDFCBANK","exchange":"HDFCBANK","purchasePrice":1490,"quantity":50,"sector":"Financials"},
		{"name":"Reliance","symbol":null,"exchange":"500325","purchasePrice":2450.5,"quantity":10,"sector":null}
	]`)

	repo := NewHoldingRepository(path)
	require.NoError(t, repo.LoadError())

	holdings, err := repo.GetHoldings()
	require.NoError(t, err)
	require.Len(t, holdings, 2)

	assert.Equal(t, "HDFC Bank", holdings[0].Name)
	require.NotNil(t, holdings[0].Sector)
	assert.Equal(t, "Financials", *holdings[0].Sector)
	assert.Nil(t, holdings[1].Symbol)
	assert.Nil(t, holdings[1].Sector)
	assert.Equal(t, 2, repo.Count())
}

func TestHoldingRepository_YAML(t *testing.T) {
	path := writeFile(t, "portfolio.yaml", `
- name: Infosys
  exchange: INFY
  purchasePrice: 1500
  quantity: 20
  sector: Technology
- name: Unlisted
  purchasePrice: 10
  quantity: 1
`)

	holdings, err := NewHoldingRepository(path).GetHoldings()
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	require.NotNil(t, holdings[0].Exchange)
	assert.Equal(t, "INFY", *holdings[0].Exchange)
	assert.Nil(t, holdings[1].Exchange)
}

func TestHoldingRepository_TOML(t *testing.T) {
	path := writeFile(t, "portfolio.toml", `
[[holdings]]
name = "TCS"
exchange = "TCS"
purchasePrice = 3200.0
quantity = 5.0
sector = "Technology"
`)

	holdings, err := NewHoldingRepository(path).GetHoldings()
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "TCS", holdings[0].Name)
	assert.InDelta(t, 3200.0, holdings[0].PurchasePrice, 1e-9)
}

func TestHoldingRepository_Failures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		repo := NewHoldingRepository(filepath.Join(t.TempDir(), "nope.json"))

		_, err := repo.GetHoldings()
		assert.ErrorIs(t, err, apperrors.ErrHoldingsNotLoaded)
		assert.Equal(t, 0, repo.Count())
	})

	t.Run("unsupported extension", func(t *testing.T) {
		repo := NewHoldingRepository(writeFile(t, "portfolio.csv", "name,price"))

		_, err := repo.GetHoldings()
		assert.ErrorIs(t, err, apperrors.ErrUnsupportedHoldingsFormat)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		repo := NewHoldingRepository(writeFile(t, "portfolio.json", `[{"name":`))

		_, err := repo.GetHoldings()
		assert.ErrorIs(t, err, apperrors.ErrHoldingsNotLoaded)
	})

	t.Run("non-positive quantity fails validation", func(t *testing.T) {
		repo := NewHoldingRepository(writeFile(t, "portfolio.json", `[{"name":"Zero","purchasePrice":10,"quantity":0}]`))

		_, err := repo.GetHoldings()
		assert.ErrorIs(t, err, apperrors.ErrInvalidHolding)
	})

	t.Run("infinite purchase price in YAML fails validation", func(t *testing.T) {
		repo := NewHoldingRepository(writeFile(t, "portfolio.yaml", `
- name: Runaway
  exchange: TCS
  purchasePrice: .inf
  quantity: 1
`))

		_, err := repo.GetHoldings()
		assert.ErrorIs(t, err, apperrors.ErrInvalidHolding)
		assert.Contains(t, err.Error(), "finite")
		assert.Equal(t, 0, repo.Count())
	})

	t.Run("infinite quantity in TOML fails validation", func(t *testing.T) {
		repo := NewHoldingRepository(writeFile(t, "portfolio.toml", `
[[holdings]]
name = "Runaway"
purchasePrice = 10.0
quantity = inf
`))

		_, err := repo.GetHoldings()
		assert.ErrorIs(t, err, apperrors.ErrInvalidHolding)
	})
}

func TestHoldingRepository_ReturnsCopy(t *testing.T) {
	repo := NewHoldingRepositoryFromSlice([]model.Holding{{Name: "A", PurchasePrice: 1, Quantity: 1}})

	first, err := repo.GetHoldings()
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := repo.GetHoldings()
	require.NoError(t, err)
	assert.Equal(t, "A", second[0].Name)
}
