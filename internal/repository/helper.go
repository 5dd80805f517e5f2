package repository

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// tomlHoldings is the TOML document shape; TOML has no top-level arrays so
// holdings are written as [[holdings]] tables.
type tomlHoldings struct {
	Holdings []model.Holding `toml:"holdings"`
}

// decodeHoldings parses data according to the file extension of path.
func decodeHoldings(path string, data []byte) ([]model.Holding, error) {
	var holdings []model.Holding

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &holdings); err != nil {
			return nil, fmt.Errorf("failed to parse JSON holdings: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &holdings); err != nil {
			return nil, fmt.Errorf("failed to parse YAML holdings: %w", err)
		}
	case ".toml":
		var doc tomlHoldings
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML holdings: %w", err)
		}
		holdings = doc.Holdings
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedHoldingsFormat, ext)
	}

	if holdings == nil {
		holdings = []model.Holding{}
	}
	return holdings, nil
}
