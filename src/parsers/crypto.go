package parsers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/username/edavkifolio/src/models"
)

type cryptoInfoRow struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// LoadCryptoList reads the optional cryptocurrency reference table (a JSON
// array of {symbol, name}). An empty path means no table is configured and
// the crypto exclusion falls back to the statement's instrument-type tag.
func LoadCryptoList(path string) (*models.CryptoList, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading crypto reference %q: %w", path, err)
	}

	var rows []cryptoInfoRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshalling crypto reference %q: %w", path, err)
	}

	symbols := make([]string, 0, len(rows))
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Symbol != "" {
			symbols = append(symbols, row.Symbol)
		}
		if row.Name != "" {
			names = append(names, row.Name)
		}
	}
	return models.NewCryptoList(symbols, names), nil
}
