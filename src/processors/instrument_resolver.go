package processors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/username/edavkifolio/src/logger"
	"github.com/username/edavkifolio/src/models"
)

// SymbolResolver maps position ids to trading symbols. The map is built once
// per run, from the account-activity Details column first and from dividend
// ISINs against company metadata second, and is read-only afterwards.
type SymbolResolver struct {
	symbols map[int64]string
}

// NewSymbolResolver builds the position-id to symbol map.
//
// Transactions carry Details of the form "SYMBOL/CURRENCY"; rows without a
// position id or a slash are ignored. Dividend position ids still unresolved
// afterwards are looked up by ISIN in the company metadata; a dividend whose
// ISIN has no metadata row is fatal — the operator must extend the reference
// data before a filing can be produced.
func NewSymbolResolver(transactions []models.RawTransaction, dividends []models.RawDividend, companies *models.CompanyList) (*SymbolResolver, error) {
	syms := make(map[int64]string)

	for _, tx := range transactions {
		if tx.PositionID == "" || !strings.Contains(tx.Details, "/") {
			continue
		}
		positionID, err := strconv.ParseInt(tx.PositionID, 10, 64)
		if err != nil {
			continue
		}
		symbol, _, _ := strings.Cut(tx.Details, "/")
		syms[positionID] = strings.ToUpper(symbol)
	}

	for _, div := range dividends {
		positionID, err := strconv.ParseInt(div.PositionID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("dividend for %q: bad position id %q: %w", div.InstrumentName, div.PositionID, err)
		}
		if _, ok := syms[positionID]; ok {
			continue
		}
		info, ok := companies.ByISIN(div.ISIN)
		if !ok {
			return nil, fmt.Errorf("%w: position %d (ISIN %s) is in neither the activity records nor the company metadata; export a statement covering a longer period or add the ISIN to the company reference file",
				ErrUnresolvedPosition, positionID, div.ISIN)
		}
		syms[positionID] = strings.ToUpper(info.Symbol)
		if logger.L != nil {
			logger.L.Debug("Resolved dividend position via company metadata", "positionID", positionID, "symbol", info.Symbol)
		}
	}

	return &SymbolResolver{symbols: syms}, nil
}

// Resolve returns the symbol for a position id, if known.
func (r *SymbolResolver) Resolve(positionID int64) (string, bool) {
	symbol, ok := r.symbols[positionID]
	return symbol, ok
}

// RepairForexSymbol corrects forex pairs misreported as equities: a 7-char
// instrument name whose first 4 characters equal the resolved symbol plus
// "/" (e.g. name "EUR/USD" resolved as "EUR") is really the 6-character pair
// with the separator removed.
func RepairForexSymbol(symbol, instrumentName string) string {
	if symbol == "" || len(instrumentName) != 7 {
		return symbol
	}
	if instrumentName[:4] == symbol+"/" {
		return instrumentName[0:3] + instrumentName[4:]
	}
	return symbol
}
