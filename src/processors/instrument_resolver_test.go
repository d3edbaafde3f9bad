package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/edavkifolio/src/models"
)

func testCompanies() *models.CompanyList {
	return models.NewCompanyList([]models.CompanyInfo{
		{Symbol: "AAPL", ISIN: "US0378331005", Name: "Apple Inc.", Address: "One Apple Park Way, Cupertino", CountryCode: "US"},
		{Symbol: "SAP", ISIN: "DE0007164600", Name: "SAP SE", Address: "Dietmar-Hopp-Allee 16, Walldorf", CountryCode: "DE"},
	})
}

func TestNewSymbolResolver_FromTransactions(t *testing.T) {
	transactions := []models.RawTransaction{
		{PositionID: "100", Details: "aapl/USD"},
		{PositionID: "101", Details: "SAP/EUR"},
		{PositionID: "", Details: "MSFT/USD"},  // no position id
		{PositionID: "102", Details: "whynot"}, // no slash
	}

	resolver, err := NewSymbolResolver(transactions, nil, testCompanies())
	require.NoError(t, err)

	symbol, ok := resolver.Resolve(100)
	assert.True(t, ok)
	assert.Equal(t, "AAPL", symbol, "symbols are upper-cased")

	symbol, ok = resolver.Resolve(101)
	assert.True(t, ok)
	assert.Equal(t, "SAP", symbol)

	_, ok = resolver.Resolve(102)
	assert.False(t, ok)
}

func TestNewSymbolResolver_DividendFallbackViaISIN(t *testing.T) {
	dividends := []models.RawDividend{
		{PositionID: "200", InstrumentName: "Apple", ISIN: "US0378331005"},
	}

	resolver, err := NewSymbolResolver(nil, dividends, testCompanies())
	require.NoError(t, err)

	symbol, ok := resolver.Resolve(200)
	assert.True(t, ok)
	assert.Equal(t, "AAPL", symbol)
}

func TestNewSymbolResolver_UnknownISINIsFatal(t *testing.T) {
	dividends := []models.RawDividend{
		{PositionID: "300", InstrumentName: "Mystery Corp", ISIN: "XX0000000000"},
	}

	_, err := NewSymbolResolver(nil, dividends, testCompanies())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedPosition)
	assert.Contains(t, err.Error(), "XX0000000000", "the offending ISIN must be named for the operator")
}

func TestNewSymbolResolver_TransactionsWinOverDividends(t *testing.T) {
	transactions := []models.RawTransaction{{PositionID: "400", Details: "SAP/EUR"}}
	dividends := []models.RawDividend{{PositionID: "400", InstrumentName: "SAP SE", ISIN: "DE0007164600"}}

	resolver, err := NewSymbolResolver(transactions, dividends, testCompanies())
	require.NoError(t, err)

	symbol, _ := resolver.Resolve(400)
	assert.Equal(t, "SAP", symbol)
}

func TestRepairForexSymbol(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		instr  string
		want   string
	}{
		{name: "misreported pair is repaired", symbol: "EUR", instr: "EUR/USD", want: "EURUSD"},
		{name: "equity name untouched", symbol: "AAPL", instr: "Apple", want: "AAPL"},
		{name: "seven chars but not a pair", symbol: "AAPL", instr: "Apple 7", want: "AAPL"},
		{name: "unresolved symbol untouched", symbol: "", instr: "EUR/USD", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairForexSymbol(tt.symbol, tt.instr))
		})
	}
}
