package etoro

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildStatement(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()

	for sheet, rows := range sheets {
		_, err := wb.NewSheet(sheet)
		require.NoError(t, err)
		for i := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, wb.SetSheetRow(sheet, cell, &rows[i]))
		}
	}
	wb.DeleteSheet("Sheet1")

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseStatement(t *testing.T) {
	buf := buildStatement(t, map[string][][]any{
		sheetClosedPositions: {
			{"Position ID", "Action", "Amount", "Units", "Open Date", "Close Date", "Leverage", "Profit(USD)", "Type", "ISIN"},
			{"101", "Buy AAPL", "1000", "10", "02/01/2024 10:00:00", "15/03/2024 16:30:00", "1", "200", "Stocks", "US0378331005"},
			{"", "", "", "", "", "", "", "", "", ""},
			{"102", "Sell GOLD", "500", "2", "03/01/2024 09:00:00", "20/03/2024 12:00:00", "10", "-50", "CFD", ""},
		},
		sheetTransactions: {
			{"Date", "Type", "Details", "Position ID", "Amount"},
			{"02/01/2024 10:00:00", "Open Position", "AAPL/USD", "101", "1000"},
		},
		sheetDividends: {
			{"Date of Payment", "Instrument Name", "Net Dividend Received (USD)", "Net Dividend Received (EUR)", "Withholding Tax Rate (%)", "Withholding Tax Amount (USD)", "Withholding Tax Amount (EUR)", "Position ID", "Type", "ISIN"},
			{"15/02/2024", "Apple", "0.85", "0.80", "15", "0.15", "0.14", "101", "Dividend", "US0378331005"},
		},
	})

	data, err := NewParser().Parse(buf)
	require.NoError(t, err)

	require.Len(t, data.Trades, 2, "blank rows are dropped")
	assert.Equal(t, "101", data.Trades[0].PositionID)
	assert.Equal(t, "Buy AAPL", data.Trades[0].Action)
	assert.Equal(t, "15/03/2024 16:30:00", data.Trades[0].CloseDate)
	assert.Equal(t, "Stocks", data.Trades[0].AssetType)
	assert.Equal(t, "10", data.Trades[1].Leverage)
	assert.Equal(t, "-50", data.Trades[1].Profit)
	assert.Empty(t, data.Trades[1].ISIN)

	require.Len(t, data.Transactions, 1)
	assert.Equal(t, "AAPL/USD", data.Transactions[0].Details)
	assert.Equal(t, "101", data.Transactions[0].PositionID)

	require.Len(t, data.Dividends, 1)
	assert.Equal(t, "0.80", data.Dividends[0].NetAmountReporting)
	assert.Equal(t, "0.14", data.Dividends[0].WithholdingTaxAmtRept)
	assert.Equal(t, "US0378331005", data.Dividends[0].ISIN)
}

func TestParseStatementReorderedColumns(t *testing.T) {
	// eToro has reordered and re-cased headers between statement years; the
	// parser must locate columns by name alone.
	buf := buildStatement(t, map[string][][]any{
		sheetClosedPositions: {
			{"ISIN", "Type", "Close Date", "Open Date", "Units", "Amount", "Action", "Position ID", "Leverage", "Profit(USD)"},
			{"DE0007164600", "Stocks", "10/06/2024 11:00:00", "05/06/2024 11:00:00", "3", "450", "Buy SAP", "205", "", "30"},
		},
	})

	data, err := NewParser().Parse(buf)
	require.NoError(t, err)

	require.Len(t, data.Trades, 1)
	assert.Equal(t, "205", data.Trades[0].PositionID)
	assert.Equal(t, "450", data.Trades[0].Amount)
	assert.Equal(t, "DE0007164600", data.Trades[0].ISIN)
	assert.Empty(t, data.Trades[0].Leverage)
	assert.Empty(t, data.Transactions, "missing sheets read as empty")
	assert.Empty(t, data.Dividends)
}
