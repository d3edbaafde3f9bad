package etoro

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/username/edavkifolio/src/models"
)

// Sheet names of the eToro account-statement workbook.
const (
	sheetClosedPositions = "Closed Positions"
	sheetTransactions    = "Account Activity"
	sheetDividends       = "Dividends"
)

// EToroParser implements the parsers.Parser interface for eToro XLSX account
// statements. Columns are located by header name, not position: eToro has
// inserted and reordered columns between statement years.
type EToroParser struct{}

// NewParser creates a new instance of the EToroParser.
func NewParser() *EToroParser {
	return &EToroParser{}
}

// Parse reads one statement workbook into the three raw record streams.
func (p *EToroParser) Parse(file io.Reader) (models.StatementData, error) {
	var data models.StatementData

	wb, err := excelize.OpenReader(file)
	if err != nil {
		return data, fmt.Errorf("etoro parser: failed to open workbook: %w", err)
	}
	defer wb.Close()

	data.Trades, err = readTrades(wb)
	if err != nil {
		return data, err
	}
	data.Transactions, err = readTransactions(wb)
	if err != nil {
		return data, err
	}
	data.Dividends, err = readDividends(wb)
	if err != nil {
		return data, err
	}
	return data, nil
}

// headerIndex maps lower-cased header names to column positions.
type headerIndex map[string]int

func indexHeaders(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// cell returns the row value under the given header, or "" when the column
// is absent from this statement variant or the row is ragged.
func (idx headerIndex) cell(row []string, header string) string {
	i, ok := idx[header]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// sheetRows returns a sheet's data rows and header index. A workbook without
// the sheet reads as empty: a year without dividends has no Dividends sheet.
func sheetRows(wb *excelize.File, sheet string) ([][]string, headerIndex, error) {
	if index, err := wb.GetSheetIndex(sheet); err != nil || index < 0 {
		return nil, nil, nil
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("etoro parser: reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[1:], indexHeaders(rows[0]), nil
}

func readTrades(wb *excelize.File) ([]models.RawTrade, error) {
	rows, idx, err := sheetRows(wb, sheetClosedPositions)
	if err != nil {
		return nil, err
	}

	var trades []models.RawTrade
	for _, row := range rows {
		positionID := idx.cell(row, "position id")
		if positionID == "" {
			continue
		}
		trades = append(trades, models.RawTrade{
			PositionID: positionID,
			Action:     idx.cell(row, "action"),
			Amount:     idx.cell(row, "amount"),
			Units:      idx.cell(row, "units"),
			OpenDate:   idx.cell(row, "open date"),
			CloseDate:  idx.cell(row, "close date"),
			Leverage:   idx.cell(row, "leverage"),
			Profit:     idx.cell(row, "profit(usd)"),
			AssetType:  idx.cell(row, "type"),
			ISIN:       idx.cell(row, "isin"),
		})
	}
	return trades, nil
}

func readTransactions(wb *excelize.File) ([]models.RawTransaction, error) {
	rows, idx, err := sheetRows(wb, sheetTransactions)
	if err != nil {
		return nil, err
	}

	var transactions []models.RawTransaction
	for _, row := range rows {
		date := idx.cell(row, "date")
		if date == "" {
			continue
		}
		transactions = append(transactions, models.RawTransaction{
			Date:       date,
			Type:       idx.cell(row, "type"),
			Details:    idx.cell(row, "details"),
			PositionID: idx.cell(row, "position id"),
			Amount:     idx.cell(row, "amount"),
		})
	}
	return transactions, nil
}

func readDividends(wb *excelize.File) ([]models.RawDividend, error) {
	rows, idx, err := sheetRows(wb, sheetDividends)
	if err != nil {
		return nil, err
	}

	var dividends []models.RawDividend
	for _, row := range rows {
		date := idx.cell(row, "date of payment")
		if date == "" {
			continue
		}
		dividends = append(dividends, models.RawDividend{
			Date:                  date,
			InstrumentName:        idx.cell(row, "instrument name"),
			NetAmount:             idx.cell(row, "net dividend received (usd)"),
			NetAmountReporting:    idx.cell(row, "net dividend received (eur)"),
			WithholdingRate:       idx.cell(row, "withholding tax rate (%)"),
			WithholdingTaxAmt:     idx.cell(row, "withholding tax amount (usd)"),
			WithholdingTaxAmtRept: idx.cell(row, "withholding tax amount (eur)"),
			PositionID:            idx.cell(row, "position id"),
			Type:                  idx.cell(row, "type"),
			ISIN:                  idx.cell(row, "isin"),
		})
	}
	return dividends, nil
}
