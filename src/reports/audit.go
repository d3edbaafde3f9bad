package reports

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/username/edavkifolio/src/models"
	"github.com/username/edavkifolio/src/processors"
	"github.com/username/edavkifolio/src/utils"
)

// Audit workbooks: human-readable listings of every lot event and every
// dividend record, including what the filings exclude, so a filer can verify
// the conversion before submitting.

var auditBuckets = []struct {
	bucket models.Bucket
	sheet  string
}{
	{models.BucketLongNormal, "Normal (long)"},
	{models.BucketShortNormal, "Normal (short)"},
	{models.BucketLongDerivative, "Derivative (long)"},
	{models.BucketShortDerivative, "Derivative (short)"},
	{models.BucketSkippedCrypto, "Skipped crypto"},
}

// WriteLotAuditWorkbook writes the per-bucket lot-event listing.
func WriteLotAuditWorkbook(path string, ledger *processors.PositionLedger) error {
	wb := excelize.NewFile()
	defer wb.Close()

	header := []any{"Symbol", "Name", "ISIN", "Is fund", "Action", "Trade date", "Quantity", "Unit price (EUR)", "Running balance"}

	for _, ab := range auditBuckets {
		groups := ledger.Groups(ab.bucket)
		if _, err := wb.NewSheet(ab.sheet); err != nil {
			return fmt.Errorf("audit workbook: creating sheet %q: %w", ab.sheet, err)
		}
		if err := wb.SetSheetRow(ab.sheet, "A1", &header); err != nil {
			return fmt.Errorf("audit workbook: %w", err)
		}
		rowNum := 2
		for _, group := range groups {
			for _, ev := range group.Events {
				action := "Open"
				quantity := ev.Quantity
				if ev.Quantity < 0 {
					action = "Close"
					quantity = -ev.Quantity
				}
				row := []any{
					ev.Symbol,
					ev.InstrumentName,
					ev.ISIN,
					group.IsFund,
					action,
					utils.FormatFilingDate(ev.Date),
					quantity,
					ev.UnitPrice,
					ev.RunningBalance,
				}
				if err := wb.SetSheetRow(ab.sheet, fmt.Sprintf("A%d", rowNum), &row); err != nil {
					return fmt.Errorf("audit workbook: %w", err)
				}
				rowNum++
			}
		}
	}

	// Drop the default sheet excelize creates.
	wb.DeleteSheet("Sheet1")

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("audit workbook: saving %q: %w", path, err)
	}
	return nil
}

// WriteDividendAuditWorkbook writes every dividend record, skipped ones
// included, with the reconciled amounts and all contributing position ids.
func WriteDividendAuditWorkbook(path string, records []*models.DividendRecord) error {
	wb := excelize.NewFile()
	defer wb.Close()

	const sheet = "Dividends"
	if _, err := wb.NewSheet(sheet); err != nil {
		return fmt.Errorf("dividend audit workbook: %w", err)
	}

	header := []any{"Skipped", "Date", "Symbol", "ISIN", "Company/Name", "Address", "CountryCode", "Net dividend [EUR]", "Withholding tax [EUR]", "Gross dividend [EUR]", "Position ID(s)"}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("dividend audit workbook: %w", err)
	}

	for i, record := range records {
		skipped := ""
		if record.Skipped {
			skipped = "YES"
		}
		ids := make([]string, len(record.PositionIDs))
		for j, id := range record.PositionIDs {
			ids[j] = strconv.FormatInt(id, 10)
		}
		row := []any{
			skipped,
			utils.FormatFilingDate(record.Date),
			record.Symbol,
			record.ISIN,
			record.InstrumentName,
			record.Address,
			record.Country,
			record.NetAmount,
			record.WithholdingTax,
			record.GrossAmount,
			strings.Join(ids, ", "),
		}
		if err := wb.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("dividend audit workbook: %w", err)
		}
	}

	wb.DeleteSheet("Sheet1")

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("dividend audit workbook: saving %q: %w", path, err)
	}
	return nil
}
