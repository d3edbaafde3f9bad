package processors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/username/edavkifolio/src/models"
	"github.com/username/edavkifolio/src/utils"
)

// DividendReconciler builds DividendRecords from raw dividend rows, merges
// same-day payments per instrument and annotates the result with company
// metadata. The merge scan is order-dependent and must stay sequential.
type DividendReconciler struct {
	ReportYear int
	Format     StatementFormat
	Resolver   *SymbolResolver
	Companies  *models.CompanyList
	Warnings   *WarningCollector
}

// MissingCompany identifies an instrument that paid a dividend but has no
// row in the company metadata. Surfaced at the end of the run so the
// operator can extend the reference file.
type MissingCompany struct {
	Symbol string
	ISIN   string
	Name   string
}

// Reconcile processes the report year's dividend rows into filing-ready
// records. Returned records include skipped ones (rounded gross <= 0); the
// filing emitter excludes them, the audit listing keeps them.
func (r *DividendReconciler) Reconcile(dividends []models.RawDividend) ([]*models.DividendRecord, []MissingCompany, error) {
	var records []*models.DividendRecord

	for _, raw := range dividends {
		date, err := r.Format.ParseDate(raw.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("dividend for %q: %w", raw.InstrumentName, err)
		}
		if date.Year() != r.ReportYear {
			continue
		}

		positionID, err := strconv.ParseInt(raw.PositionID, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("dividend for %q: bad position id %q: %w", raw.InstrumentName, raw.PositionID, err)
		}
		symbol, ok := r.Resolver.Resolve(positionID)
		if !ok {
			return nil, nil, fmt.Errorf("%w: dividend position %d (%s) has no symbol; the statement may not cover the full holding period",
				ErrUnresolvedPosition, positionID, raw.InstrumentName)
		}

		// The statement already reports both legs in the reporting currency;
		// gross is reconstructed rather than trusted from a rate column.
		net, err := r.Format.ParseFloat(raw.NetAmountReporting)
		if err != nil {
			return nil, nil, fmt.Errorf("dividend position %d net amount: %w", positionID, err)
		}
		withholding, err := r.Format.ParseFloat(raw.WithholdingTaxAmtRept)
		if err != nil {
			return nil, nil, fmt.Errorf("dividend position %d withholding amount: %w", positionID, err)
		}

		record := &models.DividendRecord{
			PositionIDs:    []int64{positionID},
			Symbol:         symbol,
			InstrumentName: raw.InstrumentName,
			ISIN:           raw.ISIN,
			Date:           date,
			NetAmount:      net,
			WithholdingTax: withholding,
			GrossAmount:    net + withholding,
		}
		records = mergeDividend(records, record)
	}

	missing, err := r.annotate(records)
	if err != nil {
		return nil, nil, err
	}

	for _, record := range records {
		if utils.RoundFloat(record.GrossAmount, 2) <= 0 {
			record.Skipped = true
		}
	}

	return records, missing, nil
}

// mergeDividend folds the record into the first accumulated record sharing
// its calendar date and symbol, provided both gross amounts are
// non-negative — a reversal never merges into a payment, nor the other way
// round. Net, gross and withholding sum; position ids accumulate.
func mergeDividend(records []*models.DividendRecord, record *models.DividendRecord) []*models.DividendRecord {
	for _, existing := range records {
		if utils.SameDay(existing.Date, record.Date) &&
			existing.Symbol == record.Symbol &&
			existing.GrossAmount >= 0 && record.GrossAmount >= 0 {
			existing.NetAmount += record.NetAmount
			existing.GrossAmount += record.GrossAmount
			existing.WithholdingTax += record.WithholdingTax
			existing.PositionIDs = append(existing.PositionIDs, record.PositionIDs...)
			return records
		}
	}
	return append(records, record)
}

// annotate cross-checks every record against the company metadata. An ISIN
// disagreement is fatal: it would file the dividend under the wrong legal
// entity. A missing company row is only a warning; the record still flows to
// the filing without address/country.
func (r *DividendReconciler) annotate(records []*models.DividendRecord) ([]MissingCompany, error) {
	var missing []MissingCompany
	var mismatches []string

	for _, record := range records {
		info, ok := r.Companies.BySymbol(record.Symbol)
		if !ok {
			if !hasMissingSymbol(missing, record.Symbol) {
				missing = append(missing, MissingCompany{Symbol: record.Symbol, ISIN: record.ISIN, Name: record.InstrumentName})
				r.Warnings.Addf("no company metadata for dividend payer %s (ISIN %s, %q)", record.Symbol, record.ISIN, record.InstrumentName)
			}
			continue
		}
		if record.ISIN != info.ISIN {
			mismatches = append(mismatches, fmt.Sprintf("%s on %s: statement ISIN %s vs metadata ISIN %s (%s)",
				record.Symbol, record.Date.Format("2006-01-02"), record.ISIN, info.ISIN, info.Name))
			continue
		}
		record.Address = info.Address
		record.Country = info.CountryCode
	}

	if len(mismatches) > 0 {
		return nil, fmt.Errorf("%w:\n\t%s\ncheck the company reference file and re-run", ErrISINMismatch, strings.Join(mismatches, "\n\t"))
	}
	return missing, nil
}

func hasMissingSymbol(missing []MissingCompany, symbol string) bool {
	for _, m := range missing {
		if m.Symbol == symbol {
			return true
		}
	}
	return false
}
