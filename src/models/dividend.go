package models

import "time"

// DividendRecord is a reconciled dividend payment in reporting currency.
// Records merged from several same-day payments carry every contributing
// position id.
type DividendRecord struct {
	PositionIDs    []int64
	Symbol         string
	InstrumentName string
	ISIN           string
	Date           time.Time
	NetAmount      float64 // reporting currency
	GrossAmount    float64 // net + withholding
	WithholdingTax float64
	Address        string // from company metadata, when known
	Country        string
	Skipped        bool // rounded gross <= 0; kept for the audit listing only
}
