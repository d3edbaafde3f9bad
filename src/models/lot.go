package models

import "time"

// Direction of a position.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// AssetClass separates plain securities from derivatives; they are filed in
// different documents.
type AssetClass string

const (
	AssetNormal     AssetClass = "normal"
	AssetDerivative AssetClass = "derivative"
)

// LotEvent is a single acquisition or disposal entry in the tax inventory.
// Exactly two are derived from every RawTrade: the acquisition carries
// +units at the open date, the disposal -units at the close date. Events are
// immutable once built except for RunningBalance, which the position ledger
// assigns.
type LotEvent struct {
	PositionID     int64
	Symbol         string // empty until resolved
	InstrumentName string
	ISIN           string
	Direction      Direction
	AssetClass     AssetClass
	InstrumentType string // statement tag: "Stocks", "ETF", "CFD", "FUT", ...
	IsFund         bool
	Leverage       int
	Quantity       float64 // signed: positive = acquisition, negative = disposal
	Date           time.Time
	UnitPrice      float64 // in reporting currency
	RunningBalance float64 // cumulative signed quantity, set by the ledger
}

// PositionGroup holds the ordered lot events of one instrument within a
// bucket. Group-level metadata comes from the first event seen for the
// instrument name.
type PositionGroup struct {
	Name           string
	Symbol         string
	ISIN           string
	IsFund         bool
	InstrumentType string
	Events         []LotEvent
}

// Bucket is one of the five classification groups a trade is routed into.
type Bucket int

const (
	BucketLongNormal Bucket = iota
	BucketShortNormal
	BucketLongDerivative
	BucketShortDerivative
	BucketSkippedCrypto
)

func (b Bucket) String() string {
	switch b {
	case BucketLongNormal:
		return "long-normal"
	case BucketShortNormal:
		return "short-normal"
	case BucketLongDerivative:
		return "long-derivative"
	case BucketShortDerivative:
		return "short-derivative"
	case BucketSkippedCrypto:
		return "skipped-crypto"
	}
	return "unknown"
}
