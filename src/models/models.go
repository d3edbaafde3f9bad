package models

// RawTrade is one closed-position row from a statement's Closed Positions
// sheet. Values are kept as strings: the statement's date and number
// conventions are not known until format detection has run.
type RawTrade struct {
	PositionID string `json:"position_id"`
	Action     string `json:"action"` // "Buy AAPL", "Sell EURUSD", ...
	Amount     string `json:"amount"`
	Units      string `json:"units"`
	OpenDate   string `json:"open_date"`
	CloseDate  string `json:"close_date"`
	Leverage   string `json:"leverage"`
	Profit     string `json:"profit"`
	AssetType  string `json:"asset_type"` // statement instrument-type tag, e.g. "Stocks", "CFD"
	ISIN       string `json:"isin"`
}

// RawTransaction is one account-activity row. Only the position id and the
// Details column (usually "SYMBOL/CURRENCY") matter to the converter.
type RawTransaction struct {
	Date       string `json:"date"`
	Type       string `json:"type"`
	Details    string `json:"details"`
	PositionID string `json:"position_id"`
	Amount     string `json:"amount"`
}

// RawDividend is one dividend-payment row. The statement reports amounts both
// in the trade currency and already converted to the reporting currency.
type RawDividend struct {
	Date                  string `json:"date"`
	InstrumentName        string `json:"instrument_name"`
	NetAmount             string `json:"net_amount"`
	NetAmountReporting    string `json:"net_amount_reporting"`
	WithholdingRate       string `json:"withholding_rate"`
	WithholdingTaxAmt     string `json:"withholding_tax_amount"`
	WithholdingTaxAmtRept string `json:"withholding_tax_amount_reporting"`
	PositionID            string `json:"position_id"`
	Type                  string `json:"type"`
	ISIN                  string `json:"isin"`
}

// StatementData bundles the three record streams one statement export
// provides. Multiple statements concatenate stream-wise.
type StatementData struct {
	Trades       []RawTrade
	Transactions []RawTransaction
	Dividends    []RawDividend
}

// Append merges another statement's records into this one.
func (s *StatementData) Append(other StatementData) {
	s.Trades = append(s.Trades, other.Trades...)
	s.Transactions = append(s.Transactions, other.Transactions...)
	s.Dividends = append(s.Dividends, other.Dividends...)
}
