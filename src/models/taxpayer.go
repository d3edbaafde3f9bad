package models

// Taxpayer is the filer's identity, persisted locally and stamped into every
// filing envelope. Type is FO (natural person), PO (legal person) or SP
// (sole proprietor).
type Taxpayer struct {
	TaxNumber string
	Type      string
}
