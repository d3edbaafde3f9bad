package models

import "encoding/xml"

// RateFeed mirrors the daily exchange-rate XML feed published by the central
// bank: one <tecajnica> element per date, one <tecaj> per currency.
type RateFeed struct {
	XMLName xml.Name       `xml:"DtecBS"`
	Days    []RateFeedDate `xml:"tecajnica"`
}

type RateFeedDate struct {
	Date  string         `xml:"datum,attr"` // YYYY-MM-DD
	Rates []RateFeedRate `xml:"tecaj"`
}

type RateFeedRate struct {
	Currency string `xml:"oznaka,attr"`
	Value    string `xml:",chardata"`
}
