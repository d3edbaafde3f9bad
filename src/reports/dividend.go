package reports

import (
	"encoding/xml"

	"github.com/username/edavkifolio/src/models"
	"github.com/username/edavkifolio/src/utils"
)

// Dividend filing (Doh-Div): one entry per reconciled dividend record not
// marked skipped. Dividend entries sit directly under the body element, as
// siblings of the Doh_Div period block.

type divEnvelope struct {
	XMLName        xml.Name  `xml:"Envelope"`
	Xmlns          string    `xml:"xmlns,attr"`
	XmlnsEdp       string    `xml:"xmlns:edp,attr"`
	Header         EdpHeader `xml:"edp:Header"`
	AttachmentList string    `xml:"edp:AttachmentList"`
	Signatures     string    `xml:"edp:Signatures"`
	Body           divBody   `xml:"body"`
}

type divBody struct {
	DohDiv    dohDiv     `xml:"Doh_Div"`
	Dividends []divEntry `xml:"Dividend"`
}

type dohDiv struct {
	Period int `xml:"Period"`
}

type divEntry struct {
	Date                      string  `xml:"Date"`
	PayerIdentificationNumber string  `xml:"PayerIdentificationNumber,omitempty"`
	PayerName                 string  `xml:"PayerName"`
	PayerAddress              string  `xml:"PayerAddress,omitempty"`
	PayerCountry              string  `xml:"PayerCountry,omitempty"`
	Type                      string  `xml:"Type"`
	Value                     string  `xml:"Value"`
	ForeignTax                string  `xml:"ForeignTax"`
	SourceCountry             string  `xml:"SourceCountry,omitempty"`
	ReliefStatement           relief  `xml:"ReliefStatement"`
}

// ReliefStatement must be present but empty; it is reserved for manual
// completion with the applicable double-taxation treaty reference.
type relief struct{}

// BuildDividendXML renders the Doh-Div document. Skipped records are
// excluded here; they still appear in the audit workbook.
func BuildDividendXML(schema FilingSchema, taxpayer models.Taxpayer, year int, test bool, records []*models.DividendRecord) ([]byte, error) {
	doc := divEnvelope{
		Xmlns:    schema.Namespace,
		XmlnsEdp: edpNamespace,
		Header:   taxpayerHeader(taxpayer, test),
		Body:     divBody{DohDiv: dohDiv{Period: year}},
	}

	for _, record := range records {
		if record.Skipped {
			continue
		}
		entry := divEntry{
			Date:                      utils.FormatFilingDate(record.Date),
			PayerIdentificationNumber: record.ISIN,
			PayerName:                 record.InstrumentName,
			PayerAddress:              record.Address,
			PayerCountry:              record.Country,
			Type:                      "1",
			Value:                     schema.Amount(record.GrossAmount),
			ForeignTax:                schema.Amount(record.WithholdingTax),
			SourceCountry:             record.Country,
		}
		if entry.PayerName == "" {
			entry.PayerName = record.Symbol
		}
		doc.Body.Dividends = append(doc.Body.Dividends, entry)
	}

	return marshalFiling(doc)
}
