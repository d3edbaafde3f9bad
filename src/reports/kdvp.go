package reports

import (
	"encoding/xml"
	"fmt"

	"github.com/username/edavkifolio/src/models"
	"github.com/username/edavkifolio/src/utils"
)

// Capital-gains filing (Doh-KDVP): one inventory item per (instrument,
// direction) group of the normal asset class, each row an acquisition or
// disposal with the running balance in F8.

type kdvpEnvelope struct {
	XMLName        xml.Name  `xml:"Envelope"`
	Xmlns          string    `xml:"xmlns,attr"`
	XmlnsEdp       string    `xml:"xmlns:edp,attr"`
	Header         EdpHeader `xml:"edp:Header"`
	AttachmentList string    `xml:"edp:AttachmentList"`
	Signatures     string    `xml:"edp:Signatures"`
	Body           kdvpBody  `xml:"body"`
}

type kdvpBody struct {
	BodyContent string  `xml:"edp:bodyContent"`
	DohKDVP     dohKDVP `xml:"Doh_KDVP"`
}

type dohKDVP struct {
	KDVP  kdvpSummary `xml:"KDVP"`
	Items []kdvpItem  `xml:"KDVPItem"`
}

type kdvpSummary struct {
	DocumentWorkflowID             string `xml:"DocumentWorkflowID"`
	Year                           int    `xml:"Year"`
	PeriodStart                    string `xml:"PeriodStart"`
	PeriodEnd                      string `xml:"PeriodEnd"`
	IsResident                     string `xml:"IsResident"`
	SecurityCount                  int    `xml:"SecurityCount"`
	SecurityShortCount             int    `xml:"SecurityShortCount"`
	SecurityWithContractCount      int    `xml:"SecurityWithContractCount"`
	SecurityWithContractShortCount int    `xml:"SecurityWithContractShortCount"`
	ShareCount                     int    `xml:"ShareCount"`
}

type kdvpItem struct {
	InventoryListType      string          `xml:"InventoryListType"`
	Name                   string          `xml:"Name"`
	HasForeignTax          string          `xml:"HasForeignTax"`
	HasLossTransfer        string          `xml:"HasLossTransfer"`
	ForeignTransfer        string          `xml:"ForeignTransfer"`
	TaxDecreaseConformance string          `xml:"TaxDecreaseConformance"`
	Securities             *kdvpSecurities `xml:"Securities,omitempty"`
	SecuritiesShort        *kdvpSecurities `xml:"SecuritiesShort,omitempty"`
}

type kdvpSecurities struct {
	Code   string    `xml:"Code,omitempty"`
	Name   string    `xml:"Name"`
	IsFond string    `xml:"IsFond"`
	Rows   []kdvpRow `xml:"Row"`
}

type kdvpRow struct {
	ID       int           `xml:"ID"`
	Purchase *kdvpPurchase `xml:"Purchase,omitempty"`
	Sale     *kdvpSale     `xml:"Sale,omitempty"`
	F8       string        `xml:"F8"`
}

// Purchase: F1 acquisition date, F2 acquisition-method code, F3 quantity,
// F4 unit price, F5 inheritance/gift tax (always zero here).
type kdvpPurchase struct {
	F1 string `xml:"F1"`
	F2 string `xml:"F2"`
	F3 string `xml:"F3"`
	F4 string `xml:"F4"`
	F5 string `xml:"F5"`
}

// Sale: F6 disposal date, F7 quantity disposed, F9 unit value at disposal.
type kdvpSale struct {
	F6 string `xml:"F6"`
	F7 string `xml:"F7"`
	F9 string `xml:"F9"`
}

const kdvpZeroTax = "0.0000"

// BuildCapitalGainsXML renders the Doh-KDVP document for the normal-asset
// long and short groups.
func BuildCapitalGainsXML(schema FilingSchema, taxpayer models.Taxpayer, year int, test bool, longGroups, shortGroups []*models.PositionGroup) ([]byte, error) {
	doc := kdvpEnvelope{
		Xmlns:    schema.Namespace,
		XmlnsEdp: edpNamespace,
		Header:   taxpayerHeader(taxpayer, test),
		Body: kdvpBody{
			DohKDVP: dohKDVP{
				KDVP: kdvpSummary{
					DocumentWorkflowID: WorkflowID(test),
					Year:               year,
					PeriodStart:        fmt.Sprintf("%d-01-01", year),
					PeriodEnd:          fmt.Sprintf("%d-12-31", year),
					IsResident:         "true",
					SecurityCount:      len(longGroups),
					SecurityShortCount: len(shortGroups),
				},
			},
		},
	}

	for _, group := range longGroups {
		item := kdvpItemFor(group, false)
		item.Securities = securitiesFor(schema, group, false)
		doc.Body.DohKDVP.Items = append(doc.Body.DohKDVP.Items, item)
	}
	for _, group := range shortGroups {
		item := kdvpItemFor(group, true)
		item.SecuritiesShort = securitiesFor(schema, group, true)
		doc.Body.DohKDVP.Items = append(doc.Body.DohKDVP.Items, item)
	}

	return marshalFiling(doc)
}

func kdvpItemFor(group *models.PositionGroup, short bool) kdvpItem {
	listType := "PLVP"
	if short {
		listType = "PLVPSHORT"
	}
	return kdvpItem{
		InventoryListType:      listType,
		Name:                   group.Name,
		HasForeignTax:          "false",
		HasLossTransfer:        "false",
		ForeignTransfer:        "false",
		TaxDecreaseConformance: "false",
	}
}

func securitiesFor(schema FilingSchema, group *models.PositionGroup, short bool) *kdvpSecurities {
	sec := &kdvpSecurities{
		Name:   group.Name,
		IsFond: fmt.Sprintf("%t", group.IsFund),
	}
	if group.Symbol != "" {
		// The schema caps the code at 10 characters.
		code := group.Symbol
		if len(code) > 10 {
			code = code[:10]
		}
		sec.Code = code
	}

	for i, ev := range group.Events {
		row := kdvpRow{ID: i, F8: schema.Amount(ev.RunningBalance)}
		if ev.Quantity >= 0 {
			row.Purchase = &kdvpPurchase{
				F1: utils.FormatFilingDate(ev.Date),
				F2: acquisitionCode(short),
				F3: schema.Amount(ev.Quantity),
				F4: schema.Amount(ev.UnitPrice),
				F5: kdvpZeroTax,
			}
		} else {
			row.Sale = &kdvpSale{
				F6: utils.FormatFilingDate(ev.Date),
				F7: schema.Amount(-ev.Quantity),
				F9: schema.Amount(ev.UnitPrice),
			}
		}
		sec.Rows = append(sec.Rows, row)
	}
	return sec
}

// marshalFiling renders a document tree as indented XML with a declaration,
// the shape the authority's upload portal accepts.
func marshalFiling(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("marshalling filing: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
