package reports

import (
	"encoding/xml"
	"fmt"

	"github.com/username/edavkifolio/src/models"
	"github.com/username/edavkifolio/src/utils"
)

// Derivatives filing (D-IFI): one TItem per (instrument, direction) group of
// the derivative asset class, with instrument-subtype-derived type codes and
// an explicit leverage-used flag per row.

type difiEnvelope struct {
	XMLName        xml.Name  `xml:"Envelope"`
	Xmlns          string    `xml:"xmlns,attr"`
	XmlnsEdp       string    `xml:"xmlns:edp,attr"`
	Header         EdpHeader `xml:"edp:Header"`
	AttachmentList string    `xml:"edp:AttachmentList"`
	Signatures     string    `xml:"edp:Signatures"`
	Body           difiBody  `xml:"body"`
}

type difiBody struct {
	BodyContent string  `xml:"edp:bodyContent"`
	DIFI        difiDoc `xml:"D_IFI"`
}

type difiDoc struct {
	PeriodStart     string     `xml:"PeriodStart"`
	PeriodEnd       string     `xml:"PeriodEnd"`
	TelephoneNumber string     `xml:"TelephoneNumber"`
	Email           string     `xml:"Email"`
	Items           []difiItem `xml:"TItem"`
}

type difiItem struct {
	TypeId        string             `xml:"TypeId"`
	Type          string             `xml:"Type"`
	TypeName      string             `xml:"TypeName"`
	Name          string             `xml:"Name"`
	Code          string             `xml:"Code,omitempty"`
	HasForeignTax string             `xml:"HasForeignTax"`
	SubItems      []difiSubItem      `xml:"TSubItem,omitempty"`
	ShortSubItems []difiShortSubItem `xml:"TShortSubItem,omitempty"`
}

// Long inventory rows: Purchase F1 date / F2 method / F3 quantity / F4 unit
// price / F9 leverage flag; Sale F5 date / F6 quantity / F7 unit price.
type difiSubItem struct {
	Purchase *difiPurchase `xml:"Purchase,omitempty"`
	Sale     *difiSale     `xml:"Sale,omitempty"`
	F8       string        `xml:"F8"`
}

type difiPurchase struct {
	F1 string `xml:"F1"`
	F2 string `xml:"F2"`
	F3 string `xml:"F3"`
	F4 string `xml:"F4"`
	F9 string `xml:"F9"`
}

type difiSale struct {
	F5 string `xml:"F5"`
	F6 string `xml:"F6"`
	F7 string `xml:"F7"`
}

// Short inventory rows open with a sale and close with a purchase; the
// schema numbers their fields differently from the long rows.
type difiShortSubItem struct {
	Sale     *difiShortSale     `xml:"Sale,omitempty"`
	Purchase *difiShortPurchase `xml:"Purchase,omitempty"`
	F8       string             `xml:"F8"`
}

type difiShortSale struct {
	F1 string `xml:"F1"`
	F2 string `xml:"F2"`
	F3 string `xml:"F3"`
	F9 string `xml:"F9"`
}

type difiShortPurchase struct {
	F4 string `xml:"F4"`
	F5 string `xml:"F5"`
	F6 string `xml:"F6"`
	F7 string `xml:"F7"`
}

// BuildDerivativesXML renders the D-IFI document for the derivative-asset
// long and short groups.
func BuildDerivativesXML(schema FilingSchema, taxpayer models.Taxpayer, year int, test bool, longGroups, shortGroups []*models.PositionGroup) ([]byte, error) {
	doc := difiEnvelope{
		Xmlns:    schema.Namespace,
		XmlnsEdp: edpNamespace,
		Header:   taxpayerHeader(taxpayer, test),
		Body: difiBody{
			DIFI: difiDoc{
				PeriodStart: fmt.Sprintf("%d-01-01", year),
				PeriodEnd:   fmt.Sprintf("%d-12-31", year),
			},
		},
	}

	for _, group := range longGroups {
		item := difiItemFor(group, false)
		for _, ev := range group.Events {
			sub := difiSubItem{F8: schema.Amount(ev.RunningBalance)}
			if ev.Quantity > 0 {
				sub.Purchase = &difiPurchase{
					F1: utils.FormatFilingDate(ev.Date),
					F2: "A",
					F3: schema.Amount(ev.Quantity),
					F4: schema.Amount(ev.UnitPrice),
					F9: leverageFlag(ev),
				}
			} else {
				sub.Sale = &difiSale{
					F5: utils.FormatFilingDate(ev.Date),
					F6: schema.Amount(-ev.Quantity),
					F7: schema.Amount(ev.UnitPrice),
				}
			}
			item.SubItems = append(item.SubItems, sub)
		}
		doc.Body.DIFI.Items = append(doc.Body.DIFI.Items, item)
	}

	for _, group := range shortGroups {
		item := difiItemFor(group, true)
		for _, ev := range group.Events {
			sub := difiShortSubItem{F8: schema.Amount(ev.RunningBalance)}
			if ev.Quantity > 0 {
				sub.Sale = &difiShortSale{
					F1: utils.FormatFilingDate(ev.Date),
					F2: schema.Amount(ev.Quantity),
					F3: schema.Amount(ev.UnitPrice),
					F9: leverageFlag(ev),
				}
			} else {
				sub.Purchase = &difiShortPurchase{
					F4: utils.FormatFilingDate(ev.Date),
					F5: "A",
					F6: schema.Amount(-ev.Quantity),
					F7: schema.Amount(ev.UnitPrice),
				}
			}
			item.ShortSubItems = append(item.ShortSubItems, sub)
		}
		doc.Body.DIFI.Items = append(doc.Body.DIFI.Items, item)
	}

	return marshalFiling(doc)
}

func difiItemFor(group *models.PositionGroup, short bool) difiItem {
	typeId := "PLIFI"
	if short {
		typeId = "PLIFIShort"
	}
	code, label := DerivativeTypeCode(group.InstrumentType)
	return difiItem{
		TypeId:        typeId,
		Type:          code,
		TypeName:      label,
		Name:          group.Name,
		Code:          group.Symbol,
		HasForeignTax: "false",
	}
}

func leverageFlag(ev models.LotEvent) string {
	return fmt.Sprintf("%t", ev.Leverage > 1)
}
