package reports

import (
	"github.com/shopspring/decimal"

	"github.com/username/edavkifolio/src/models"
)

// FilingSchema carries the schema-version-specific shape of one filing
// document: its namespace and the fixed-point precision its numeric fields
// are formatted to. Emitters take the schema as a value instead of branching
// on a version at every call site.
type FilingSchema struct {
	Namespace string
	Precision int32
}

const edpNamespace = "http://edavki.durs.si/Documents/Schemas/EDP-Common-1.xsd"

// Schema constructors. The capital-gains and derivatives schemas have been
// published with both 4- and 8-decimal numeric fields across versions, so
// the precision is a parameter; the dividend schema is fixed at 2.
func CapitalGainsSchema(precision int) FilingSchema {
	return FilingSchema{Namespace: "http://edavki.durs.si/Documents/Schemas/Doh_KDVP_9.xsd", Precision: int32(precision)}
}

func DerivativesSchema(precision int) FilingSchema {
	return FilingSchema{Namespace: "http://edavki.durs.si/Documents/Schemas/D_IFI_4.xsd", Precision: int32(precision)}
}

func DividendSchema() FilingSchema {
	return FilingSchema{Namespace: "http://edavki.durs.si/Documents/Schemas/Doh_Div_3.xsd", Precision: 2}
}

// Amount renders a value with the schema's exact fixed-point precision.
// decimal avoids the float formatting quirks a %.Nf of a long division can
// produce at 8 places.
func (s FilingSchema) Amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(s.Precision)
}

// WorkflowID returns the document workflow id: "I" for a test filing, "O"
// for a real one.
func WorkflowID(test bool) string {
	if test {
		return "I"
	}
	return "O"
}

// Acquisition-method codes in the capital-gains filing are fixed per bucket:
// "B" (purchase) for long acquisitions, "A" (capital contribution) for short
// acquisitions.
func acquisitionCode(short bool) string {
	if short {
		return "A"
	}
	return "B"
}

// DerivativeTypeCode maps the statement's instrument-type tag to the
// derivatives filing's 2-digit type code and label.
func DerivativeTypeCode(instrumentType string) (string, string) {
	switch instrumentType {
	case "FUT":
		return "01", "terminska pogodba"
	case "CFD":
		return "02", "finančne pogodbe na razliko"
	case "OPT":
		return "03", "opcija in certifikat"
	default:
		return "04", "drugo"
	}
}

// taxpayerHeader builds the common edp envelope header.
func taxpayerHeader(taxpayer models.Taxpayer, test bool) EdpHeader {
	return EdpHeader{
		Taxpayer: EdpTaxpayer{
			TaxNumber:    taxpayer.TaxNumber,
			TaxpayerType: taxpayer.Type,
		},
		Workflow: EdpWorkflow{DocumentWorkflowID: WorkflowID(test)},
	}
}

// EdpHeader, EdpTaxpayer and EdpWorkflow model the envelope header shared by
// every filing document.
type EdpHeader struct {
	Taxpayer EdpTaxpayer `xml:"edp:taxpayer"`
	Workflow EdpWorkflow `xml:"edp:Workflow"`
}

type EdpTaxpayer struct {
	TaxNumber    string `xml:"edp:taxNumber"`
	TaxpayerType string `xml:"edp:taxpayerType"`
}

type EdpWorkflow struct {
	DocumentWorkflowID string `xml:"edp:DocumentWorkflowID"`
}
