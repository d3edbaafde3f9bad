package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/edavkifolio/src/models"
)

var testTaxpayer = models.Taxpayer{TaxNumber: "12345678", Type: "FO"}

func filingDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func appleGroup() *models.PositionGroup {
	return &models.PositionGroup{
		Name:   "Apple",
		Symbol: "AAPL",
		IsFund: false,
		Events: []models.LotEvent{
			{PositionID: 1, Quantity: 10, Date: filingDay("2024-03-01"), UnitPrice: 90.909090909, RunningBalance: 10},
			{PositionID: 1, Quantity: -10, Date: filingDay("2024-06-10"), UnitPrice: 100, RunningBalance: 0},
		},
	}
}

func TestBuildCapitalGainsXML(t *testing.T) {
	out, err := BuildCapitalGainsXML(CapitalGainsSchema(8), testTaxpayer, 2024, false,
		[]*models.PositionGroup{appleGroup()}, nil)
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, `xmlns="http://edavki.durs.si/Documents/Schemas/Doh_KDVP_9.xsd"`)
	assert.Contains(t, xml, "<edp:taxNumber>12345678</edp:taxNumber>")
	assert.Contains(t, xml, "<edp:DocumentWorkflowID>O</edp:DocumentWorkflowID>")
	assert.Contains(t, xml, "<Year>2024</Year>")
	assert.Contains(t, xml, "<PeriodStart>2024-01-01</PeriodStart>")
	assert.Contains(t, xml, "<PeriodEnd>2024-12-31</PeriodEnd>")
	assert.Contains(t, xml, "<SecurityCount>1</SecurityCount>")
	assert.Contains(t, xml, "<SecurityShortCount>0</SecurityShortCount>")
	assert.Contains(t, xml, "<InventoryListType>PLVP</InventoryListType>")
	assert.Contains(t, xml, "<Code>AAPL</Code>")
	assert.Contains(t, xml, "<IsFond>false</IsFond>")

	// Acquisition row: purchase code B, 8-place fixed point, running balance.
	assert.Contains(t, xml, "<F1>2024-03-01</F1>")
	assert.Contains(t, xml, "<F2>B</F2>")
	assert.Contains(t, xml, "<F3>10.00000000</F3>")
	assert.Contains(t, xml, "<F4>90.90909091</F4>")
	assert.Contains(t, xml, "<F5>0.0000</F5>")
	assert.Contains(t, xml, "<F8>10.00000000</F8>")

	// Disposal row.
	assert.Contains(t, xml, "<F6>2024-06-10</F6>")
	assert.Contains(t, xml, "<F7>10.00000000</F7>")
	assert.Contains(t, xml, "<F9>100.00000000</F9>")
	assert.Contains(t, xml, "<F8>0.00000000</F8>")
}

func TestBuildCapitalGainsXML_ShortUsesCodeA(t *testing.T) {
	out, err := BuildCapitalGainsXML(CapitalGainsSchema(8), testTaxpayer, 2024, true,
		nil, []*models.PositionGroup{appleGroup()})
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, "<edp:DocumentWorkflowID>I</edp:DocumentWorkflowID>", "test filings use the test workflow")
	assert.Contains(t, xml, "<InventoryListType>PLVPSHORT</InventoryListType>")
	assert.Contains(t, xml, "<SecuritiesShort>")
	assert.Contains(t, xml, "<F2>A</F2>")
	assert.NotContains(t, xml, "<Securities>")
}

func TestBuildDerivativesXML(t *testing.T) {
	group := &models.PositionGroup{
		Name:           "Gold CFD",
		Symbol:         "GOLD",
		InstrumentType: "CFD",
		Events: []models.LotEvent{
			{PositionID: 5, Quantity: 2, Date: filingDay("2024-02-01"), UnitPrice: 1800, Leverage: 10, RunningBalance: 2},
			{PositionID: 5, Quantity: -2, Date: filingDay("2024-02-20"), UnitPrice: 1850, Leverage: 10, RunningBalance: 0},
		},
	}

	out, err := BuildDerivativesXML(DerivativesSchema(8), testTaxpayer, 2024, false,
		[]*models.PositionGroup{group}, nil)
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, `xmlns="http://edavki.durs.si/Documents/Schemas/D_IFI_4.xsd"`)
	assert.Contains(t, xml, "<TypeId>PLIFI</TypeId>")
	assert.Contains(t, xml, "<Type>02</Type>")
	assert.Contains(t, xml, "<TypeName>finančne pogodbe na razliko</TypeName>")
	assert.Contains(t, xml, "<F9>true</F9>", "leveraged row carries the leverage flag")
	assert.Contains(t, xml, "<F2>A</F2>")
	assert.Contains(t, xml, "<F8>0.00000000</F8>")
}

func TestBuildDerivativesXML_ShortRowShape(t *testing.T) {
	group := &models.PositionGroup{
		Name:           "Oil Future",
		InstrumentType: "FUT",
		Events: []models.LotEvent{
			{PositionID: 9, Quantity: 1, Date: filingDay("2024-04-01"), UnitPrice: 80, Leverage: 0, RunningBalance: 1},
			{PositionID: 9, Quantity: -1, Date: filingDay("2024-04-15"), UnitPrice: 78, Leverage: 0, RunningBalance: 0},
		},
	}

	out, err := BuildDerivativesXML(DerivativesSchema(4), testTaxpayer, 2024, false,
		nil, []*models.PositionGroup{group})
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, "<TypeId>PLIFIShort</TypeId>")
	assert.Contains(t, xml, "<Type>01</Type>")
	assert.Contains(t, xml, "<TShortSubItem>")
	// Short items open with a Sale (F1..F3) and close with a Purchase (F4..F7).
	assert.Contains(t, xml, "<F1>2024-04-01</F1>")
	assert.Contains(t, xml, "<F2>1.0000</F2>")
	assert.Contains(t, xml, "<F9>false</F9>")
	assert.Contains(t, xml, "<F4>2024-04-15</F4>")
	assert.Contains(t, xml, "<F5>A</F5>")
	assert.Contains(t, xml, "<F6>1.0000</F6>")
}

func TestBuildDividendXML(t *testing.T) {
	records := []*models.DividendRecord{
		{
			PositionIDs:    []int64{1, 2},
			Symbol:         "AAPL",
			InstrumentName: "Apple",
			ISIN:           "US0378331005",
			Date:           filingDay("2024-03-15"),
			GrossAmount:    100,
			WithholdingTax: 15,
			Address:        "One Apple Park Way, Cupertino",
			Country:        "US",
		},
		{
			Symbol:      "SKIPME",
			Date:        filingDay("2024-04-01"),
			GrossAmount: 0,
			Skipped:     true,
		},
		{
			Symbol:      "NONAME",
			Date:        filingDay("2024-05-01"),
			GrossAmount: 10,
		},
	}

	out, err := BuildDividendXML(DividendSchema(), testTaxpayer, 2024, false, records)
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, `xmlns="http://edavki.durs.si/Documents/Schemas/Doh_Div_3.xsd"`)
	assert.Contains(t, xml, "<Period>2024</Period>")
	assert.Contains(t, xml, "<PayerIdentificationNumber>US0378331005</PayerIdentificationNumber>")
	assert.Contains(t, xml, "<PayerName>Apple</PayerName>")
	assert.Contains(t, xml, "<PayerCountry>US</PayerCountry>")
	assert.Contains(t, xml, "<Type>1</Type>")
	assert.Contains(t, xml, "<Value>100.00</Value>")
	assert.Contains(t, xml, "<ForeignTax>15.00</ForeignTax>")
	assert.Contains(t, xml, "<SourceCountry>US</SourceCountry>")
	assert.Contains(t, xml, "<ReliefStatement></ReliefStatement>")

	assert.NotContains(t, xml, "SKIPME", "skipped records stay out of the filing")
	assert.Contains(t, xml, "<PayerName>NONAME</PayerName>", "blank name falls back to symbol")
}
