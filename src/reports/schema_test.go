package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilingSchema_Amount(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		want      string
	}{
		{name: "8 places", precision: 8, value: 90.90909090909, want: "90.90909091"},
		{name: "4 places", precision: 4, value: 90.90909090909, want: "90.9091"},
		{name: "whole number padded", precision: 8, value: 100, want: "100.00000000"},
		{name: "negative", precision: 4, value: -2.5, want: "-2.5000"},
		{name: "zero", precision: 8, value: 0, want: "0.00000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := CapitalGainsSchema(tt.precision)
			assert.Equal(t, tt.want, schema.Amount(tt.value))
		})
	}
}

func TestDividendSchema_TwoDecimalPlaces(t *testing.T) {
	schema := DividendSchema()
	assert.Equal(t, "100.00", schema.Amount(100))
	assert.Equal(t, "15.35", schema.Amount(15.345000001))
}

func TestWorkflowID(t *testing.T) {
	assert.Equal(t, "I", WorkflowID(true))
	assert.Equal(t, "O", WorkflowID(false))
}

func TestDerivativeTypeCode(t *testing.T) {
	tests := []struct {
		tag       string
		wantCode  string
		wantLabel string
	}{
		{tag: "FUT", wantCode: "01", wantLabel: "terminska pogodba"},
		{tag: "CFD", wantCode: "02", wantLabel: "finančne pogodbe na razliko"},
		{tag: "OPT", wantCode: "03", wantLabel: "opcija in certifikat"},
		{tag: "FOP", wantCode: "04", wantLabel: "drugo"},
		{tag: "", wantCode: "04", wantLabel: "drugo"},
	}

	for _, tt := range tests {
		code, label := DerivativeTypeCode(tt.tag)
		assert.Equal(t, tt.wantCode, code)
		assert.Equal(t, tt.wantLabel, label)
	}
}
