package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectStatementFormat(t *testing.T) {
	tests := []struct {
		name       string
		sample     string
		wantLayout string
		wantComma  bool
		wantErr    bool
	}{
		{
			name:       "slash date-time pins period decimals",
			sample:     "02/06/2020 13:57:14",
			wantLayout: "02/01/2006 15:04:05",
			wantComma:  false,
		},
		{
			name:       "dotted date-time pins comma decimals",
			sample:     "02.06.2020 13:57:14",
			wantLayout: "02.01.2006 15:04:05",
			wantComma:  true,
		},
		{
			name:       "slash date only",
			sample:     "02/06/2020",
			wantLayout: "02/01/2006",
			wantComma:  false,
		},
		{
			name:       "dotted date only",
			sample:     "02.06.2020",
			wantLayout: "02.01.2006",
			wantComma:  true,
		},
		{
			name:    "ISO date is not a statement format",
			sample:  "2020-06-02",
			wantErr: true,
		},
		{
			name:    "garbage",
			sample:  "yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := DetectStatementFormat(tt.sample)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnrecognizedDateFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLayout, format.DateLayout)
			assert.Equal(t, tt.wantComma, format.DecimalComma)
		})
	}
}

func TestStatementFormat_ParseFloat(t *testing.T) {
	period := StatementFormat{DateLayout: "02/01/2006", DecimalComma: false}
	comma := StatementFormat{DateLayout: "02.01.2006", DecimalComma: true}

	v, err := period.ParseFloat("1234.56")
	require.NoError(t, err)
	assert.Equal(t, 1234.56, v)

	v, err = comma.ParseFloat("1234,56")
	require.NoError(t, err)
	assert.Equal(t, 1234.56, v)

	_, err = period.ParseFloat("12x")
	assert.ErrorIs(t, err, ErrBadNumber)
}

func TestStatementFormat_ParseDate(t *testing.T) {
	format := StatementFormat{DateLayout: "02/01/2006 15:04:05"}

	parsed, err := format.ParseDate("31/12/2024 09:30:00")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, 31, parsed.Day())

	_, err = format.ParseDate("31/12/2024")
	assert.Error(t, err)
}
