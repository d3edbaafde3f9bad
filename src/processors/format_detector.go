package processors

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StatementFormat pins the date layout and decimal-separator convention of
// one statement batch. It is established once from the first date sample and
// passed explicitly to every parsing call; mixing conventions within a batch
// is not supported.
type StatementFormat struct {
	DateLayout   string
	DecimalComma bool
}

// Known statement conventions, tried in order. The dotted layouts come from
// locales that also write decimals with a comma.
var knownFormats = []StatementFormat{
	{DateLayout: "02/01/2006 15:04:05", DecimalComma: false},
	{DateLayout: "02.01.2006 15:04:05", DecimalComma: true},
	{DateLayout: "02/01/2006", DecimalComma: false},
	{DateLayout: "02.01.2006", DecimalComma: true},
}

// DetectStatementFormat determines the batch's conventions from a sample
// date string. Wraps ErrUnrecognizedDateFormat when no known format parses.
func DetectStatementFormat(sample string) (StatementFormat, error) {
	for _, f := range knownFormats {
		if _, err := time.Parse(f.DateLayout, sample); err == nil {
			return f, nil
		}
	}
	return StatementFormat{}, fmt.Errorf("%w: %q", ErrUnrecognizedDateFormat, sample)
}

// ParseDate parses a statement date under the pinned layout.
func (f StatementFormat) ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(f.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q with layout %q: %w", s, f.DateLayout, err)
	}
	return t, nil
}

// ParseFloat parses a statement number under the pinned decimal convention.
func (f StatementFormat) ParseFloat(s string) (float64, error) {
	if f.DecimalComma {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	return v, nil
}
