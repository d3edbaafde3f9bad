package processors

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/username/edavkifolio/src/models"
)

// RateTable is a date-indexed table of daily exchange rates against the
// reporting currency. Lookups for a date with no quotation (weekends,
// holidays) fall back to the nearest earlier quoted date within a bounded
// window; a later date is never used.
type RateTable struct {
	rates        map[string]map[string]float64 // date (YYYYMMDD) -> currency -> rate
	fallbackDays int
}

const rateDateKey = "20060102"

// NewRateTable builds a table from a parsed feed. Feed values that do not
// parse as numbers are rejected up front so lookups stay pure.
func NewRateTable(feed *models.RateFeed, fallbackDays int) (*RateTable, error) {
	t := &RateTable{
		rates:        make(map[string]map[string]float64, len(feed.Days)),
		fallbackDays: fallbackDays,
	}
	for _, day := range feed.Days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return nil, fmt.Errorf("rate feed: bad date %q: %w", day.Date, err)
		}
		byCurrency := make(map[string]float64, len(day.Rates))
		for _, r := range day.Rates {
			value, err := strconv.ParseFloat(r.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("rate feed: bad rate %q for %s on %s: %w", r.Value, r.Currency, day.Date, err)
			}
			byCurrency[r.Currency] = value
		}
		t.rates[date.Format(rateDateKey)] = byCurrency
	}
	return t, nil
}

// NewRateTableFromMap builds a table directly from per-date rates, keyed by
// YYYYMMDD. Used by tests and by callers that already hold parsed data.
func NewRateTableFromMap(rates map[string]map[string]float64, fallbackDays int) *RateTable {
	return &RateTable{rates: rates, fallbackDays: fallbackDays}
}

// Rate returns the conversion rate for the currency on the given date,
// preferring the exact date and otherwise walking back day by day up to the
// fallback window. Wraps ErrRateUnavailable when the window is exhausted.
func (t *RateTable) Rate(date time.Time, currency string) (float64, error) {
	if rate, ok := t.lookup(date, currency); ok {
		return rate, nil
	}
	for i := 0; i < t.fallbackDays; i++ {
		date = date.AddDate(0, 0, -1)
		if rate, ok := t.lookup(date, currency); ok {
			return rate, nil
		}
	}
	return 0, fmt.Errorf("%w: no %s rate on or within %d days before %s",
		ErrRateUnavailable, currency, t.fallbackDays, date.AddDate(0, 0, t.fallbackDays).Format("2006-01-02"))
}

func (t *RateTable) lookup(date time.Time, currency string) (float64, bool) {
	byCurrency, ok := t.rates[date.Format(rateDateKey)]
	if !ok {
		return 0, false
	}
	rate, ok := byCurrency[currency]
	return rate, ok
}

// Dates returns the quoted dates in ascending order.
func (t *RateTable) Dates() []string {
	dates := make([]string, 0, len(t.rates))
	for d := range t.rates {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Len reports the number of quoted dates.
func (t *RateTable) Len() int {
	return len(t.rates)
}
