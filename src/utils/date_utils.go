package utils

import "time"

// FilingDateFormat is the date layout the tax authority's schemas use.
const FilingDateFormat = "2006-01-02"

// FormatFilingDate renders a date the way the filing schemas expect it.
func FormatFilingDate(t time.Time) string {
	return t.Format(FilingDateFormat)
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
