package models

import "strings"

// CompanyInfo is one reference row of company metadata, keyed by symbol and
// by ISIN. Loaded once per run and read-only thereafter.
type CompanyInfo struct {
	Symbol      string
	ISIN        string
	Name        string
	Address     string
	CountryCode string
}

// CompanyList wraps the loaded reference rows with the two lookups the
// converter needs.
type CompanyList struct {
	bySymbol map[string]CompanyInfo
	byISIN   map[string]CompanyInfo
}

func NewCompanyList(rows []CompanyInfo) *CompanyList {
	l := &CompanyList{
		bySymbol: make(map[string]CompanyInfo, len(rows)),
		byISIN:   make(map[string]CompanyInfo, len(rows)),
	}
	for _, row := range rows {
		l.bySymbol[strings.ToUpper(row.Symbol)] = row
		if row.ISIN != "" {
			l.byISIN[row.ISIN] = row
		}
	}
	return l
}

func (l *CompanyList) BySymbol(symbol string) (CompanyInfo, bool) {
	info, ok := l.bySymbol[strings.ToUpper(symbol)]
	return info, ok
}

func (l *CompanyList) ByISIN(isin string) (CompanyInfo, bool) {
	info, ok := l.byISIN[isin]
	return info, ok
}

// CryptoList is the optional cryptocurrency reference table consulted by the
// crypto exclusion. Matching is case-insensitive on both symbol and name.
type CryptoList struct {
	symbols map[string]bool
	names   map[string]bool
}

func NewCryptoList(symbols, names []string) *CryptoList {
	l := &CryptoList{
		symbols: make(map[string]bool, len(symbols)),
		names:   make(map[string]bool, len(names)),
	}
	for _, s := range symbols {
		l.symbols[strings.ToUpper(s)] = true
	}
	for _, n := range names {
		l.names[strings.ToUpper(n)] = true
	}
	return l
}

// Matches reports whether the instrument is a known cryptocurrency by
// symbol or by display name.
func (l *CryptoList) Matches(symbol, name string) bool {
	if l == nil {
		return false
	}
	if symbol != "" && l.symbols[strings.ToUpper(symbol)] {
		return true
	}
	return name != "" && l.names[strings.ToUpper(name)]
}
