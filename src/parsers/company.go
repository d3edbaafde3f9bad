package parsers

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/username/edavkifolio/src/models"
)

const companySheet = "Info"

// LoadCompanyList reads the company-metadata workbook (Symbol, ISIN, Name,
// Address, CountryCode on the Info sheet). The list is loaded once per run
// and read-only thereafter.
func LoadCompanyList(path string) (*models.CompanyList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening company metadata %q: %w", path, err)
	}
	defer f.Close()

	wb, err := excelize.OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading company metadata %q: %w", path, err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(companySheet)
	if err != nil {
		return nil, fmt.Errorf("company metadata %q: reading sheet %q: %w", path, companySheet, err)
	}
	if len(rows) == 0 {
		return models.NewCompanyList(nil), nil
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cell := func(row []string, header string) string {
		i, ok := idx[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var companies []models.CompanyInfo
	for _, row := range rows[1:] {
		symbol := cell(row, "symbol")
		if symbol == "" {
			continue
		}
		companies = append(companies, models.CompanyInfo{
			Symbol:      symbol,
			ISIN:        cell(row, "isin"),
			Name:        cell(row, "name"),
			Address:     cell(row, "address"),
			CountryCode: cell(row, "countrycode"),
		})
	}
	return models.NewCompanyList(companies), nil
}
