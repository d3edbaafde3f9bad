package services

import (
	"context"

	"github.com/username/edavkifolio/src/models"
	"github.com/username/edavkifolio/src/processors"
)

// ConversionResult holds everything a run produced, for the end-of-run
// summary and the run audit record.
type ConversionResult struct {
	RunID      string
	ReportYear int
	TestFiling bool

	TradeCount           int
	DividendCount        int
	SkippedDividendCount int

	OutputFiles []string

	// Summary material.
	SkippedCryptoGroups []*models.PositionGroup
	MissingCompanies    []processors.MissingCompany
	Warnings            []string
}

// ConversionService runs one statement batch through the full pipeline and
// writes the filing documents and audit workbooks.
type ConversionService interface {
	Convert(ctx context.Context, inputPaths []string) (*ConversionResult, error)
}

// RateFeedService provides the daily exchange-rate table, downloading and
// caching the authority's feed as needed.
type RateFeedService interface {
	RateTable(ctx context.Context) (*processors.RateTable, error)
}

// TaxpayerService manages the persisted filing identity.
type TaxpayerService interface {
	Get() (models.Taxpayer, error)
	Save(taxpayer models.Taxpayer) error
	// Ensure returns the stored taxpayer, prompting interactively for one
	// when none exists yet.
	Ensure() (models.Taxpayer, error)
}
