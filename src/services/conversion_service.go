package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/username/edavkifolio/src/config"
	"github.com/username/edavkifolio/src/database"
	"github.com/username/edavkifolio/src/logger"
	"github.com/username/edavkifolio/src/models"
	"github.com/username/edavkifolio/src/parsers"
	"github.com/username/edavkifolio/src/processors"
	"github.com/username/edavkifolio/src/reports"
)

type conversionServiceImpl struct {
	cfg      *config.AppConfig
	rateFeed RateFeedService
	taxpayer TaxpayerService
}

// NewConversionService wires the full statement-to-filing pipeline.
func NewConversionService(cfg *config.AppConfig, rateFeed RateFeedService, taxpayer TaxpayerService) ConversionService {
	return &conversionServiceImpl{cfg: cfg, rateFeed: rateFeed, taxpayer: taxpayer}
}

// Convert runs one batch of statement files through parsing, position
// reconstruction and dividend reconciliation, and writes the three filing
// documents plus the audit workbooks. Nothing is written until every
// document has been built; a failing batch leaves no partial output.
func (s *conversionServiceImpl) Convert(ctx context.Context, inputPaths []string) (*ConversionResult, error) {
	overallStartTime := time.Now()
	runID := uuid.New().String()
	logger.L.Info("Convert START", "runID", runID, "reportYear", s.cfg.ReportYear, "inputs", len(inputPaths))

	taxpayer, err := s.taxpayer.Ensure()
	if err != nil {
		return nil, err
	}

	statement, err := s.parseStatements(inputPaths)
	if err != nil {
		return nil, err
	}
	if len(statement.Trades) == 0 && len(statement.Dividends) == 0 {
		return nil, ErrNoStatementData
	}

	format, err := detectFormat(statement)
	if err != nil {
		return nil, err
	}
	logger.L.Info("Statement format pinned", "dateLayout", format.DateLayout, "decimalComma", format.DecimalComma)

	companies, err := parsers.LoadCompanyList(s.cfg.CompanyInfoPath)
	if err != nil {
		return nil, err
	}
	cryptoList, err := parsers.LoadCryptoList(s.cfg.CryptoInfoPath)
	if err != nil {
		return nil, err
	}

	resolver, err := processors.NewSymbolResolver(statement.Transactions, statement.Dividends, companies)
	if err != nil {
		return nil, err
	}

	rates, err := s.rateFeed.RateTable(ctx)
	if err != nil {
		return nil, err
	}

	warnings := processors.NewWarningCollector()
	ledger := processors.NewPositionLedger(warnings)
	router := processors.Router{IncludeCrypto: s.cfg.IncludeCrypto, CryptoList: cryptoList}
	builder := processors.LotBuilder{
		ReportYear:              s.cfg.ReportYear,
		Format:                  format,
		Rates:                   rates,
		StatementCurrency:       s.cfg.StatementCurrency,
		Resolver:                resolver,
		LeverageWhenMissing:     s.cfg.LeverageWhenMissing,
		LeverageWhenUnparseable: s.cfg.LeverageWhenUnparseable,
	}

	tradeCount := 0
	for _, trade := range statement.Trades {
		open, closeEv, err := builder.Build(trade)
		if err != nil {
			return nil, err
		}
		if open == nil {
			continue
		}
		bucket := router.Route(*open)
		ledger.Add(bucket, *open)
		ledger.Add(bucket, *closeEv)
		tradeCount++
	}
	ledger.Finalize()

	reconciler := processors.DividendReconciler{
		ReportYear: s.cfg.ReportYear,
		Format:     format,
		Resolver:   resolver,
		Companies:  companies,
		Warnings:   warnings,
	}
	dividendRecords, missingCompanies, err := reconciler.Reconcile(statement.Dividends)
	if err != nil {
		return nil, err
	}

	outputs, err := s.writeOutputs(taxpayer, ledger, dividendRecords)
	if err != nil {
		return nil, err
	}

	result := &ConversionResult{
		RunID:               runID,
		ReportYear:          s.cfg.ReportYear,
		TestFiling:          s.cfg.TestFiling,
		TradeCount:          tradeCount,
		OutputFiles:         outputs,
		SkippedCryptoGroups: ledger.Groups(models.BucketSkippedCrypto),
		MissingCompanies:    missingCompanies,
		Warnings:            warnings.Warnings(),
	}
	for _, record := range dividendRecords {
		if record.Skipped {
			result.SkippedDividendCount++
		} else {
			result.DividendCount++
		}
	}

	s.recordRun(result, inputPaths)

	logger.L.Info("Convert END", "runID", runID, "duration", time.Since(overallStartTime),
		"trades", result.TradeCount, "dividends", result.DividendCount, "warnings", len(result.Warnings))
	return result, nil
}

func (s *conversionServiceImpl) parseStatements(inputPaths []string) (models.StatementData, error) {
	var statement models.StatementData

	parser, err := parsers.GetParser("etoro")
	if err != nil {
		return statement, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	for _, path := range inputPaths {
		file, err := os.Open(path)
		if err != nil {
			return statement, fmt.Errorf("%w: %v", ErrParsingFailed, err)
		}
		data, err := parser.Parse(file)
		file.Close()
		if err != nil {
			return statement, fmt.Errorf("%w: %s: %v", ErrParsingFailed, path, err)
		}
		logger.L.Info("Statement parsed", "file", path,
			"trades", len(data.Trades), "transactions", len(data.Transactions), "dividends", len(data.Dividends))
		statement.Append(data)
	}
	return statement, nil
}

// detectFormat pins the batch's date and decimal conventions from the first
// available date sample. All files of a batch must share one convention.
func detectFormat(statement models.StatementData) (processors.StatementFormat, error) {
	var sample string
	switch {
	case len(statement.Trades) > 0:
		sample = statement.Trades[0].CloseDate
	case len(statement.Dividends) > 0:
		sample = statement.Dividends[0].Date
	}
	return processors.DetectStatementFormat(sample)
}

// writeOutputs builds all filing documents in memory first and only then
// touches the output directory.
func (s *conversionServiceImpl) writeOutputs(taxpayer models.Taxpayer, ledger *processors.PositionLedger, dividendRecords []*models.DividendRecord) ([]string, error) {
	year := s.cfg.ReportYear
	test := s.cfg.TestFiling
	precision := s.cfg.FilingPrecision

	kdvpXML, err := reports.BuildCapitalGainsXML(reports.CapitalGainsSchema(precision), taxpayer, year, test,
		ledger.Groups(models.BucketLongNormal), ledger.Groups(models.BucketShortNormal))
	if err != nil {
		return nil, err
	}
	difiXML, err := reports.BuildDerivativesXML(reports.DerivativesSchema(precision), taxpayer, year, test,
		ledger.Groups(models.BucketLongDerivative), ledger.Groups(models.BucketShortDerivative))
	if err != nil {
		return nil, err
	}
	dividendXML, err := reports.BuildDividendXML(reports.DividendSchema(), taxpayer, year, test, dividendRecords)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	outputs := []string{
		filepath.Join(s.cfg.OutputDir, "Doh-KDVP.xml"),
		filepath.Join(s.cfg.OutputDir, "D-IFI.xml"),
		filepath.Join(s.cfg.OutputDir, "Doh-Div.xml"),
	}
	for i, content := range [][]byte{kdvpXML, difiXML, dividendXML} {
		if err := os.WriteFile(outputs[i], content, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outputs[i], err)
		}
		logger.L.Info("Filing written", "file", outputs[i])
	}

	lotAuditPath := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("Debug-%d.xlsx", year))
	if err := reports.WriteLotAuditWorkbook(lotAuditPath, ledger); err != nil {
		return nil, err
	}
	dividendAuditPath := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("Dividende-info-%d.xlsx", year))
	if err := reports.WriteDividendAuditWorkbook(dividendAuditPath, dividendRecords); err != nil {
		return nil, err
	}
	outputs = append(outputs, lotAuditPath, dividendAuditPath)

	return outputs, nil
}

// recordRun appends the run to the sqlite audit log. A failed insert does
// not fail the conversion; the filings on disk are already good.
func (s *conversionServiceImpl) recordRun(result *ConversionResult, inputPaths []string) {
	if database.DB == nil {
		return
	}
	_, err := database.DB.Exec(`
		INSERT INTO runs (run_id, report_year, input_files, trade_count, dividend_count,
			skipped_dividend_count, warning_count, warnings, test_filing)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID, result.ReportYear, strings.Join(inputPaths, ";"),
		result.TradeCount, result.DividendCount, result.SkippedDividendCount,
		len(result.Warnings), strings.Join(result.Warnings, "\n"), result.TestFiling)
	if err != nil {
		logger.L.Error("Failed to record run", "runID", result.RunID, "error", err)
	}
}
