package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/username/edavkifolio/src/config"
	"github.com/username/edavkifolio/src/database"
	"github.com/username/edavkifolio/src/logger"
	"github.com/username/edavkifolio/src/models"
	"github.com/username/edavkifolio/src/services"
	"github.com/username/edavkifolio/src/utils"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	database.InitDB(config.Cfg.DatabasePath)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&convertCmd{}, "")
	commander.Register(&ratesCmd{}, "")
	commander.Register(&taxpayerCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func newRateFeedService() services.RateFeedService {
	cfg := config.Cfg
	return services.NewRateFeedService(cfg.RateFeedURL, cfg.RateCacheDir,
		cfg.RateFallbackDays, cfg.RateFeedTimeout, cfg.RateFeedRequestsSec)
}

// convertCmd runs statement files through the pipeline and writes the
// filing documents.
type convertCmd struct {
	year    int
	output  string
	test    bool
	crypto  bool
	company string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert statement files into tax filing documents" }
func (*convertCmd) Usage() string {
	return `convert [-year <year>] [-output <dir>] [-test] [-crypto] <statement.xlsx> [more.xlsx ...]

  Reads one or more broker statement exports and writes the capital-gains,
  derivatives and dividend filing documents plus the audit workbooks.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "report year (defaults to the previous calendar year)")
	f.StringVar(&c.output, "output", "", "output directory (defaults to OUTPUT_DIR)")
	f.BoolVar(&c.test, "test", false, "emit filings with the test workflow id")
	f.BoolVar(&c.crypto, "crypto", false, "include non-leveraged crypto positions in the capital-gains filing")
	f.StringVar(&c.company, "company", "", "company reference workbook (defaults to COMPANY_INFO_PATH)")
}

func (c *convertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no statement files given")
		return subcommands.ExitUsageError
	}

	cfg := config.Cfg
	if c.year != 0 {
		cfg.ReportYear = c.year
	}
	if c.output != "" {
		cfg.OutputDir = c.output
	}
	if c.company != "" {
		cfg.CompanyInfoPath = c.company
	}
	if c.test {
		cfg.TestFiling = true
	}
	if c.crypto {
		cfg.IncludeCrypto = true
	}

	svc := services.NewConversionService(cfg, newRateFeedService(),
		services.NewTaxpayerService(os.Stdin, os.Stdout))

	result, err := svc.Convert(ctx, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printSummary(result)
	return subcommands.ExitSuccess
}

func printSummary(result *services.ConversionResult) {
	fmt.Printf("Report year %d: %d trades, %d dividends filed (%d skipped).\n",
		result.ReportYear, result.TradeCount, result.DividendCount, result.SkippedDividendCount)
	for _, file := range result.OutputFiles {
		fmt.Printf("  %s created\n", file)
	}
	if result.TestFiling {
		fmt.Println("Filings carry the TEST workflow id and will not be treated as real submissions.")
	}

	if len(result.SkippedCryptoGroups) > 0 {
		fmt.Println("\nCrypto positions excluded from the capital-gains filing:")
		for _, group := range result.SkippedCryptoGroups {
			fmt.Printf("  %s (%s)\n", group.Name, group.Symbol)
		}
	}
	if len(result.MissingCompanies) > 0 {
		fmt.Println("\nDividend payers missing from the company reference file:")
		for _, missing := range result.MissingCompanies {
			fmt.Printf("  %s  ISIN %s  %q\n", missing.Symbol, missing.ISIN, missing.Name)
		}
		fmt.Println("Fix the reference file and re-run to fill in payer address and country.")
	}
	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, warning := range result.Warnings {
			fmt.Printf("  %s\n", warning)
		}
	}
}

// ratesCmd verifies the exchange-rate feed and shows its coverage.
type ratesCmd struct {
	currency string
	date     string
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "download the exchange-rate feed and show its coverage" }
func (*ratesCmd) Usage() string {
	return `rates [-currency <ccy> -date <yyyy-mm-dd>]

  Downloads (or reuses today's cached copy of) the daily exchange-rate feed.
  With -currency and -date, prints the rate that a conversion would use.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "currency code to look up")
	f.StringVar(&c.date, "date", "", "date to look up (yyyy-mm-dd)")
}

func (c *ratesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	table, err := newRateFeedService().RateTable(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	dates := table.Dates()
	if len(dates) == 0 {
		fmt.Fprintln(os.Stderr, "Error: the feed contains no rates")
		return subcommands.ExitFailure
	}
	fmt.Printf("Feed loaded: %d days, %s .. %s\n", table.Len(), dates[0], dates[len(dates)-1])

	if c.currency == "" && c.date == "" {
		return subcommands.ExitSuccess
	}
	if c.currency == "" || c.date == "" {
		fmt.Fprintln(os.Stderr, "Error: -currency and -date go together")
		return subcommands.ExitUsageError
	}

	day, err := parseISODate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	value, err := table.Rate(day, strings.ToUpper(c.currency))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("EUR/%s on %s: %g\n", strings.ToUpper(c.currency), c.date, value)
	return subcommands.ExitSuccess
}

func parseISODate(s string) (time.Time, error) {
	day, err := time.Parse(utils.FilingDateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q (want yyyy-mm-dd)", s)
	}
	return day, nil
}

// taxpayerCmd shows or updates the persisted filing identity.
type taxpayerCmd struct {
	number       string
	taxpayerType string
}

func (*taxpayerCmd) Name() string     { return "taxpayer" }
func (*taxpayerCmd) Synopsis() string { return "show or update the stored taxpayer identity" }
func (*taxpayerCmd) Usage() string {
	return `taxpayer [-number <8 digits> [-type FO|PO|SP]]

  Without flags, prints the stored taxpayer, prompting for one when none is
  stored yet. With -number, replaces the stored taxpayer.
`
}

func (c *taxpayerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.number, "number", "", "tax number to store")
	f.StringVar(&c.taxpayerType, "type", "FO", "taxpayer type: FO, PO or SP")
}

func (c *taxpayerCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc := services.NewTaxpayerService(os.Stdin, os.Stdout)

	if c.number != "" {
		taxpayer := models.Taxpayer{TaxNumber: c.number, Type: strings.ToUpper(c.taxpayerType)}
		if err := svc.Save(taxpayer); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Taxpayer stored: %s (%s)\n", taxpayer.TaxNumber, taxpayer.Type)
		return subcommands.ExitSuccess
	}

	taxpayer, err := svc.Ensure()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Taxpayer: %s (%s)\n", taxpayer.TaxNumber, taxpayer.Type)
	return subcommands.ExitSuccess
}
