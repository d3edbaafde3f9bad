package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	LogLevel     string
	DatabasePath string
	OutputDir    string

	// Reporting parameters.
	ReportYear        int    // 0 means "previous calendar year", resolved at load time
	ReportingCurrency string // currency all filed values are expressed in
	StatementCurrency string // currency of the statement's monetary columns
	IncludeCrypto     bool   // include non-leveraged crypto positions in the capital-gains filing
	TestFiling        bool   // emit filings with the test workflow id

	// Exchange-rate feed.
	RateFeedURL         string
	RateCacheDir        string
	RateFallbackDays    int
	RateFeedTimeout     time.Duration
	RateFeedRequestsSec float64

	// Filing precision. The authority's schemas have been observed with both
	// 4 and 8 decimal places across versions; 8 is the documented default.
	FilingPrecision int

	// Leverage sentinels when the statement column is absent or does not
	// parse as an integer. The two observed statement variants disagree
	// (0 vs 1); both stay configurable rather than silently unified.
	LeverageWhenMissing     int
	LeverageWhenUnparseable int

	CompanyInfoPath string
	CryptoInfoPath  string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found. Relying on OS environment variables and defaults.")
	}

	reportYear := getEnvAsInt("REPORT_YEAR", 0)
	if reportYear == 0 {
		reportYear = time.Now().Year() - 1
	}

	Cfg = &AppConfig{
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DatabasePath: getEnv("DATABASE_PATH", "./edavkifolio.db"),
		OutputDir:    getEnv("OUTPUT_DIR", "output"),

		ReportYear:        reportYear,
		ReportingCurrency: getEnv("REPORTING_CURRENCY", "EUR"),
		StatementCurrency: getEnv("STATEMENT_CURRENCY", "USD"),
		IncludeCrypto:     getEnvAsBool("INCLUDE_CRYPTO", false),
		TestFiling:        getEnvAsBool("TEST_FILING", false),

		RateFeedURL:         getEnv("RATE_FEED_URL", "https://www.bsi.si/_data/tecajnice/dtecbs-l.xml"),
		RateCacheDir:        getEnv("RATE_CACHE_DIR", "."),
		RateFallbackDays:    getEnvAsInt("RATE_FALLBACK_DAYS", 6),
		RateFeedTimeout:     getEnvAsDuration("RATE_FEED_TIMEOUT", 30*time.Second),
		RateFeedRequestsSec: 1,

		FilingPrecision: getEnvAsInt("FILING_PRECISION", 8),

		LeverageWhenMissing:     getEnvAsInt("LEVERAGE_WHEN_MISSING", 0),
		LeverageWhenUnparseable: getEnvAsInt("LEVERAGE_WHEN_UNPARSEABLE", 1),

		CompanyInfoPath: getEnv("COMPANY_INFO_PATH", "Company_info.xlsx"),
		CryptoInfoPath:  getEnv("CRYPTO_INFO_PATH", ""),
	}

	if Cfg.FilingPrecision != 4 && Cfg.FilingPrecision != 8 {
		log.Printf("WARNING: FILING_PRECISION %d is not a known schema precision (4 or 8). Using 8.", Cfg.FilingPrecision)
		Cfg.FilingPrecision = 8
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid boolean value for %s ('%s'), using default: %t", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
