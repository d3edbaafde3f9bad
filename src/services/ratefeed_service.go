package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/username/edavkifolio/src/logger"
	"github.com/username/edavkifolio/src/models"
	"github.com/username/edavkifolio/src/processors"
)

const (
	rateFeedCachePrefix = "bsrate-"
	rateFeedCacheKey    = "rate_table"

	// The feed is published once per business day; a parsed table never goes
	// stale within a process lifetime.
	rateTableCacheExpiration = 12 * time.Hour
	rateTableCleanupInterval = 1 * time.Hour
)

type rateFeedServiceImpl struct {
	httpClient   http.Client
	limiter      *rate.Limiter
	tableCache   *cache.Cache
	feedURL      string
	cacheDir     string
	fallbackDays int
}

// NewRateFeedService creates the exchange-rate feed service. The feed file is
// cached on disk per calendar day and the parsed table in memory.
func NewRateFeedService(feedURL, cacheDir string, fallbackDays int, timeout time.Duration, requestsPerSec float64) RateFeedService {
	return &rateFeedServiceImpl{
		httpClient:   http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		tableCache:   cache.New(rateTableCacheExpiration, rateTableCleanupInterval),
		feedURL:      feedURL,
		cacheDir:     cacheDir,
		fallbackDays: fallbackDays,
	}
}

func (s *rateFeedServiceImpl) RateTable(ctx context.Context) (*processors.RateTable, error) {
	if cached, found := s.tableCache.Get(rateFeedCacheKey); found {
		return cached.(*processors.RateTable), nil
	}

	raw, err := s.ensureDailyFeedFile(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateFeedFailed, err)
	}

	var feed models.RateFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("%w: parsing feed: %v", ErrRateFeedFailed, err)
	}

	table, err := processors.NewRateTable(&feed, s.fallbackDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateFeedFailed, err)
	}
	logger.L.Info("Exchange-rate table loaded", "days", table.Len())

	s.tableCache.Set(rateFeedCacheKey, table, cache.DefaultExpiration)
	return table, nil
}

// ensureDailyFeedFile returns today's cached feed file, downloading it first
// when it does not exist yet. Cache files from earlier days are removed so
// the directory holds at most one feed snapshot.
func (s *rateFeedServiceImpl) ensureDailyFeedFile(ctx context.Context) ([]byte, error) {
	filename := filepath.Join(s.cacheDir,
		fmt.Sprintf("%s%s.xml", rateFeedCachePrefix, time.Now().Format("20060102")))

	if raw, err := os.ReadFile(filename); err == nil {
		logger.L.Debug("Using cached exchange-rate feed", "file", filename)
		return raw, nil
	}

	stale, err := filepath.Glob(filepath.Join(s.cacheDir, rateFeedCachePrefix+"*.xml"))
	if err == nil {
		for _, old := range stale {
			if err := os.Remove(old); err != nil {
				logger.L.Warn("Could not remove stale feed file", "file", old, "error", err)
			}
		}
	}

	raw, err := s.download(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(filename, raw, 0o644); err != nil {
		// The table is still usable this run; only the cache is lost.
		logger.L.Warn("Could not write feed cache file", "file", filename, "error", err)
	} else {
		logger.L.Info("Exchange-rate feed downloaded", "file", filename)
	}
	return raw, nil
}

func (s *rateFeedServiceImpl) download(ctx context.Context) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d for %s", resp.StatusCode, s.feedURL)
	}
	return io.ReadAll(resp.Body)
}
