package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mitsailing/sail-stats/internal/config"
	"github.com/mitsailing/sail-stats/internal/logger"
	"github.com/mitsailing/sail-stats/internal/metrics"
)

// ErrUnexpectedStatus is returned when a page answers with anything but 200
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Scraper handles fetching and parsing sailing club trip pages
type Scraper struct {
	client   *resty.Client
	baseURL  string
	category string
	metrics  *metrics.Metrics
}

// New creates a new Scraper for the site described by cfg
func New(cfg config.Config) *Scraper {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	category := cfg.Category
	if category == "" {
		category = config.DefaultCategory
	}

	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(timeout)

	return &Scraper{
		client:   client,
		baseURL:  baseURL,
		category: category,
	}
}

// SetMetrics attaches collectors that record every fetch and parse
func (s *Scraper) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Fetch retrieves the raw content of a page.
// Bytes that are not valid UTF-8 are dropped.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (string, error) {
	return s.fetch(ctx, metrics.KindEntries, pageURL)
}

func (s *Scraper) fetch(ctx context.Context, kind, pageURL string) (string, error) {
	start := time.Now()
	body, err := s.get(ctx, pageURL)
	s.metrics.ObserveFetch(kind, time.Since(start), err)
	if err != nil {
		return "", err
	}

	logger.Debug("Fetched page", logger.Fields{
		"kind":  kind,
		"url":   pageURL,
		"bytes": len(body),
	})
	return body, nil
}

func (s *Scraper) get(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("fetching page %s: %w", pageURL, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode(), pageURL)
	}

	return strings.ToValidUTF8(string(resp.Body()), ""), nil
}

// ListingURL returns the calendar page for one month
func (s *Scraper) ListingURL(year, month int) string {
	return fmt.Sprintf("%s/calendar/index.php?cal=month&year=%d&month=%d&type=%s",
		s.baseURL, year, month, s.category)
}
