package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"jobverse/internal/domain"
)

const SourceID = "rss"

// Config holds feed source configuration.
type Config struct {
	FeedURL string
	// RelayURL is prefixed to the escaped feed URL. Empty fetches the feed directly.
	RelayURL string
	Source   string
	Timeout  time.Duration
}

// Source reads job entries from an RSS feed, optionally through a relay.
type Source struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	feedURL    string
	relayURL   string
	source     string
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		parser:   gofeed.NewParser(),
		feedURL:  cfg.FeedURL,
		relayURL: cfg.RelayURL,
		source:   cfg.Source,
		logger:   logger.With("source", SourceID),
	}
}

func (s *Source) ID() string {
	return SourceID
}

// Name returns the label stored on every job from this source.
func (s *Source) Name() string {
	return s.source
}

// FetchEntries retrieves the feed and returns its entries. Entries without a
// title or a link are dropped. There is no retry.
func (s *Source) FetchEntries(ctx context.Context) ([]domain.FeedEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")
	req.Header.Set("User-Agent", "Jobverse/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request: %w", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status: %d", domain.ErrFetch, resp.StatusCode)
	}

	feed, err := s.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed: %w", domain.ErrFetch, err)
	}

	entries := s.transform(feed.Items)
	s.logger.Info("feed read", "items", len(feed.Items), "entries", len(entries))

	return entries, nil
}

func (s *Source) requestURL() string {
	if s.relayURL == "" {
		return s.feedURL
	}
	return s.relayURL + url.QueryEscape(s.feedURL)
}

func (s *Source) transform(items []*gofeed.Item) []domain.FeedEntry {
	entries := make([]domain.FeedEntry, 0, len(items))

	for _, item := range items {
		if item == nil {
			continue
		}

		entry := domain.FeedEntry{
			Title:       strings.TrimSpace(item.Title),
			Link:        strings.TrimSpace(item.Link),
			Description: strings.TrimSpace(item.Description),
			PublishedAt: strings.TrimSpace(item.Published),
			GUID:        strings.TrimSpace(item.GUID),
			Source:      s.source,
		}

		if entry.Title == "" || entry.Link == "" {
			s.logger.Debug("skipping entry without title or link", "guid", entry.GUID)
			continue
		}

		entries = append(entries, entry)
	}

	return entries
}
