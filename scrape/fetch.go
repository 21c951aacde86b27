package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Sites block default Go user agents, so requests carry a browser one.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/87.0.4280.141 Safari/537.36 Edg/87.0.664.75"

const (
	fetchTimeout    = 10 * time.Second
	fetchAttempts   = 3
	fetchRetryDelay = 1 * time.Second
)

// Fetcher retrieves and parses HTML pages with retries.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the shared timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Get fetches a page and parses it. Transient failures are retried with
// exponential backoff; after the final attempt the page is reported
// unavailable.
func (f *Fetcher) Get(ctx context.Context, url string) (*goquery.Document, error) {
	var doc *goquery.Document

	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		return err
	}, fetchAttempts, fetchRetryDelay)

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPageUnavailable, url, err)
	}
	return doc, nil
}
