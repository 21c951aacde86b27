package scrape

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/r-yashaswini/job-recommender-system/core"
)

const (
	freshersnowSource   = "freshersnow"
	freshersnowIndexURL = "https://www.freshersnow.com/freshers-jobs/"
	freshersnowDaysBack = 40
)

var freshersnowBlocked = []string{"telegram", "freshersnow", "whatsapp"}

// FreshersNow scrapes freshersnow.com: a single table index where each row
// links out to a detail page carrying the full title, date and description.
type FreshersNow struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewFreshersNow creates the freshersnow.com scraper.
func NewFreshersNow(fetcher *Fetcher) *FreshersNow {
	return &FreshersNow{
		fetcher: fetcher,
		logger:  slog.Default().With("scraper", freshersnowSource),
	}
}

// Name identifies the site.
func (s *FreshersNow) Name() string { return freshersnowSource }

// Scrape reads the index table and enriches each row from its detail page.
// The index is undated; the cutoff is applied to the detail page's date, and
// a too-old detail page stops the walk since rows are newest-first.
func (s *FreshersNow) Scrape(ctx context.Context) ([]*core.Job, error) {
	cutoff := time.Now().AddDate(0, 0, -freshersnowDaysBack)
	s.logger.Info("starting scrape", "daysBack", freshersnowDaysBack)

	doc, err := s.fetcher.Get(ctx, freshersnowIndexURL)
	if err != nil {
		return nil, err
	}

	var listings []*core.Job
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td.hidden-xs")
		if tds.Length() < 6 {
			return
		}

		company := strings.TrimSpace(tds.Eq(0).Text())
		role := strings.TrimSpace(tds.Eq(1).Text())
		experience := strings.TrimSpace(tds.Eq(3).Text())
		location := strings.TrimSpace(tds.Eq(4).Text())

		listingURL, ok := tds.Eq(5).Find("a").First().Attr("href")
		if !ok {
			listingURL = strings.TrimSpace(tds.Eq(5).Text())
		}
		if listingURL == "" {
			return
		}

		listings = append(listings, &core.Job{
			Title:      company + " | " + role,
			Experience: experience,
			Location:   location,
			ListingURL: listingURL,
			Source:     freshersnowSource,
		})
	})

	s.logger.Info("enriching listings", "count", len(listings))

	var jobs []*core.Job
	for _, listing := range listings {
		if err := ctx.Err(); err != nil {
			return jobs, err
		}

		detail, err := s.fetcher.Get(ctx, listing.ListingURL)
		if err != nil {
			s.logger.Warn("skipping listing", "url", listing.ListingURL, "err", err)
			continue
		}

		if title := strings.TrimSpace(detail.Find("h1.entry-title").First().Text()); title != "" {
			listing.Title = title
		}

		listing.PostedDate = parseListingDate(detail.Find("time").First().Text())
		if !withinCutoff(listing.PostedDate, cutoff) {
			s.logger.Info("reached cutoff date", "posted", listing.PostedDate.Format(time.DateOnly))
			break
		}

		listing.Description = collectBullets(detail, detail.Find("h2 + ul li, h3 + ul li"))
		core.Normalize(listing)
		for _, row := range expandApplyURLs(listing, collectApplyURLs(detail, freshersnowBlocked)) {
			jobs = append(jobs, row)
		}
	}

	s.logger.Info("scrape completed", "jobs", len(jobs))
	return jobs, nil
}
