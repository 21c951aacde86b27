package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/r-yashaswini/job-recommender-system/core"
)

const (
	freshersrecSource   = "freshersrecruitment"
	freshersrecPageURL  = "https://freshersrecruitment.co.in/category/jobs/page/%d/"
	freshersrecDaysBack = 30
)

var freshersrecBlocked = []string{"telegram", "freshersrecruitment", "whatsapp"}

// FreshersRecruitment scrapes freshersrecruitment.co.in: paginated article
// listings, detail pages with strong-labelled list items for location and
// experience.
type FreshersRecruitment struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewFreshersRecruitment creates the freshersrecruitment.co.in scraper.
func NewFreshersRecruitment(fetcher *Fetcher) *FreshersRecruitment {
	return &FreshersRecruitment{
		fetcher: fetcher,
		logger:  slog.Default().With("scraper", freshersrecSource),
	}
}

// Name identifies the site.
func (s *FreshersRecruitment) Name() string { return freshersrecSource }

// Scrape walks the listing pages until the posting-age cutoff, then enriches
// each listing from its detail page.
func (s *FreshersRecruitment) Scrape(ctx context.Context) ([]*core.Job, error) {
	cutoff := time.Now().AddDate(0, 0, -freshersrecDaysBack)
	s.logger.Info("starting scrape", "daysBack", freshersrecDaysBack)

	var listings []*core.Job
	for page := 1; ; page++ {
		url := fmt.Sprintf(freshersrecPageURL, page)
		doc, err := s.fetcher.Get(ctx, url)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			s.logger.Warn("stopping pagination", "page", page, "err", err)
			break
		}

		articles := doc.Find("article")
		if articles.Length() == 0 {
			break
		}

		stop := false
		articles.EachWithBreak(func(_ int, article *goquery.Selection) bool {
			anchor := article.Find("h2.entry-title a[href]").First()
			title := strings.TrimSpace(anchor.Text())
			listingURL, _ := anchor.Attr("href")
			if listingURL == "" {
				return true
			}

			posted := parseListingDate(article.Find("time").First().Text())
			if !withinCutoff(posted, cutoff) {
				s.logger.Info("reached cutoff date", "posted", posted.Format(time.DateOnly))
				stop = true
				return false
			}

			listings = append(listings, &core.Job{
				Title:      title,
				ListingURL: listingURL,
				PostedDate: posted,
				Source:     freshersrecSource,
			})
			return true
		})
		if stop {
			break
		}
	}

	s.logger.Info("enriching listings", "count", len(listings))

	var jobs []*core.Job
	for _, listing := range listings {
		if err := ctx.Err(); err != nil {
			return jobs, err
		}

		doc, err := s.fetcher.Get(ctx, listing.ListingURL)
		if err != nil {
			s.logger.Warn("skipping listing", "url", listing.ListingURL, "err", err)
			continue
		}

		s.enrichFromDetail(listing, doc)
		core.Normalize(listing)
		for _, row := range expandApplyURLs(listing, collectApplyURLs(doc, freshersrecBlocked)) {
			jobs = append(jobs, row)
		}
	}

	s.logger.Info("scrape completed", "jobs", len(jobs))
	return jobs, nil
}

// enrichFromDetail reads the strong-labelled list items ("Location:",
// "Experience:") and the bullet description.
func (s *FreshersRecruitment) enrichFromDetail(job *core.Job, doc *goquery.Document) {
	doc.Find("ul.wp-block-list li").Each(func(_ int, li *goquery.Selection) {
		strong := li.Find("strong").First()
		if strong.Length() == 0 {
			return
		}

		label := strings.ToLower(strings.TrimSpace(strong.Text()))
		value := strings.TrimSpace(strings.Replace(li.Text(), strong.Text(), "", 1))
		value = strings.TrimSpace(strings.TrimLeft(value, ": "))

		if strings.Contains(label, "location") {
			job.Location = value
		} else if strings.Contains(label, "experience") {
			job.Experience = value
		}
	})

	job.Description = collectBullets(doc, doc.Find("ul.wp-block-list li"))
}
