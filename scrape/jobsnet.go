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
	jobsnetSource   = "jobsnet"
	jobsnetPageURL  = "https://jobsnet.in/page/%d/"
	jobsnetDaysBack = 30
)

var jobsnetBlocked = []string{"telegram", "jobsnet", "acciojob", "whatsapp"}

// JobsNet scrapes jobsnet.in: paginated article listings with dated entries,
// detail pages with labelled location/experience paragraphs.
type JobsNet struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewJobsNet creates the jobsnet.in scraper.
func NewJobsNet(fetcher *Fetcher) *JobsNet {
	return &JobsNet{
		fetcher: fetcher,
		logger:  slog.Default().With("scraper", jobsnetSource),
	}
}

// Name identifies the site.
func (s *JobsNet) Name() string { return jobsnetSource }

// Scrape walks the listing pages until a posting older than the window shows
// up, then enriches each listing from its detail page.
func (s *JobsNet) Scrape(ctx context.Context) ([]*core.Job, error) {
	cutoff := time.Now().AddDate(0, 0, -jobsnetDaysBack)
	s.logger.Info("starting scrape", "daysBack", jobsnetDaysBack)

	var listings []*core.Job
	for page := 1; ; page++ {
		url := fmt.Sprintf(jobsnetPageURL, page)
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
			anchor := article.Find("h3.entry-title a[href]").First()
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
				Source:     jobsnetSource,
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
		for _, row := range expandApplyURLs(listing, collectApplyURLs(doc, jobsnetBlocked)) {
			jobs = append(jobs, row)
		}
	}

	s.logger.Info("scrape completed", "jobs", len(jobs))
	return jobs, nil
}

// enrichFromDetail pulls location, experience and the bullet description out
// of a detail page. Location and experience live in "Label: value"
// paragraphs.
func (s *JobsNet) enrichFromDetail(job *core.Job, doc *goquery.Document) {
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := p.Text()
		if !strings.Contains(text, ":") {
			return
		}
		lower := strings.ToLower(text)
		_, value, _ := strings.Cut(text, ":")
		value = strings.TrimSpace(value)
		if strings.Contains(lower, "location") {
			job.Location = value
		} else if strings.Contains(lower, "experience") {
			job.Experience = value
		}
	})

	job.Description = collectBullets(doc, doc.Find("ul.wp-block-list li"))
}
