package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/r-yashaswini/job-recommender-system/core"
)

// listingDateLayout matches the "January 2, 2006" dates the sites render.
const listingDateLayout = "January 2, 2006"

// applyAnchorHints mark anchors that lead to an application page.
var applyAnchorHints = []string{"apply here", "click here", "apply now"}

// Scraper collects postings from one site. Implementations return their
// normalized batch; persistence is the runner's job.
type Scraper interface {
	// Name identifies the site. It becomes the jobs' Source field.
	Name() string

	// Scrape walks the site and returns the postings found within the
	// site's posting-age window.
	Scrape(ctx context.Context) ([]*core.Job, error)
}

// collectApplyURLs gathers application links from a detail page. Anchors
// qualify by their visible text; links mentioning a blocked keyword (chat
// groups, the site itself) are dropped. Order of first appearance is kept.
func collectApplyURLs(doc *goquery.Document, blocked []string) []string {
	var urls []string
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		matched := false
		for _, hint := range applyAnchorHints {
			if strings.Contains(text, hint) {
				matched = true
				break
			}
		}
		if !matched {
			return
		}

		url, _ := a.Attr("href")
		if url == "" || containsBlocked(url, blocked) {
			return
		}
		if _, dup := seen[url]; dup {
			return
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	})

	return urls
}

func containsBlocked(url string, blocked []string) bool {
	lower := strings.ToLower(url)
	for _, keyword := range blocked {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// collectBullets extracts descriptive list items from a selection of <li>
// elements plus paragraphs that start with a bullet character, deduplicated
// preserving first appearance.
func collectBullets(doc *goquery.Document, listItems *goquery.Selection) string {
	var parts []string
	seen := make(map[string]struct{})
	add := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}
		parts = append(parts, text)
	}

	listItems.Each(func(_ int, li *goquery.Selection) {
		add(li.Text())
	})

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if strings.HasPrefix(text, "•") || strings.HasPrefix(text, "-") ||
			strings.HasPrefix(text, "–") || strings.HasPrefix(text, "*") {
			add(strings.TrimLeft(text, "•-–* "))
		}
	})

	return strings.Join(parts, " ")
}

// expandApplyURLs turns one scraped posting into one row per application
// link. With no links, a single row falls back to the listing URL.
func expandApplyURLs(job *core.Job, applyURLs []string) []*core.Job {
	if len(applyURLs) == 0 {
		row := *job
		row.ApplyURL = job.ListingURL
		return []*core.Job{&row}
	}

	rows := make([]*core.Job, 0, len(applyURLs))
	for _, url := range applyURLs {
		row := *job
		row.ApplyURL = url
		rows = append(rows, &row)
	}
	return rows
}

// parseListingDate parses the sites' long date format. Failure returns the
// zero time; callers treat undated rows as in-window.
func parseListingDate(text string) time.Time {
	parsed, err := time.Parse(listingDateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// withinCutoff reports whether a posting date falls inside the scrape
// window. Undated postings pass.
func withinCutoff(posted, cutoff time.Time) bool {
	return posted.IsZero() || !posted.Before(cutoff)
}
