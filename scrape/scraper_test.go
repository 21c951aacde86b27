package scrape

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-yashaswini/job-recommender-system/core"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestCollectApplyURLs(t *testing.T) {
	doc := docFromHTML(t, `
		<a href="https://careers.example/1">Apply Here</a>
		<a href="https://t.me/group">Click here to join Telegram</a>
		<a href="https://careers.example/2">Apply Now!</a>
		<a href="https://careers.example/1">apply here again</a>
		<a href="https://other.example">Read more</a>`)

	urls := collectApplyURLs(doc, []string{"telegram", "t.me"})
	assert.Equal(t, []string{"https://careers.example/1", "https://careers.example/2"}, urls)
}

func TestCollectBullets(t *testing.T) {
	doc := docFromHTML(t, `
		<ul class="wp-block-list"><li>Build APIs</li><li>Write tests</li><li>Build APIs</li></ul>
		<p>• Ship features</p>
		<p>Plain paragraph ignored</p>`)

	got := collectBullets(doc, doc.Find("ul.wp-block-list li"))
	assert.Equal(t, "Build APIs Write tests Ship features", got)
}

func TestExpandApplyURLs(t *testing.T) {
	job := &core.Job{Title: "SRE", ListingURL: "https://site.example/job"}

	t.Run("one row per url", func(t *testing.T) {
		rows := expandApplyURLs(job, []string{"https://a.example", "https://b.example"})
		require.Len(t, rows, 2)
		assert.Equal(t, "https://a.example", rows[0].ApplyURL)
		assert.Equal(t, "https://b.example", rows[1].ApplyURL)
		assert.Equal(t, "SRE", rows[1].Title)
	})

	t.Run("falls back to listing url", func(t *testing.T) {
		rows := expandApplyURLs(job, nil)
		require.Len(t, rows, 1)
		assert.Equal(t, job.ListingURL, rows[0].ApplyURL)
	})
}

func TestParseListingDate(t *testing.T) {
	parsed := parseListingDate(" January 2, 2026 ")
	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.January, parsed.Month())

	assert.True(t, parseListingDate("not a date").IsZero())
}

func TestWithinCutoff(t *testing.T) {
	cutoff := time.Now().AddDate(0, 0, -30)
	assert.True(t, withinCutoff(time.Now(), cutoff))
	assert.True(t, withinCutoff(time.Time{}, cutoff))
	assert.False(t, withinCutoff(cutoff.AddDate(0, 0, -1), cutoff))
}
