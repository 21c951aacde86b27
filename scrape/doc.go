// Package scrape collects job postings from the supported sites.
//
// Each site has its own Scraper walking the site's listing pages up to a
// posting-age cutoff, then visiting detail pages for description, location,
// experience and apply links. The Runner executes all scrapers on a worker
// pool and appends each scraper's batch to the repository; one failing site
// never takes down the others.
package scrape
