// Package ingestion orchestrates a full collection run: scraping the job
// sites, then enriching stored rows with an embedding and a role label.
//
// A run moves Idle -> Scraping -> Enriching -> Idle. Enrichment is
// per-row and idempotent; a row that fails stays pending and is retried on
// the next run.
package ingestion
