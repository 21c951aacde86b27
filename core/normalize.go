package core

import (
	"sort"
	"strings"
)

const (
	// DefaultLocation is applied when a scraped posting carries no location.
	DefaultLocation = "Pan India"

	// DefaultExperience is applied when a scraped posting carries no
	// experience requirement.
	DefaultExperience = "Freshers"

	// DefaultDescription is applied when no detail text could be extracted.
	DefaultDescription = "No detailed description available. Please visit the apply link for more information."
)

// Normalize fills the defaulted fields of a freshly scraped job in place.
// Every record crosses this boundary before it reaches the store, so
// downstream code can rely on the fields being populated.
func Normalize(job *Job) {
	job.Title = strings.TrimSpace(job.Title)
	job.Location = strings.TrimSpace(job.Location)
	job.Experience = strings.TrimSpace(job.Experience)
	job.Description = strings.TrimSpace(job.Description)

	if job.Location == "" {
		job.Location = DefaultLocation
	}
	if job.Experience == "" {
		job.Experience = DefaultExperience
	}
	if job.Description == "" {
		job.Description = DefaultDescription
	}
	if job.ApplyURL == "" {
		job.ApplyURL = job.ListingURL
	}
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

func sortStrings(s []string) {
	sort.Strings(s)
}
