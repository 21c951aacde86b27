package storage

import "strings"

// fresherAliases are the spellings entry-level postings use interchangeably.
var fresherAliases = []string{"fresher", "freshers", "0-1", "0 - 1", "0 years"}

// ExpandExperience turns a user-supplied experience filter into the list of
// substrings a row may match. Inputs that mention "fresher" expand to the
// known entry-level aliases; anything else matches literally.
func ExpandExperience(experience string) []string {
	experience = strings.TrimSpace(experience)
	if experience == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(experience), "fresher") {
		return fresherAliases
	}
	return []string{experience}
}
