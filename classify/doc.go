// Package classify provides lightweight text classification for job records:
// skill extraction against a fixed vocabulary and ordered-rule role labeling.
//
// Both classifiers are pure functions over their input text. They are pattern
// heuristics, not NLP; occasional false positives are accepted.
package classify
