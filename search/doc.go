// Package search implements the hybrid ranking engine: vector similarity
// candidates from the store, re-ranked with role/title hints and skill
// overlap.
//
// The scoring formula is product-defined behavior. Its additive bonuses,
// flat penalty and the 0.90 score cap are intentional and must not be
// "fixed" for mathematical tidiness.
package search
