package filter

import (
	"github.com/s0up4200/cineparadis/detail"
)

// Filter defines the basic interface for recommendation filters
type Filter interface {
	// Match checks if a recommendation satisfies the filter
	Match(rec detail.Recommendation) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// matchAll is used when no expression is given
type matchAll struct{}

func (matchAll) Match(detail.Recommendation) bool { return true }
func (matchAll) Expression() string               { return "" }

// MatchAll returns a filter that accepts every recommendation
func MatchAll() CompiledFilter {
	return matchAll{}
}

// Apply returns the recommendations accepted by f, preserving order. The
// input list is not modified.
func Apply(f Filter, list detail.RecommendationList) detail.RecommendationList {
	out := make(detail.RecommendationList, 0, len(list))
	for _, rec := range list {
		if f == nil || f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
