package filter

import (
	"maps"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cineparadis/detail"
	"github.com/s0up4200/cineparadis/tmdb"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newRecencyCache[string, CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *recencyCache[string, CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Compile against a sample environment so field types are known
	env := createRuntimeEnvironment(detail.Recommendation{}, c.helperFuncs)
	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Match evaluates the filter against a recommendation
func (f *exprFilter) Match(rec detail.Recommendation) bool {
	env := createRuntimeEnvironment(rec, f.helpers)

	result, err := expr.Run(f.program, env)
	if err != nil {
		// Entries the expression cannot evaluate are skipped
		return false
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions
func createHelperFunctions() map[string]any {
	// contains and startsWith are operators in expr; the helpers are the
	// case-insensitive variants.
	return map[string]any{
		"containsFold": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWithFold": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// createRuntimeEnvironment builds the evaluation environment for rec
func createRuntimeEnvironment(rec detail.Recommendation, helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+16)
	maps.Copy(env, helpers)

	year := releaseYear(rec.Date)

	env["ID"] = rec.ID
	env["Title"] = rec.Title
	env["Date"] = rec.Date
	env["Year"] = year
	env["MediaType"] = string(rec.MediaType)
	env["VoteAverage"] = rec.VoteAverage
	env["Overview"] = rec.Overview
	env["HasPoster"] = rec.Poster != ""

	env["isMovie"] = func() bool {
		return rec.MediaType == tmdb.MediaKindMovie
	}
	env["isSeries"] = func() bool {
		return rec.MediaType == tmdb.MediaKindTV
	}
	env["releasedAfter"] = func(y int) bool {
		return year > y
	}
	env["releasedBefore"] = func(y int) bool {
		return year > 0 && year < y
	}

	return env
}

// releaseYear parses the year of a YYYY-MM-DD date, or 0
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}
