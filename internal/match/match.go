// Package match implements shell-style glob matching of exclusion patterns
// against slash-separated paths relative to a traversal root.
//
// Patterns follow fnmatch semantics: "*" matches any run of characters,
// including across "/" segments, "?" matches exactly one character, and
// "[...]" character classes are honored ("[!...]" negates). A pattern matches
// only when it covers the entire relative path.
package match

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern reports a pattern that cannot be compiled.
var ErrInvalidPattern = errors.New("invalid exclusion pattern")

// Options controls matcher behavior.
type Options struct {
	// CaseInsensitive enables ASCII case-insensitive matching, following the
	// convention of case-preserving filesystems.
	CaseInsensitive bool
}

// compiledPattern is the matcher-internal compiled representation of one pattern.
type compiledPattern struct {
	source  string
	matcher *regexp.Regexp
}

// Matcher evaluates relative paths against a fixed, ordered set of patterns.
// A Matcher is immutable after construction and safe for repeated runs.
type Matcher struct {
	compiled []compiledPattern
}

// NewMatcher compiles the provided patterns. Blank patterns are dropped;
// any pattern that cannot be compiled fails construction with ErrInvalidPattern.
func NewMatcher(patterns []string, options Options) (*Matcher, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, patternValue := range patterns {
		trimmedPattern := strings.TrimSpace(patternValue)
		if trimmedPattern == "" {
			continue
		}
		expressionSource := translatePattern(normalizePattern(trimmedPattern))
		if options.CaseInsensitive {
			expressionSource = "(?i)" + expressionSource
		}
		expression, compileError := regexp.Compile(expressionSource)
		if compileError != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, patternValue, compileError)
		}
		compiled = append(compiled, compiledPattern{source: trimmedPattern, matcher: expression})
	}
	return &Matcher{compiled: compiled}, nil
}

// Matches reports whether any pattern covers the whole relative path.
func (matcher *Matcher) Matches(relativePath string) bool {
	candidate := normalizePattern(relativePath)
	for _, pattern := range matcher.compiled {
		if pattern.matcher.MatchString(candidate) {
			return true
		}
	}
	return false
}

// Patterns returns the sources of the compiled patterns, in evaluation order.
func (matcher *Matcher) Patterns() []string {
	sources := make([]string, 0, len(matcher.compiled))
	for _, pattern := range matcher.compiled {
		sources = append(sources, pattern.source)
	}
	return sources
}

// normalizePattern converts host separators to forward slashes and strips a
// leading "./" so patterns and candidates compare in one canonical form.
func normalizePattern(value string) string {
	normalized := strings.ReplaceAll(value, "\\", "/")
	normalized = strings.TrimPrefix(normalized, "./")
	return normalized
}

// translatePattern converts one glob pattern into an anchored regular
// expression source. An unterminated character class is treated as a literal
// "[", matching fnmatch behavior.
func translatePattern(pattern string) string {
	var builder strings.Builder
	builder.WriteString("^")
	runes := []rune(pattern)
	for index := 0; index < len(runes); index++ {
		switch runes[index] {
		case '*':
			builder.WriteString(".*")
		case '?':
			builder.WriteString(".")
		case '[':
			classEnd := findClassEnd(runes, index)
			if classEnd < 0 {
				builder.WriteString(regexp.QuoteMeta("["))
				continue
			}
			builder.WriteString(translateClass(runes[index+1 : classEnd]))
			index = classEnd
		default:
			builder.WriteString(regexp.QuoteMeta(string(runes[index])))
		}
	}
	builder.WriteString("$")
	return builder.String()
}

// findClassEnd returns the index of the "]" closing the class opened at
// openIndex, or -1 when the class never closes. A "]" directly after the
// opening bracket (or after a negation marker) is part of the class.
func findClassEnd(runes []rune, openIndex int) int {
	scanIndex := openIndex + 1
	if scanIndex < len(runes) && (runes[scanIndex] == '!' || runes[scanIndex] == '^') {
		scanIndex++
	}
	if scanIndex < len(runes) && runes[scanIndex] == ']' {
		scanIndex++
	}
	for scanIndex < len(runes) {
		if runes[scanIndex] == ']' {
			return scanIndex
		}
		scanIndex++
	}
	return -1
}

// translateClass renders the body of a glob character class as a regexp class.
func translateClass(body []rune) string {
	content := string(body)
	if strings.HasPrefix(content, "!") {
		content = "^" + content[1:]
	}
	content = strings.ReplaceAll(content, "\\", "\\\\")
	return "[" + content + "]"
}
