// Package scrub rewrites commonly named sensitive fields out of configuration
// text before it enters a public build archive.
//
// Scrubbing is best-effort pattern substitution and is explicitly not a
// security boundary: a renamed settings key or an unusual file layout will slip
// through. Builds that must stay private belong in a personal build instead.
package scrub

import (
	"fmt"
	"regexp"

	"github.com/gusface/kodipack/internal/match"
)

// Rule is one redaction rule from the externalized rule table.
type Rule struct {
	// ID names the rule in configuration and warnings.
	ID string `mapstructure:"id" yaml:"id"`
	// Pattern is a regular expression over the file text.
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	// Replacement substitutes every match; capture group references are honored.
	Replacement string `mapstructure:"replacement" yaml:"replacement"`
}

// FileRule binds redaction rules to the files selected by path globs.
type FileRule struct {
	PathPatterns []string `mapstructure:"paths" yaml:"paths"`
	Rules        []Rule   `mapstructure:"rules" yaml:"rules"`
}

// Profile is a complete scrubbing configuration. The zero value scrubs nothing.
type Profile struct {
	FileRules []FileRule `mapstructure:"files" yaml:"files"`
	// ExtraExclusions are exclusion patterns appended to selection when the
	// profile is active, dropping entire personal subtrees and files.
	ExtraExclusions []string `mapstructure:"exclude" yaml:"exclude"`
}

type compiledRule struct {
	identifier  string
	expression  *regexp.Regexp
	replacement string
}

type compiledFileRule struct {
	pathMatcher *match.Matcher
	rules       []compiledRule
}

// Scrubber applies a compiled profile to file content. It is immutable after
// construction; pattern failures surface here, never during a run.
type Scrubber struct {
	fileRules []compiledFileRule
}

// NewScrubber compiles the profile's path globs and redaction expressions.
func NewScrubber(profile Profile, matchOptions match.Options) (*Scrubber, error) {
	scrubber := &Scrubber{}
	for _, fileRule := range profile.FileRules {
		pathMatcher, matcherError := match.NewMatcher(fileRule.PathPatterns, matchOptions)
		if matcherError != nil {
			return nil, fmt.Errorf("compiling scrub path patterns: %w", matcherError)
		}
		compiled := compiledFileRule{pathMatcher: pathMatcher}
		for _, rule := range fileRule.Rules {
			expression, compileError := regexp.Compile(rule.Pattern)
			if compileError != nil {
				return nil, fmt.Errorf("compiling scrub rule %s: %w", rule.ID, compileError)
			}
			compiled.rules = append(compiled.rules, compiledRule{
				identifier:  rule.ID,
				expression:  expression,
				replacement: rule.Replacement,
			})
		}
		scrubber.fileRules = append(scrubber.fileRules, compiled)
	}
	return scrubber, nil
}

// AppliesTo reports whether any file rule selects the relative path.
func (scrubber *Scrubber) AppliesTo(relativePath string) bool {
	for _, fileRule := range scrubber.fileRules {
		if fileRule.pathMatcher.Matches(relativePath) {
			return true
		}
	}
	return false
}

// Transform applies every rule bound to relativePath and returns the possibly
// rewritten content plus whether any substitution happened.
func (scrubber *Scrubber) Transform(relativePath string, content []byte) ([]byte, bool) {
	changed := false
	for _, fileRule := range scrubber.fileRules {
		if !fileRule.pathMatcher.Matches(relativePath) {
			continue
		}
		for _, rule := range fileRule.rules {
			rewritten := rule.expression.ReplaceAll(content, []byte(rule.replacement))
			if string(rewritten) != string(content) {
				changed = true
				content = rewritten
			}
		}
	}
	return content, changed
}
