// Package policy gates which file names may be written or transferred.
//
// Rules are doublestar glob patterns evaluated against the lowercased
// leaf name of an object. Deny patterns are checked first; an empty
// allow list permits everything not denied.
package policy

import (
	"errors"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Errors returned by policy operations.
var (
	// ErrExtensionNotAllowed is returned when a file name is rejected by
	// the configured rules.
	ErrExtensionNotAllowed = errors.New("file type not allowed")

	// ErrInvalidPattern is returned when a pattern cannot be compiled.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// PatternError wraps pattern-related errors with context.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return "pattern " + e.Pattern + ": " + e.Err.Error()
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Checker decides whether a file name is acceptable.
//
// Implementations are safe for concurrent use after creation.
type Checker interface {
	// Check returns ErrExtensionNotAllowed (wrapped with the name) when
	// the file name is rejected, nil otherwise.
	Check(name string) error
}

// Rules is a glob-based Checker.
//
//   - Deny patterns: name must not match any
//   - Allow patterns: name must match at least one, unless the list is
//     empty, in which case anything not denied passes
type Rules struct {
	allow []string
	deny  []string
}

var _ Checker = (*Rules)(nil)

// New compiles allow and deny patterns into a Rules checker.
//
// Patterns match case-insensitively against the leaf name, so "*.PDF"
// and "*.pdf" are equivalent. Returns an error if any pattern is
// invalid.
func New(allow, deny []string) (*Rules, error) {
	compile := func(raw []string) ([]string, error) {
		patterns := make([]string, 0, len(raw))
		for _, p := range raw {
			normalized := strings.ToLower(strings.TrimSpace(p))
			if normalized == "" {
				continue
			}
			if !doublestar.ValidatePattern(normalized) {
				return nil, &PatternError{Pattern: p, Err: ErrInvalidPattern}
			}
			patterns = append(patterns, normalized)
		}
		return patterns, nil
	}

	allowed, err := compile(allow)
	if err != nil {
		return nil, err
	}
	denied, err := compile(deny)
	if err != nil {
		return nil, err
	}
	return &Rules{allow: allowed, deny: denied}, nil
}

// Check evaluates the leaf of name against the rules.
func (r *Rules) Check(name string) error {
	leaf := name
	if idx := strings.LastIndex(leaf, "/"); idx >= 0 {
		leaf = leaf[idx+1:]
	}
	leaf = strings.ToLower(leaf)

	for _, p := range r.deny {
		if matchPattern(p, leaf) {
			return &PatternError{Pattern: name, Err: ErrExtensionNotAllowed}
		}
	}

	if len(r.allow) == 0 {
		return nil
	}
	for _, p := range r.allow {
		if matchPattern(p, leaf) {
			return nil
		}
	}
	return &PatternError{Pattern: name, Err: ErrExtensionNotAllowed}
}

// AllowAll is a Checker that permits everything.
type AllowAll struct{}

// Check always returns nil.
func (AllowAll) Check(string) error { return nil }

// matchPattern matches a name against a doublestar pattern.
func matchPattern(pattern, name string) bool {
	matched, err := doublestar.Match(pattern, name)
	if err != nil {
		// Pattern was validated at construction time, so this shouldn't happen
		return false
	}
	return matched
}
