// Package pathkit implements URL and path-segment encoding for blob keys.
//
// Blob stores expose a flat key namespace while callers hand us URLs in many
// shapes: absolute web URLs, root-relative paths, container-relative paths,
// Windows-style backslash paths, with or without percent-encoding, with or
// without a query string. Everything in this package is a pure function; the
// rest of the codebase funnels all of those shapes through here so that a
// path segment has exactly one canonical encoded and decoded form.
package pathkit

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Delimiter separates path segments in URLs and blob keys alike.
const Delimiter = "/"

// ErrNoBase is returned by ResolveAbsolute when no base URL is supplied.
var ErrNoBase = errors.New("base URL is required")

// Segmentize splits a URL or path into its ordered path segments.
//
// Absolute URLs contribute their path component only; anything else is
// treated as an already-relative path. A query string is ignored. One
// leading and one trailing delimiter are stripped before splitting, so a
// trailing empty segment survives only when the input carried a doubled
// delimiter. Both forward and backslashes separate segments.
//
// Segments are returned as they appear in the input (possibly
// percent-encoded); use UnescapeSegment to decode them.
func Segmentize(raw string) []string {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.IsAbs() && u.Host != "" {
		p = u.EscapedPath()
	} else if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	p = strings.ReplaceAll(p, "\\", Delimiter)
	p = strings.TrimPrefix(p, Delimiter)
	p = strings.TrimSuffix(p, Delimiter)
	if p == "" {
		return nil
	}
	return strings.Split(p, Delimiter)
}

// EscapeSegment percent-encodes a single path segment.
//
// The segment is decoded first, so already-encoded input is not encoded
// twice: EscapeSegment("epson printer.txt") and
// EscapeSegment("epson%20printer.txt") both yield "epson%20printer.txt".
func EscapeSegment(s string) string {
	if d, err := url.PathUnescape(s); err == nil {
		s = d
	}
	return url.PathEscape(s)
}

// UnescapeSegment percent-decodes a single path segment. Input that is not
// valid percent-encoding is returned unchanged rather than rejected, since
// blob keys may legally contain a bare '%'.
func UnescapeSegment(s string) string {
	if d, err := url.PathUnescape(s); err == nil {
		return d
	}
	return s
}

// EscapePath applies EscapeSegment to every segment of p, leaving the
// delimiters themselves untouched. Leading and trailing delimiters are
// preserved.
func EscapePath(p string) string {
	parts := strings.Split(p, Delimiter)
	for i, s := range parts {
		if s != "" {
			parts[i] = EscapeSegment(s)
		}
	}
	return strings.Join(parts, Delimiter)
}

// UnescapePath applies UnescapeSegment to every segment of p.
func UnescapePath(p string) string {
	parts := strings.Split(p, Delimiter)
	for i, s := range parts {
		if s != "" {
			parts[i] = UnescapeSegment(s)
		}
	}
	return strings.Join(parts, Delimiter)
}

// HasTrailingDelimiter reports whether the path component of raw ends with
// the delimiter. This single signal distinguishes directory targets from
// file targets everywhere above this package.
func HasTrailingDelimiter(raw string) bool {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.IsAbs() && u.Host != "" {
		p = u.EscapedPath()
	} else if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	p = strings.ReplaceAll(p, "\\", Delimiter)
	return strings.HasSuffix(p, Delimiter)
}

// ResolveAbsolute combines base with input, yielding an absolute URL.
//
// Input that already parses as an absolute URL is returned as parsed
// (re-encoded canonically, nothing else changed). Relative input is
// prefixed with "./" so that a leading delimiter cannot be mistaken for an
// absolute filesystem path, then resolved against base with the base path
// forced to end in a delimiter.
//
// A query string on the input is reattached verbatim after path
// combination; failing that, the base's query string is kept. A query is
// never silently dropped.
func ResolveAbsolute(base *url.URL, input string) (*url.URL, error) {
	if u, err := url.Parse(input); err == nil && u.IsAbs() && u.Host != "" {
		return u, nil
	}
	if base == nil {
		return nil, ErrNoBase
	}

	pathPart, query := input, ""
	if i := strings.IndexByte(input, '?'); i >= 0 {
		pathPart, query = input[:i], input[i+1:]
	}
	pathPart = strings.ReplaceAll(pathPart, "\\", Delimiter)
	ref := "./" + strings.TrimPrefix(EscapePath(pathPart), Delimiter)

	refURL, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("pathkit: parse %q: %w", input, err)
	}

	b := *base
	if !strings.HasSuffix(b.Path, Delimiter) {
		b.Path += Delimiter
		b.RawPath = ""
	}
	resolved := b.ResolveReference(refURL)
	if query != "" {
		resolved.RawQuery = query
	} else if base.RawQuery != "" {
		resolved.RawQuery = base.RawQuery
	}
	return resolved, nil
}
