// Package locator maps URLs to container/path coordinates and back.
//
// The first path segment of any URL handed to this system is always the
// container name; the remainder is a blob key (file) or key prefix
// (directory). Directory paths always end with the delimiter, file paths
// never do - higher layers branch on exactly that signal.
package locator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/seaward/blobtree/pkg/pathkit"
)

// Delimiter separates path segments; it matches the backend's hierarchical
// listing delimiter.
const Delimiter = pathkit.Delimiter

// ErrInvalidLocator indicates a URL from which no container or path can be
// derived.
var ErrInvalidLocator = errors.New("invalid locator")

// Locator is the internal (container, path) coordinate derived from a URL.
// Exactly one of DirectoryPath and FilePath is set for any given call
// context; both are stored decoded.
type Locator struct {
	Container     string
	DirectoryPath string // ends with Delimiter when non-empty
	FilePath      string // never ends with Delimiter
}

// Path returns whichever of DirectoryPath and FilePath is set.
func (l Locator) Path() string {
	if l.DirectoryPath != "" {
		return l.DirectoryPath
	}
	return l.FilePath
}

// ContainerName extracts the container from rawURL: always the first path
// segment, decoded.
func ContainerName(rawURL string) (string, error) {
	segs := pathkit.Segmentize(rawURL)
	if len(segs) == 0 || segs[0] == "" {
		return "", fmt.Errorf("%w: no container in %q", ErrInvalidLocator, rawURL)
	}
	return pathkit.UnescapeSegment(segs[0]), nil
}

// DirectoryPath returns the decoded path after the container name with a
// trailing delimiter, or "" when rawURL addresses the container root.
func DirectoryPath(rawURL string) (string, error) {
	rest, err := remainder(rawURL)
	if err != nil || rest == "" {
		return "", err
	}
	return strings.TrimSuffix(rest, Delimiter) + Delimiter, nil
}

// FilePath returns the decoded path after the container name without a
// trailing delimiter, or "" when rawURL addresses the container root.
func FilePath(rawURL string) (string, error) {
	rest, err := remainder(rawURL)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(rest, Delimiter), nil
}

// IsDirectory reports whether rawURL denotes a directory target, which is
// signalled by a trailing delimiter (or by addressing a container root).
func IsDirectory(rawURL string) bool {
	if pathkit.HasTrailingDelimiter(rawURL) {
		return true
	}
	rest, err := remainder(rawURL)
	return err == nil && rest == ""
}

// Parse derives a full Locator from rawURL, using the trailing-delimiter
// signal to decide between a directory and a file coordinate.
func Parse(rawURL string) (Locator, error) {
	container, err := ContainerName(rawURL)
	if err != nil {
		return Locator{}, err
	}
	loc := Locator{Container: container}
	if IsDirectory(rawURL) {
		loc.DirectoryPath, err = DirectoryPath(rawURL)
	} else {
		loc.FilePath, err = FilePath(rawURL)
	}
	return loc, err
}

func remainder(rawURL string) (string, error) {
	segs := pathkit.Segmentize(rawURL)
	if len(segs) == 0 || segs[0] == "" {
		return "", fmt.Errorf("%w: no container in %q", ErrInvalidLocator, rawURL)
	}
	rest := segs[1:]
	if len(rest) == 0 {
		return "", nil
	}
	decoded := make([]string, len(rest))
	for i, s := range rest {
		decoded[i] = pathkit.UnescapeSegment(s)
	}
	return strings.Join(decoded, Delimiter), nil
}

// AbsoluteURL builds the canonical absolute URL for loc under base. When
// cdnHost is non-empty the host is replaced while the base scheme is kept.
// Every segment is percent-encoded exactly once.
func AbsoluteURL(loc Locator, base *url.URL, cdnHost string) string {
	host := base.Host
	if cdnHost != "" {
		host = cdnHost
	}
	rel := loc.Container
	if p := loc.Path(); p != "" {
		rel += Delimiter + p
	}
	basePath := strings.TrimSuffix(base.EscapedPath(), Delimiter)
	return base.Scheme + "://" + host + basePath + Delimiter + pathkit.EscapePath(rel)
}

// RelativeURL renders abs relative to the store's own base URL: the base
// path prefix is removed, a single leading delimiter is forced, and any
// query string is dropped.
func RelativeURL(abs, base *url.URL) string {
	p := abs.EscapedPath()
	if bp := strings.TrimSuffix(base.EscapedPath(), Delimiter); bp != "" {
		p = strings.TrimPrefix(p, bp)
	}
	if !strings.HasPrefix(p, Delimiter) {
		p = Delimiter + p
	}
	return p
}
