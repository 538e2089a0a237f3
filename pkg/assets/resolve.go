package assets

import (
	"net/url"
	"strings"

	"github.com/seaward/blobtree/pkg/locator"
	"github.com/seaward/blobtree/pkg/pathkit"
)

// ResolveAbsoluteURL turns any caller-supplied key or URL into the
// canonical absolute form under the store base, CDN host applied. Query
// strings survive the combination verbatim.
func (p *Provider) ResolveAbsoluteURL(input string) (string, error) {
	resolved, err := pathkit.ResolveAbsolute(p.publicBase(), input)
	if err != nil {
		return "", err
	}
	return resolved.String(), nil
}

// publicBase is the base URL with the CDN host swapped in when one is
// configured. Scheme and path come from the backend base either way.
func (p *Provider) publicBase() *url.URL {
	if p.cdnHost == "" {
		return p.base
	}
	b := *p.base
	b.Host = p.cdnHost
	return &b
}

// fileURLs renders the absolute and relative URLs for a file locator.
func (p *Provider) fileURLs(loc locator.Locator) (abs, rel string) {
	abs = locator.AbsoluteURL(loc, p.base, p.cdnHost)
	if u, err := url.Parse(abs); err == nil {
		rel = locator.RelativeURL(u, p.base)
	}
	return abs, rel
}

// dirURLs renders the absolute and relative URLs for a directory locator,
// both with a trailing delimiter.
func (p *Provider) dirURLs(loc locator.Locator) (abs, rel string) {
	abs, rel = p.fileURLs(loc)
	if !strings.HasSuffix(abs, locator.Delimiter) {
		abs += locator.Delimiter
	}
	if !strings.HasSuffix(rel, locator.Delimiter) {
		rel += locator.Delimiter
	}
	return abs, rel
}

// leafName returns the decoded final segment of a key or key prefix.
func leafName(key string) string {
	trimmed := strings.TrimSuffix(key, locator.Delimiter)
	if idx := strings.LastIndex(trimmed, locator.Delimiter); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return trimmed
}
