package pathkit

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "root relative file",
			in:   "/catalog/151349/epson printer.txt",
			want: []string{"catalog", "151349", "epson printer.txt"},
		},
		{
			name: "container relative",
			in:   "catalog/151349",
			want: []string{"catalog", "151349"},
		},
		{
			name: "absolute URL takes path component",
			in:   "https://acct.blob.core.windows.net/catalog/epson%20printer.txt",
			want: []string{"catalog", "epson%20printer.txt"},
		},
		{
			name: "trailing delimiter stripped",
			in:   "catalog/dir/",
			want: []string{"catalog", "dir"},
		},
		{
			name: "doubled trailing delimiter preserves empty leaf",
			in:   "catalog/dir//",
			want: []string{"catalog", "dir", ""},
		},
		{
			name: "backslash separators",
			in:   `catalog\151349\file.txt`,
			want: []string{"catalog", "151349", "file.txt"},
		},
		{
			name: "query string ignored",
			in:   "catalog/file.txt?v=2",
			want: []string{"catalog", "file.txt"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "bare delimiter",
			in:   "/",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segmentize(tt.in))
		})
	}
}

func TestEscapeSegmentRoundTrip(t *testing.T) {
	segments := []string{
		"epson printer.txt",
		"file with spaces and (parens)",
		"already%20encoded.txt",
		"ümlaut.pdf",
		"plus+sign",
		"100%",
	}

	for _, s := range segments {
		t.Run(s, func(t *testing.T) {
			escaped := EscapeSegment(s)
			assert.Equal(t, escaped, EscapeSegment(escaped), "escaping must be idempotent")
			assert.Equal(t, UnescapeSegment(escaped), UnescapeSegment(EscapeSegment(escaped)))
		})
	}
}

func TestEscapeSegment(t *testing.T) {
	assert.Equal(t, "epson%20printer.txt", EscapeSegment("epson printer.txt"))
	assert.Equal(t, "epson%20printer.txt", EscapeSegment("epson%20printer.txt"))
	assert.Equal(t, "epson printer.txt", UnescapeSegment("epson%20printer.txt"))
}

func TestEscapePathPreservesDelimiters(t *testing.T) {
	assert.Equal(t, "catalog/151349/epson%20printer.txt", EscapePath("catalog/151349/epson printer.txt"))
	assert.Equal(t, "/catalog/dir/", EscapePath("/catalog/dir/"))
	assert.Equal(t, "catalog/151349/epson printer.txt", UnescapePath("catalog/151349/epson%20printer.txt"))
}

func TestHasTrailingDelimiter(t *testing.T) {
	assert.True(t, HasTrailingDelimiter("catalog/dir/"))
	assert.True(t, HasTrailingDelimiter("https://host/catalog/dir/"))
	assert.True(t, HasTrailingDelimiter("catalog/dir/?x=1"))
	assert.False(t, HasTrailingDelimiter("catalog/file.txt"))
	assert.False(t, HasTrailingDelimiter("https://host/catalog/file.txt?x=1"))
}

func TestResolveAbsolute(t *testing.T) {
	base, err := url.Parse("https://acct.blob.core.windows.net")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain file name",
			input: "epson printer.txt",
			want:  "https://acct.blob.core.windows.net/epson%20printer.txt",
		},
		{
			name:  "already encoded",
			input: "epson%20printer.txt",
			want:  "https://acct.blob.core.windows.net/epson%20printer.txt",
		},
		{
			name:  "leading delimiter is not an absolute path",
			input: "/catalog/file.txt",
			want:  "https://acct.blob.core.windows.net/catalog/file.txt",
		},
		{
			name:  "query preserved verbatim",
			input: "epson%20printer.txt?test=Name%20With%20Space",
			want:  "https://acct.blob.core.windows.net/epson%20printer.txt?test=Name%20With%20Space",
		},
		{
			name:  "absolute input returned as is",
			input: "https://other.example.com/a/b.txt",
			want:  "https://other.example.com/a/b.txt",
		},
		{
			name:  "directory target keeps trailing delimiter",
			input: "catalog/dir/",
			want:  "https://acct.blob.core.windows.net/catalog/dir/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAbsolute(base, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestResolveAbsoluteSchemeAndHost(t *testing.T) {
	base, err := url.Parse("https://acct.blob.core.windows.net/root")
	require.NoError(t, err)

	for _, input := range []string{"a/b.txt", "/a/b.txt", "a b/c.txt"} {
		got, err := ResolveAbsolute(base, input)
		require.NoError(t, err)
		assert.True(t, got.IsAbs())
		assert.Equal(t, "https", got.Scheme)
		assert.Equal(t, "acct.blob.core.windows.net", got.Host)
	}
}

func TestResolveAbsoluteBaseQueryKept(t *testing.T) {
	base, err := url.Parse("https://acct.blob.core.windows.net?sv=2024&sig=abc")
	require.NoError(t, err)

	got, err := ResolveAbsolute(base, "catalog/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "sv=2024&sig=abc", got.RawQuery)
}

func TestResolveAbsoluteNilBase(t *testing.T) {
	_, err := ResolveAbsolute(nil, "relative/path.txt")
	assert.ErrorIs(t, err, ErrNoBase)
}
