package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_AllowList(t *testing.T) {
	rules, err := New([]string{"*.jpg", "*.png", "*.pdf"}, nil)
	require.NoError(t, err)

	assert.NoError(t, rules.Check("photo.jpg"))
	assert.NoError(t, rules.Check("catalog/151349/manual.PDF"))
	assert.ErrorIs(t, rules.Check("setup.exe"), ErrExtensionNotAllowed)
	assert.ErrorIs(t, rules.Check("archive.tar.gz"), ErrExtensionNotAllowed)
}

func TestRules_DenyFirst(t *testing.T) {
	rules, err := New([]string{"*"}, []string{"*.exe", "*.bat"})
	require.NoError(t, err)

	assert.NoError(t, rules.Check("report.docx"))
	assert.ErrorIs(t, rules.Check("Setup.EXE"), ErrExtensionNotAllowed)
	assert.ErrorIs(t, rules.Check("run.bat"), ErrExtensionNotAllowed)
}

func TestRules_EmptyAllowPermits(t *testing.T) {
	rules, err := New(nil, []string{"*.exe"})
	require.NoError(t, err)

	assert.NoError(t, rules.Check("anything.xyz"))
	assert.ErrorIs(t, rules.Check("evil.exe"), ErrExtensionNotAllowed)
}

func TestRules_LeafOnly(t *testing.T) {
	rules, err := New([]string{"*.txt"}, nil)
	require.NoError(t, err)

	// Only the leaf name is matched, directories never interfere.
	assert.NoError(t, rules.Check("catalog/151349/epson printer.txt"))
	assert.ErrorIs(t, rules.Check("notes.txt.exe"), ErrExtensionNotAllowed)
}

func TestRules_InvalidPattern(t *testing.T) {
	_, err := New([]string{"[unclosed"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	var patternErr *PatternError
	require.ErrorAs(t, err, &patternErr)
	assert.Equal(t, "[unclosed", patternErr.Pattern)
}

func TestAllowAll(t *testing.T) {
	var c Checker = AllowAll{}
	assert.NoError(t, c.Check("anything.exe"))
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "allow:\n  - \"*.jpg\"\ndeny:\n  - \"*.exe\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.NoError(t, rules.Check("a.jpg"))
	assert.ErrorIs(t, rules.Check("a.exe"), ErrExtensionNotAllowed)
	assert.ErrorIs(t, rules.Check("a.png"), ErrExtensionNotAllowed)
}

func TestLoadRules_Errors(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allow: {not: a list"), 0o644))
	_, err = LoadRules(path)
	require.Error(t, err)
}
