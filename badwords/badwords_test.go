package badwords

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestList(t *testing.T, words string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(words), 0o644))
	require.NoError(t, LoadBadWords(path))
}

func TestContainsBadWords(t *testing.T) {
	loadTestList(t, "scam\nfraud\n")

	assert.True(t, ContainsBadWords("this trip is a SCAM"))
	assert.True(t, ContainsBadWords("total fraud, avoid!"))
	assert.False(t, ContainsBadWords("a lovely alpine hike"))
	// Substrings of clean words do not match.
	assert.False(t, ContainsBadWords("scampi dinner included"))
}

func TestContainsBadWordsEmptyList(t *testing.T) {
	loadTestList(t, "")
	assert.False(t, ContainsBadWords("anything goes"))
}

func TestLoadBadWordsMissingFile(t *testing.T) {
	err := LoadBadWords(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
