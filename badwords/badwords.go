package badwords

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// badWordsMap is a set of banned words for listing moderation.
var badWordsMap map[string]struct{}

var mu sync.RWMutex

// LoadBadWords loads banned words from a text file, one word per line.
func LoadBadWords(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read bad words file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	newBadWordsMap := make(map[string]struct{})

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine != "" {
			newBadWordsMap[strings.ToLower(trimmedLine)] = struct{}{}
		}
	}

	mu.Lock()
	badWordsMap = newBadWordsMap
	mu.Unlock()

	return nil
}

// ContainsBadWords reports whether any word of the text is on the banned
// list. Matching is case-insensitive and ignores surrounding punctuation.
func ContainsBadWords(text string) bool {
	mu.RLock()
	defer mu.RUnlock()

	if len(badWordsMap) == 0 {
		return false
	}

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" {
			continue
		}
		if _, found := badWordsMap[word]; found {
			return true
		}
	}
	return false
}
