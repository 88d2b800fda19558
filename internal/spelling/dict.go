// Package spelling is the misspelling-dictionary collaborator. The file
// format is one entry per line, "misspelling||correction", the same shape
// codespell dictionaries use. A missing dictionary disables the dependent
// rule; it never fails the run.
package spelling

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Dictionary maps lowercase misspellings to their corrections.
type Dictionary struct {
	words map[string]string
}

// Load reads a dictionary file. Blank lines and '#' comments are skipped;
// lines without the "||" separator are ignored rather than fatal.
func Load(filename string) (*Dictionary, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	d := &Dictionary{words: make(map[string]string)}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		bad, good, found := strings.Cut(line, "||")
		if !found {
			continue
		}
		bad = strings.ToLower(strings.TrimSpace(bad))
		good = strings.TrimSpace(good)
		if bad != "" && good != "" {
			d.words[bad] = good
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return d, nil
}

// New builds a dictionary from an in-memory table; used by tests.
func New(words map[string]string) *Dictionary {
	m := make(map[string]string, len(words))
	for bad, good := range words {
		m[strings.ToLower(bad)] = good
	}
	return &Dictionary{words: m}
}

// Len returns the number of known misspellings.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Correct returns the correction for a word, case-insensitively.
// ok is false when the word is not a known misspelling.
func (d *Dictionary) Correct(word string) (string, bool) {
	good, ok := d.words[strings.ToLower(word)]
	return good, ok
}
