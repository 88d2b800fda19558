package spelling

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	content := `# common misspellings
recieve||receive
teh||the

no separator line
abandonned||abandoned
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d; want 3", d.Len())
	}

	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{"recieve", "receive", true},
		{"Recieve", "receive", true}, // case-insensitive lookup
		{"TEH", "the", true},
		{"receive", "", false},
	}
	for _, tt := range tests {
		got, ok := d.Correct(tt.word)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Correct(%q) = %q,%v; want %q,%v", tt.word, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/dictionary"); err == nil {
		t.Error("want an error for a missing dictionary file")
	}
}
