package vcs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Ownership answers which reviewers own a path. Unavailable ownership data
// degrades the dependent check to a no-op.
type Ownership interface {
	// Owners returns the owner entries covering path. ok is false when no
	// ownership data covers it.
	Owners(path string) (owners []string, ok bool)
}

// OwnersFiles resolves ownership from OWNERS files, walking from the file's
// directory up to Root. The nearest OWNERS file wins; "*" grants everyone.
type OwnersFiles struct {
	Root string
}

func (o *OwnersFiles) Owners(path string) ([]string, bool) {
	dir := filepath.Dir(filepath.Join(o.Root, path))
	root := filepath.Clean(o.Root)

	for {
		if owners, ok := readOwnersFile(filepath.Join(dir, "OWNERS")); ok {
			return owners, true
		}
		if dir == root || dir == string(filepath.Separator) || dir == "." {
			return nil, false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, false
		}
		dir = parent
	}
}

func readOwnersFile(path string) ([]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var owners []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		owners = append(owners, line)
	}
	if scanner.Err() != nil || len(owners) == 0 {
		return nil, false
	}
	return owners, true
}

// FakeOwnership is an in-memory Ownership for tests: directory prefix to
// owner list.
type FakeOwnership map[string][]string

func (f FakeOwnership) Owners(path string) ([]string, bool) {
	dir := path
	for {
		dir = filepath.Dir(dir)
		if owners, ok := f[dir]; ok {
			return owners, true
		}
		if dir == "." || dir == string(filepath.Separator) {
			return nil, false
		}
	}
}
