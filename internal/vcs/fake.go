package vcs

// FakeLog is an in-memory Log for tests: commit id to subject line.
type FakeLog map[string]string

func (f FakeLog) Lookup(commitID string) (string, bool) {
	for id, subject := range f {
		if len(commitID) >= 5 && len(commitID) <= len(id) && id[:len(commitID)] == commitID {
			return subject, true
		}
	}
	return "", false
}
