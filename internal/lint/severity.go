package lint

import "fmt"

// Severity defines the importance of a diagnostic. CHECK < WARN < ERROR.
type Severity uint8

const (
	SevCheck Severity = iota
	SevWarn
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevCheck:
		return "CHECK"
	case SevWarn:
		return "WARN"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity accepts the spellings used on the command line.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "check", "CHECK":
		return SevCheck, nil
	case "warn", "WARN", "warning", "WARNING":
		return SevWarn, nil
	case "error", "ERROR":
		return SevError, nil
	}
	return SevCheck, fmt.Errorf("unknown severity %q (want check, warn or error)", s)
}
