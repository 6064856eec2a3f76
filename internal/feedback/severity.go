package feedback

import "fmt"

// Severity indicates the severity level of a feedback item.
// Unknown values round-trip through serialization as opaque strings.
type Severity string

// Severity levels, ordered Info < Warning < Error.
const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// rank maps a severity to its position in the total order. Unknown
// severities rank below Info so they never trip a threshold.
func (s Severity) rank() int {
	switch s {
	case Info:
		return 1
	case Warning:
		return 2
	case Error:
		return 3
	}
	return 0
}

// AtLeast reports whether s is greater than or equal to t in the
// severity order.
func (s Severity) AtLeast(t Severity) bool {
	return s.rank() >= t.rank()
}

// ParseSeverity converts a string to one of the three defined levels.
func ParseSeverity(v string) (Severity, error) {
	switch Severity(v) {
	case Info, Warning, Error:
		return Severity(v), nil
	}
	return "", fmt.Errorf("unknown severity %q (want info, warning or error)", v)
}
