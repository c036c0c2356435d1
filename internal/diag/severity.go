package diag

import "strings"

// Severity ранжирует диагностики о входных данных и конфигурации. Уровня
// ошибки нет: всё, что не даёт довести анализ до конца, возвращается как error.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Label is the lowercase spelling used by golden output.
func (s Severity) Label() string { return strings.ToLower(s.String()) }

// Notable reports whether the diagnostic is worth highlighting to the user.
func (s Severity) Notable() bool { return s >= SevWarning }
