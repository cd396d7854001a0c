// Package timeperiod maps relative time-period codes such as "14d" to the
// labels shown next to the global time-range selector.
package timeperiod

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ahmednasr/similar-trace/internal/models"
)

// FallbackLabel is used when the selected period is missing or unknown.
const FallbackLabel = "given timeframe"

var defaultPeriods = map[string]string{
	"1h":  "Last hour",
	"24h": "Last 24 hours",
	"7d":  "Last 7 days",
	"14d": "Last 14 days",
	"30d": "Last 30 days",
	"90d": "Last 90 days",
}

var codePattern = regexp.MustCompile(`^\d+[smhdw]$`)

// Table is an immutable period-code → label lookup.
type Table struct {
	labels map[string]string
}

// Default returns the built-in table.
func Default() Table {
	t, _ := New(nil)
	return t
}

// New returns the built-in periods overlaid with extra. Codes must look like
// "<n><unit>" with unit one of s, m, h, d, w, and labels must be non-empty.
func New(extra map[string]string) (Table, error) {
	labels := make(map[string]string, len(defaultPeriods)+len(extra))
	for code, label := range defaultPeriods {
		labels[code] = label
	}
	for code, label := range extra {
		if !codePattern.MatchString(code) {
			return Table{}, fmt.Errorf("invalid relative period code %q", code)
		}
		if strings.TrimSpace(label) == "" {
			return Table{}, fmt.Errorf("empty label for relative period %q", code)
		}
		labels[code] = label
	}
	return Table{labels: labels}, nil
}

// Label returns the label for code.
func (t Table) Label(code string) (string, bool) {
	label, ok := t.labels[code]
	return label, ok
}

// Describe turns a statsPeriod query value into the phrase used in
// messages: the lower-cased label for a known code, FallbackLabel for
// anything else (absent, empty, repeated or unknown).
func (t Table) Describe(statsPeriod models.QueryValue) string {
	code, ok := statsPeriod.AsString()
	if !ok || code == "" {
		return FallbackLabel
	}
	label, ok := t.Label(code)
	if !ok {
		return FallbackLabel
	}
	return strings.ToLower(label)
}
