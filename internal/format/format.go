// Package format maps raw wire values to the display strings the French UI
// shows. All functions are pure.
package format

import (
	"fmt"
	"time"
)

// French month abbreviations: short month name, capitalized, truncated to
// three characters. juin and juillet both truncate to "Jui".
var frMonths = [...]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jui",
	"Jui", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

var statusLabels = map[string]string{
	"pending":  "En attente",
	"accepted": "Accepté",
	"refused":  "Refusé",
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses an ISO-8601 date string as it appears on the wire.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// Date renders a wire date as a display string, e.g. "4 Avr. 04".
// Callers are expected to fall back to the raw string when it fails.
func Date(raw string) (string, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return "", err
	}
	return DisplayDate(t), nil
}

// DisplayDate renders an already-parsed date as the UI shows it.
func DisplayDate(t time.Time) string {
	return fmt.Sprintf("%d %s. %02d", t.Day(), frMonths[t.Month()-1], t.Year()%100)
}

// Status maps a wire status to its localized label. Unrecognized values pass
// through unchanged.
func Status(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}
