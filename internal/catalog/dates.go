package catalog

import (
	"strings"
	"time"
)

const (
	// CanonicalDateLayout is the storage form of entry dates.
	CanonicalDateLayout = "2006-01-02"
	// DisplayDateLayout is the form shown and typed at the edit boundary.
	DisplayDateLayout = "02/01/2006"
)

// CanonicalDate renders t as a canonical calendar date in t's location.
func CanonicalDate(t time.Time) string {
	return t.Format(CanonicalDateLayout)
}

// IsCanonicalDate reports whether value is a valid YYYY-MM-DD date.
func IsCanonicalDate(value string) bool {
	_, err := time.Parse(CanonicalDateLayout, value)
	return err == nil
}

// CanonicalToDisplay converts a stored date to DD/MM/YYYY. Empty input yields
// empty output; a value that is not canonical is returned unchanged.
func CanonicalToDisplay(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	t, err := time.Parse(CanonicalDateLayout, value)
	if err != nil {
		return value
	}
	return t.Format(DisplayDateLayout)
}

// DisplayToCanonical converts a DD/MM/YYYY value to canonical form. Day and
// month may be given with one digit. Anything that does not split into three
// non-empty components, or does not name a real calendar day, becomes "".
func DisplayToCanonical(value string) string {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 3 {
		return ""
	}
	day := strings.TrimSpace(parts[0])
	month := strings.TrimSpace(parts[1])
	year := strings.TrimSpace(parts[2])
	if day == "" || month == "" || year == "" {
		return ""
	}
	canonical := year + "-" + padTwo(month) + "-" + padTwo(day)
	if !IsCanonicalDate(canonical) {
		return ""
	}
	return canonical
}

// ParseLooseDate accepts the date spellings found in spreadsheets: canonical,
// DD/MM/YYYY and RFC3339 timestamps.
func ParseLooseDate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if IsCanonicalDate(value) {
		return value, true
	}
	if canonical := DisplayToCanonical(value); canonical != "" {
		return canonical, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return CanonicalDate(t), true
	}
	return "", false
}

func padTwo(value string) string {
	if len(value) == 1 {
		return "0" + value
	}
	return value
}
