// Package values converts raw cell values into canonical typed form. The
// target type is inferred from the column's name: date-like columns yield
// ISO calendar dates, money-like columns yield floats, count-like columns
// yield integers, and everything else passes through with strings trimmed.
// Parse failures never error; the original value survives unchanged.
package values

import (
	"strconv"
	"strings"
	"time"
)

// Role is the semantic role inferred from a column name.
type Role int

// Column roles.
const (
	RoleNone Role = iota
	RoleDate
	RoleAmount
	RoleQuantity
)

var (
	dateHints     = []string{"date", "time", "created", "updated"}
	amountHints   = []string{"amount", "price", "cost", "total", "revenue"}
	quantityHints = []string{"quantity", "qty", "count"}
)

// dateLayouts are tried in order by ParseDate. The ISO calendar date comes
// first so already-normalized values round-trip cheaply.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// currencyStripper removes currency symbols, grouping commas, and
// whitespace ahead of numeric parsing.
var currencyStripper = strings.NewReplacer(
	"$", "", "€", "", "£", "", "¥", "", "₹", "",
	",", "", " ", "", "\t", "",
)

// RoleOf infers the semantic role of a column from its name,
// case-insensitively.
func RoleOf(column string) Role {
	name := strings.ToLower(column)
	for _, hint := range dateHints {
		if strings.Contains(name, hint) {
			return RoleDate
		}
	}
	for _, hint := range amountHints {
		if strings.Contains(name, hint) {
			return RoleAmount
		}
	}
	for _, hint := range quantityHints {
		if strings.Contains(name, hint) {
			return RoleQuantity
		}
	}
	return RoleNone
}

// Normalize converts a raw cell value to canonical form for the given raw
// column name. It returns nil for absent values (nil or blank string);
// callers drop nil fields from merged records entirely.
func Normalize(value any, column string) any {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}

	switch RoleOf(column) {
	case RoleDate:
		return normalizeDate(value)
	case RoleAmount:
		return normalizeAmount(value)
	case RoleQuantity:
		return normalizeQuantity(value)
	}

	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return value
}

// normalizeDate returns the ISO calendar date for parseable string values,
// discarding any time of day. Unparseable strings come back trimmed but
// otherwise unchanged; non-strings pass through.
func normalizeDate(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	s = strings.TrimSpace(s)
	if t, ok := ParseDate(s); ok {
		return t.Format("2006-01-02")
	}
	return s
}

// ParseDate parses a date string against the supported layouts.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeAmount parses money-like strings into floats after stripping
// currency symbols, grouping commas, and whitespace.
func normalizeAmount(value any) any {
	switch t := value.(type) {
	case string:
		stripped := currencyStripper.Replace(strings.TrimSpace(t))
		if f, err := strconv.ParseFloat(stripped, 64); err == nil {
			return f
		}
		return value
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return value
	}
}

// normalizeQuantity parses count-like strings into integers.
func normalizeQuantity(value any) any {
	switch t := value.(type) {
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n
		}
		return value
	case float64:
		if t == float64(int64(t)) {
			return int64(t)
		}
		return value
	default:
		return value
	}
}
