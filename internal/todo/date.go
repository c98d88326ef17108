package todo

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDueDate turns YYYY-MM-DD input into a calendar date in loc. Blank
// input yields the zero time, meaning "no due date".
//
// Each component is an optionally signed integer and anything after the
// third is ignored. Out-of-range months and days roll over the way
// time.Date does, so 2024-13-45 becomes 2025-02-14.
func ParseDueDate(input string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(input) == "" {
		return time.Time{}, nil
	}
	parts, n := scanDate(input)
	if n != 3 {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, input)
	}
	return time.Date(parts[0], time.Month(parts[1]), parts[2], 0, 0, 0, 0, loc), nil
}

// FormatDate renders a due date for display and prompts; the zero time
// renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func scanDate(s string) ([3]int, int) {
	var parts [3]int
	n, pos := 0, 0
	for n < len(parts) {
		if n > 0 {
			if pos >= len(s) || s[pos] != '-' {
				return parts, n
			}
			pos++
		}
		v, next, ok := scanInt(s, pos)
		if !ok {
			return parts, n
		}
		parts[n] = v
		n++
		pos = next
	}
	return parts, n
}

func scanInt(s string, pos int) (int, int, bool) {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	start := pos
	if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
		pos++
	}
	digits := pos
	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		pos++
	}
	if pos == digits {
		return 0, start, false
	}
	v, err := strconv.Atoi(s[start:pos])
	if err != nil {
		return 0, start, false
	}
	return v, pos, true
}
