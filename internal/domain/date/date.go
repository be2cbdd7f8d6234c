// Package date normalizes the partial dates stored by archival
// descriptions into values a search index accepts.
package date

import (
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/searchscope/internal/domain"
)

// IndexLayout is the datetime format written to the index. The trailing Z is
// literal: values are rendered in UTC.
const IndexLayout = "2006-01-02T15:04:05Z"

const partialLayout = "YYYY-MM-DD"

var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NormalizeIncomplete fills the zero month and day of a YYYY-MM-DD date:
// 01 for a range start, 12 and the month's last day for a range end.
// Non-zero components are kept verbatim.
//
// An empty input, or a zero year, yields "" with no error. A value that is
// not three hyphen-separated parts yields a *domain.InvalidFormatError.
func NormalizeIncomplete(value string, endOfRange bool) (string, error) {
	if value == "" {
		return "", nil
	}

	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return "", domain.NewInvalidFormat(value, partialLayout)
	}
	year, month, day := parts[0], parts[1], parts[2]

	y := leadingInt(year)
	if y == 0 {
		return "", nil
	}

	if leadingInt(month) == 0 {
		month = "01"
		if endOfRange {
			month = "12"
		}
	}

	if leadingInt(day) == 0 {
		day = "01"
		if endOfRange {
			m := leadingInt(month)
			if m < 1 || m > 12 {
				return "", domain.NewInvalidFormat(value, partialLayout)
			}
			day = strconv.Itoa(DaysInMonth(y, time.Month(m)))
		}
	}

	return year + "-" + month + "-" + day, nil
}

// DaysInMonth returns the number of days in a month of the proleptic
// Gregorian calendar.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Convert renders a date or datetime string in IndexLayout.
// An empty value yields "".
func Convert(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return ConvertTime(t), nil
		}
	}
	return "", domain.NewInvalidFormat(value, partialLayout+" or RFC 3339")
}

// ConvertTime renders t in IndexLayout.
func ConvertTime(t time.Time) string {
	return t.UTC().Format(IndexLayout)
}

// leadingInt reads an optional sign and the leading digits of s, ignoring
// leading spaces. Anything unreadable counts as 0.
func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
