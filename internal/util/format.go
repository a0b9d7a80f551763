package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDate formats an ISO date (YYYY-MM-DD) for display.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "—"
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02, 2006")
}

// FormatPrice formats an amount in Tunisian dinars.
func FormatPrice(v float64) string {
	return fmt.Sprintf("%.3f DT", v)
}

// FormatEntityPrice formats a catalog price string, which may be empty.
func FormatEntityPrice(price string) string {
	s := strings.TrimSpace(price)
	if s == "" {
		return "price unavailable"
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return FormatPrice(v)
}

// FormatRating formats a rating as "4.5" or "—" if absent.
func FormatRating(rating *float64) string {
	if rating == nil {
		return "—"
	}
	s := strconv.FormatFloat(*rating, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// FormatStars renders a star count as "★★★☆☆".
func FormatStars(stars int) string {
	if stars < 0 {
		stars = 0
	}
	if stars > 5 {
		stars = 5
	}
	return strings.Repeat("★", stars) + strings.Repeat("☆", 5-stars)
}

// FormatForks renders a restaurant fork rating (1-3).
func FormatForks(forks int) string {
	if forks < 1 {
		return "—"
	}
	if forks > 3 {
		forks = 3
	}
	return strings.Repeat("⑂", forks)
}

// ParseDateInput parses flexible user input and normalizes to ISO
// (YYYY-MM-DD). Empty input is allowed and returns "".
func ParseDateInput(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", nil
	}

	layouts := []string{
		"2006-01-02",
		"January 2, 2006",
		"Jan 2, 2006",
		"2/1/2006",
		"02/01/2006",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	return "", fmt.Errorf("invalid date format")
}

// TodayISO returns today's date in ISO 8601 format (YYYY-MM-DD).
func TodayISO() string {
	return time.Now().Format("2006-01-02")
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
