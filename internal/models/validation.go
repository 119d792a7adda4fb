package models

import (
	"regexp"
	"time"
)

var postDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidPostDate validates a YYYY-MM-DD calendar date.
func IsValidPostDate(date string) bool {
	if !postDateRegex.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
