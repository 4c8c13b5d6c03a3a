// Package readingtime estimates how long a blog body takes to read.
package readingtime

import "strings"

// WordsPerMinute is the assumed reading rate.
const WordsPerMinute = 200

// Estimate returns the reading time for text in whole minutes, rounded up.
// Every body, including an empty one, reads for at least one minute.
func Estimate(text string) int {
	words := len(strings.Fields(text))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
