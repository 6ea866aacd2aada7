package content

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9 -]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a title: lowercase, non-alphanumeric
// characters stripped, spaces to hyphens, repeated hyphens collapsed.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// readingWordsPerMinute matches the estimate used by the admin editor.
const readingWordsPerMinute = 200

// ReadingTime estimates reading time in whole minutes for markdown text,
// with a minimum of one minute.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	minutes := (words + readingWordsPerMinute - 1) / readingWordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
