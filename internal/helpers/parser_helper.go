package helpers

import (
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseID parses a positive numeric path id.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// PageBounds returns the slice bounds of page (1-based) over total items.
// ok is false when the page holds no items.
func PageBounds(page, perPage, total int) (start, end int, ok bool) {
	if page < 1 || perPage < 1 || total < 1 {
		return 0, 0, false
	}
	// Compare page counts first so (page-1)*perPage cannot overflow.
	if pages := (total + perPage - 1) / perPage; page > pages {
		return 0, 0, false
	}
	start = (page - 1) * perPage
	end = start + perPage
	if end > total {
		end = total
	}
	return start, end, true
}

const maxSanitizePasses = 5

// SanitizeText strips markup and surrounding whitespace from user input.
// It repeats strip-then-decode until the text is stable, so entity-encoded
// tags are stripped as well and the result never decodes into markup.
func SanitizeText(s string) string {
	for range maxSanitizePasses {
		clean := html.UnescapeString(sanitizer.Sanitize(s))
		if clean == s {
			return strings.TrimSpace(s)
		}
		s = clean
	}
	return strings.TrimSpace(sanitizer.Sanitize(s))
}

// LikePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?.
func LikePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.ToLower(term)) + "%"
}
