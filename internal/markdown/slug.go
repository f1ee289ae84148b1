package markdown

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxSlugLen caps filename stems so deep trees stay inside path limits.
const maxSlugLen = 100

var separatorRuns = regexp.MustCompile(`[\s-]+`)

// Slugify derives a filesystem-safe filename stem from a page title.
// Accented characters are decomposed and reduced to their ASCII base,
// everything outside [a-z0-9-] is dropped or collapsed into hyphens,
// and the result is capped at 100 characters. An empty result becomes
// "untitled", so the output is always a usable filename.
func Slugify(title string) string {
	// Decompose accents into base + combining mark, then drop every
	// non-ASCII code point (which removes the marks).
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, norm.NFKD.String(title))

	lower := strings.ToLower(ascii)

	// Keep letters, digits, whitespace and hyphens; punctuation goes.
	var keep strings.Builder
	keep.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			keep.WriteByte(byte(r))
		case unicode.IsSpace(r):
			keep.WriteByte(' ')
		}
	}

	slug := separatorRuns.ReplaceAllString(keep.String(), "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "untitled"
	}
	return slug
}
