package report

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Replace substitutes whole-word occurrences of target in text.
//
// A match must not be adjacent to a "/" on either side, on top of the usual
// word-boundary requirement. This keeps a word that already sits inside an
// earlier "a/b" replacement from being matched again by a later rule.
//
// With matchCase false the match is case-insensitive and replacement is used
// verbatim. With matchCase true two passes run over the same text: the exact
// target first, then the capitalized target, where each "/"-delimited
// alternative of the replacement is independently capitalized.
func Replace(text, target, replacement string, matchCase bool) string {
	if target == "" {
		return text
	}
	if !matchCase {
		return replaceAll(text, target, replacement, regexp2.IgnoreCase)
	}
	text = replaceAll(text, target, replacement, regexp2.None)
	return replaceAll(text, capitalize(target), capitalizeAlternatives(replacement), regexp2.None)
}

// replaceAll runs a single whole-word substitution pass. regexp2 is used
// because the "/"-exclusion needs lookarounds, which Go's RE2 engine does not
// support.
func replaceAll(text, target, replacement string, opts regexp2.RegexOptions) string {
	pattern := `(?<!/)\b` + regexp.QuoteMeta(target) + `\b(?!/)`
	re := regexp2.MustCompile(pattern, opts)
	out, err := re.Replace(text, escapeSubstitution(replacement), -1, -1)
	if err != nil {
		return text
	}
	return out
}

// escapeSubstitution neutralizes regexp2's $-group syntax so the replacement
// is always inserted literally.
func escapeSubstitution(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// capitalize uppercases the first rune, leaving the rest unchanged.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// capitalizeAlternatives capitalizes every "/"-delimited segment of a
// replacement spec, so "he/she" becomes "He/She".
func capitalizeAlternatives(replacement string) string {
	parts := strings.Split(replacement, "/")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, "/")
}
