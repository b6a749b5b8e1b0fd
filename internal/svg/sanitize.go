package svg

import "regexp"

// sizeAttr matches an explicit width or height attribute with a double-quoted value.
// The match is purely textual: it also hits occurrences inside comments or other
// quoted strings.
var sizeAttr = regexp.MustCompile(`(width|height)="[^"]*"`)

// Sanitize strips every width="..." and height="..." attribute from SVG markup
// so display sizing is controlled by the caller. All other text is left as-is,
// including the whitespace that separated the removed attributes.
//
// Removing one attribute can splice a new one together
// (e.g. `widwidth="1"th="2"`), so the substitution is repeated until the text
// stops changing. Each pass only shrinks the input, which bounds the loop.
func Sanitize(markup string) string {
	for {
		next := sizeAttr.ReplaceAllString(markup, "")
		if next == markup {
			return next
		}
		markup = next
	}
}

// HasSizing reports whether markup still carries an explicit width or height attribute.
func HasSizing(markup string) bool {
	return sizeAttr.MatchString(markup)
}
