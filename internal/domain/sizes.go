package domain

import (
	"math"
	"strconv"
	"strings"
)

// Size is an icon dimension in pixels.
//
// The zero value means "unset". SizeNaN marks text input that did not parse
// as a number; it is carried through patches untouched, never clamped.
type Size int

// SizeNaN is the not-a-number sentinel produced by ParseSize.
const SizeNaN Size = math.MinInt32

const (
	// DefaultUploadedIconSize is applied on upload when no size is set yet.
	DefaultUploadedIconSize Size = 24

	// Advisory input bounds of UploadedIconSize. They are offered to the
	// user as display constraints and are not enforced on merge.
	MinUploadedIconSize Size = 16
	MaxUploadedIconSize Size = 640
)

// FaviconSizes is the fixed option list for IconSize, smallest first.
var FaviconSizes = []Size{16, 32, 64, 128, 256}

// IsNaN reports whether s is the not-a-number sentinel.
func (s Size) IsNaN() bool { return s == SizeNaN }

// IsSet reports whether s carries a usable value: neither unset nor NaN.
func (s Size) IsSet() bool { return s != 0 && s != SizeNaN }

// Or returns s when it is set, def otherwise.
func (s Size) Or(def Size) Size {
	if s.IsSet() {
		return s
	}
	return def
}

// IsFaviconSize reports whether s is one of FaviconSizes.
func IsFaviconSize(s Size) bool {
	for _, v := range FaviconSizes {
		if v == s {
			return true
		}
	}
	return false
}

// InUploadBounds reports whether s lies within the advisory upload bounds.
func InUploadBounds(s Size) bool {
	return s >= MinUploadedIconSize && s <= MaxUploadedIconSize
}

// ParseSize converts numeric user input into a Size.
// Blank input is 0 (unset); fractions are truncated toward zero; anything that
// is not a finite number in int32 range yields SizeNaN.
func ParseSize(text string) Size {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return SizeNaN
	}
	f = math.Trunc(f)
	if f <= math.MinInt32 || f > math.MaxInt32 {
		return SizeNaN
	}
	return Size(f)
}

// FormatSize renders s for a text input; NaN renders as "NaN", unset as "".
func FormatSize(s Size) string {
	switch {
	case s.IsNaN():
		return "NaN"
	case s == 0:
		return ""
	default:
		return strconv.Itoa(int(s))
	}
}
