package domain

import "sort"

// Icon selector sentinels. These literals are shared with every client and
// must match byte for byte.
const (
	IconNone              = ""
	IconFaviconGoogle     = "_favicon_google"
	IconFaviconDuckDuckGo = "_favicon_duckduckgo"
	IconFaviconFavicone   = "_favicon_favicone"
	IconCustomIconify     = "_custom_iconify"
	IconCustomSVG         = "_custom_svg"
	IconCustomICO         = "_custom_ico"
	IconCustomUpload      = "_custom_upload"
)

// Sentinels lists every reserved selector value, IconNone first.
var Sentinels = []string{
	IconNone,
	IconFaviconGoogle,
	IconFaviconDuckDuckGo,
	IconFaviconFavicone,
	IconCustomIconify,
	IconCustomSVG,
	IconCustomICO,
	IconCustomUpload,
}

// Variant is the icon source selected by a LinkRecord.
type Variant int

const (
	VariantNone       Variant = iota // empty selector
	VariantStatic                    // named entry of the icon pack
	VariantUnknown                   // unrecognised name, no extra configuration
	VariantWebFavicon                // favicon fetched from a web service
	VariantIconify                   // iconify identifier
	VariantSVG                       // inline SVG markup
	VariantICO                       // remote .ico URL
	VariantUpload                    // uploaded file
)

func (v Variant) String() string {
	switch v {
	case VariantNone:
		return "none"
	case VariantStatic:
		return "static"
	case VariantWebFavicon:
		return "web_favicon"
	case VariantIconify:
		return "iconify"
	case VariantSVG:
		return "svg"
	case VariantICO:
		return "ico"
	case VariantUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// Fields returns the wire names of the payload fields that are meaningful for v.
func (v Variant) Fields() []string {
	switch v {
	case VariantWebFavicon:
		return []string{"iconSize"}
	case VariantIconify:
		return []string{"IconString"}
	case VariantSVG:
		return []string{"SvgString", "customIconSize"}
	case VariantICO:
		return []string{"IconStringIco"}
	case VariantUpload:
		return []string{"uploadedIconData", "uploadedIconType", "uploadedIconSize"}
	default:
		return nil
	}
}

// IsWebFavicon reports whether icon selects one of the favicon services.
func IsWebFavicon(icon string) bool {
	return icon == IconFaviconGoogle || icon == IconFaviconDuckDuckGo || icon == IconFaviconFavicone
}

func IsCustomIconify(icon string) bool { return icon == IconCustomIconify }
func IsCustomSvg(icon string) bool     { return icon == IconCustomSVG }
func IsCustomIco(icon string) bool     { return icon == IconCustomICO }
func IsCustomUpload(icon string) bool  { return icon == IconCustomUpload }

// IsSentinel reports whether icon is a reserved selector value.
func IsSentinel(icon string) bool {
	for _, s := range Sentinels {
		if s == icon {
			return true
		}
	}
	return false
}

// IconPack enumerates the static icon names a selector may reference.
type IconPack interface {
	Has(name string) bool
	Names() []string
}

// StaticIconPack is an immutable, in-memory IconPack.
type StaticIconPack struct {
	names []string
	set   map[string]struct{}
}

// NewStaticIconPack builds a pack from names. Empty names, reserved selector
// values and duplicates are dropped; the result is sorted.
func NewStaticIconPack(names []string) *StaticIconPack {
	p := &StaticIconPack{set: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if n == "" || IsSentinel(n) {
			continue
		}
		if _, dup := p.set[n]; dup {
			continue
		}
		p.set[n] = struct{}{}
		p.names = append(p.names, n)
	}
	sort.Strings(p.names)
	return p
}

func (p *StaticIconPack) Has(name string) bool {
	_, ok := p.set[name]
	return ok
}

func (p *StaticIconPack) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Resolver classifies icon selectors against an injected icon pack.
type Resolver struct {
	pack IconPack
}

// NewResolver creates a resolver. A nil pack behaves as an empty one.
func NewResolver(pack IconPack) *Resolver {
	if pack == nil {
		pack = NewStaticIconPack(nil)
	}
	return &Resolver{pack: pack}
}

// Pack returns the icon pack the resolver was built with.
func (r *Resolver) Pack() IconPack { return r.pack }

// Classify maps a selector to its variant. It never fails: any string that is
// neither a sentinel nor a pack name is VariantUnknown.
func (r *Resolver) Classify(icon string) Variant {
	switch {
	case icon == IconNone:
		return VariantNone
	case IsWebFavicon(icon):
		return VariantWebFavicon
	case IsCustomIconify(icon):
		return VariantIconify
	case IsCustomSvg(icon):
		return VariantSVG
	case IsCustomIco(icon):
		return VariantICO
	case IsCustomUpload(icon):
		return VariantUpload
	case r.pack.Has(icon):
		return VariantStatic
	default:
		return VariantUnknown
	}
}

// Predicates is the boolean view of a selector.
type Predicates struct {
	IsWebFavicon    bool `json:"isWebFavicon"`
	IsCustomIconify bool `json:"isCustomIconify"`
	IsCustomSvg     bool `json:"isCustomSvg"`
	IsCustomIco     bool `json:"isCustomIco"`
	IsCustomUpload  bool `json:"isCustomUpload"`
}

// PredicatesOf evaluates every predicate for icon.
func PredicatesOf(icon string) Predicates {
	return Predicates{
		IsWebFavicon:    IsWebFavicon(icon),
		IsCustomIconify: IsCustomIconify(icon),
		IsCustomSvg:     IsCustomSvg(icon),
		IsCustomIco:     IsCustomIco(icon),
		IsCustomUpload:  IsCustomUpload(icon),
	}
}

// Count returns how many predicates are true.
func (p Predicates) Count() int {
	n := 0
	for _, b := range []bool{p.IsWebFavicon, p.IsCustomIconify, p.IsCustomSvg, p.IsCustomIco, p.IsCustomUpload} {
		if b {
			n++
		}
	}
	return n
}
