package domain

// IconConfig is the tagged-union view of a record's icon: one concrete type
// per variant, each carrying only its own payload.
//
// LinkRecord keeps the flat legacy shape on the wire. FromRecord migrates it
// into the union; LinkRecord.WithIcon writes a union value back.
type IconConfig interface {
	Variant() Variant
	Selector() string
}

// NoIcon is the empty selector.
type NoIcon struct{}

// StaticIcon references an icon-pack entry (or an unrecognised name) verbatim.
type StaticIcon struct {
	Name string
}

// WebFavicon fetches the site's favicon from a provider.
type WebFavicon struct {
	Provider string // one of the _favicon_* sentinels
	Size     Size
}

// IconifyIcon references an iconify identifier such as "mdi:home".
type IconifyIcon struct {
	Identifier string
}

// SVGIcon is inline, sanitized markup.
type SVGIcon struct {
	Markup string
	Size   Size
}

// ICOIcon is a remote .ico file.
type ICOIcon struct {
	URL string
}

// UploadedIcon is the result of an upload ingestion.
type UploadedIcon struct {
	Data string
	Type UploadedIconType
	Size Size
}

func (NoIcon) Variant() Variant       { return VariantNone }
func (StaticIcon) Variant() Variant   { return VariantStatic }
func (WebFavicon) Variant() Variant   { return VariantWebFavicon }
func (IconifyIcon) Variant() Variant  { return VariantIconify }
func (SVGIcon) Variant() Variant      { return VariantSVG }
func (ICOIcon) Variant() Variant      { return VariantICO }
func (UploadedIcon) Variant() Variant { return VariantUpload }

func (NoIcon) Selector() string       { return IconNone }
func (i StaticIcon) Selector() string { return i.Name }
func (f WebFavicon) Selector() string { return f.Provider }
func (IconifyIcon) Selector() string  { return IconCustomIconify }
func (SVGIcon) Selector() string      { return IconCustomSVG }
func (ICOIcon) Selector() string      { return IconCustomICO }
func (UploadedIcon) Selector() string { return IconCustomUpload }

// FromRecord reads the active variant of a flat record, ignoring stale
// payloads of inactive variants.
func FromRecord(r LinkRecord) IconConfig {
	switch {
	case r.Icon == IconNone:
		return NoIcon{}
	case IsWebFavicon(r.Icon):
		return WebFavicon{Provider: r.Icon, Size: r.IconSize}
	case IsCustomIconify(r.Icon):
		return IconifyIcon{Identifier: r.IconString}
	case IsCustomSvg(r.Icon):
		return SVGIcon{Markup: r.SvgString, Size: r.CustomIconSize}
	case IsCustomIco(r.Icon):
		return ICOIcon{URL: r.IconStringIco}
	case IsCustomUpload(r.Icon):
		return UploadedIcon{Data: r.UploadedIconData, Type: r.UploadedIconType, Size: r.UploadedIconSize}
	default:
		return StaticIcon{Name: r.Icon}
	}
}

// WithIcon returns a copy of r selecting cfg. Only cfg's own payload fields
// are written; payloads of other variants are retained.
func (r LinkRecord) WithIcon(cfg IconConfig) LinkRecord {
	return r.Merge(IconPatch(cfg))
}

// IconPatch builds the patch that selects cfg and assigns its payload.
func IconPatch(cfg IconConfig) Patch {
	p := Patch{Icon: Ptr(cfg.Selector())}
	switch c := cfg.(type) {
	case WebFavicon:
		p.IconSize = Ptr(c.Size)
	case IconifyIcon:
		p.IconString = Ptr(c.Identifier)
	case SVGIcon:
		p.SvgString = Ptr(c.Markup)
		p.CustomIconSize = Ptr(c.Size)
	case ICOIcon:
		p.IconStringIco = Ptr(c.URL)
	case UploadedIcon:
		p.UploadedIconData = Ptr(c.Data)
		p.UploadedIconType = Ptr(c.Type)
		p.UploadedIconSize = Ptr(c.Size)
	}
	return p
}
