package domain

import "time"

// UploadedIconType tells how UploadedIconData must be displayed.
type UploadedIconType string

const (
	UploadedSVG   UploadedIconType = "svg"   // sanitized inline markup
	UploadedICO   UploadedIconType = "ico"   // data URL of an .ico file
	UploadedImage UploadedIconType = "image" // data URL of any other image
)

// LinkRecord represents one entry of a links widget.
//
// Icon is the discriminator. Every variant payload is persisted side by side,
// and switching Icon never clears the payloads of inactive variants: only the
// fields of the variant named by Icon are meaningful. Always gate field use on
// the current Icon (see Classify / IconConfig).
type LinkRecord struct {
	// ─────────────────────────────
	// Identity (owned by the collection)
	// ─────────────────────────────

	// ID is assigned by the owning collection.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// ─────────────────────────────
	// Link
	// ─────────────────────────────

	// URL is the destination. No format validation is applied.
	URL string `json:"url" yaml:"url"`

	// Name is the optional display label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Icon selects the active icon variant: one of the selector sentinels
	// or a name drawn from the injected icon pack.
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`

	// ─────────────────────────────
	// Variant payloads
	// ─────────────────────────────

	// IconSize is the favicon resolution (web favicon variants).
	IconSize Size `json:"iconSize,omitempty" yaml:"iconSize,omitempty"`

	// IconString is the iconify identifier (_custom_iconify).
	IconString string `json:"IconString,omitempty" yaml:"IconString,omitempty"`

	// SvgString is the sanitized inline SVG markup (_custom_svg).
	SvgString string `json:"SvgString,omitempty" yaml:"SvgString,omitempty"`

	// CustomIconSize is the display size of SvgString (_custom_svg).
	CustomIconSize Size `json:"customIconSize,omitempty" yaml:"customIconSize,omitempty"`

	// IconStringIco is a remote .ico URL (_custom_ico).
	IconStringIco string `json:"IconStringIco,omitempty" yaml:"IconStringIco,omitempty"`

	// UploadedIconData holds sanitized markup or a data URL (_custom_upload).
	UploadedIconData string `json:"uploadedIconData,omitempty" yaml:"uploadedIconData,omitempty"`

	// UploadedIconType is svg, ico or image (_custom_upload).
	UploadedIconType UploadedIconType `json:"uploadedIconType,omitempty" yaml:"uploadedIconType,omitempty"`

	// UploadedIconSize is the display size of the uploaded icon (_custom_upload).
	UploadedIconSize Size `json:"uploadedIconSize,omitempty" yaml:"uploadedIconSize,omitempty"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set when the collection first stores the record.
	CreatedAt time.Time `json:"createdAt,omitzero" yaml:"-"`

	// UpdatedAt is updated on any merged patch.
	UpdatedAt time.Time `json:"updatedAt,omitzero" yaml:"-"`
}

// Patch is a sparse set of LinkRecord field assignments.
// A nil field means "not named": merging leaves that field untouched.
type Patch struct {
	URL              *string           `json:"url,omitempty"`
	Name             *string           `json:"name,omitempty"`
	Icon             *string           `json:"icon,omitempty"`
	IconSize         *Size             `json:"iconSize,omitempty"`
	IconString       *string           `json:"IconString,omitempty"`
	SvgString        *string           `json:"SvgString,omitempty"`
	CustomIconSize   *Size             `json:"customIconSize,omitempty"`
	IconStringIco    *string           `json:"IconStringIco,omitempty"`
	UploadedIconData *string           `json:"uploadedIconData,omitempty"`
	UploadedIconType *UploadedIconType `json:"uploadedIconType,omitempty"`
	UploadedIconSize *Size             `json:"uploadedIconSize,omitempty"`
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T { return &v }

// IsEmpty reports whether the patch names no field.
func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the wire names of the fields the patch assigns.
func (p Patch) Fields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(p.URL != nil, "url")
	add(p.Name != nil, "name")
	add(p.Icon != nil, "icon")
	add(p.IconSize != nil, "iconSize")
	add(p.IconString != nil, "IconString")
	add(p.SvgString != nil, "SvgString")
	add(p.CustomIconSize != nil, "customIconSize")
	add(p.IconStringIco != nil, "IconStringIco")
	add(p.UploadedIconData != nil, "uploadedIconData")
	add(p.UploadedIconType != nil, "uploadedIconType")
	add(p.UploadedIconSize != nil, "uploadedIconSize")
	return fields
}

// Merge returns a copy of r with every field named by p assigned.
// Fields not named by p are preserved, including payloads of inactive variants.
func (r LinkRecord) Merge(p Patch) LinkRecord {
	if p.URL != nil {
		r.URL = *p.URL
	}
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Icon != nil {
		r.Icon = *p.Icon
	}
	if p.IconSize != nil {
		r.IconSize = *p.IconSize
	}
	if p.IconString != nil {
		r.IconString = *p.IconString
	}
	if p.SvgString != nil {
		r.SvgString = *p.SvgString
	}
	if p.CustomIconSize != nil {
		r.CustomIconSize = *p.CustomIconSize
	}
	if p.IconStringIco != nil {
		r.IconStringIco = *p.IconStringIco
	}
	if p.UploadedIconData != nil {
		r.UploadedIconData = *p.UploadedIconData
	}
	if p.UploadedIconType != nil {
		r.UploadedIconType = *p.UploadedIconType
	}
	if p.UploadedIconSize != nil {
		r.UploadedIconSize = *p.UploadedIconSize
	}
	return r
}
