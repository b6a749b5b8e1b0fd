package editor

import (
	"strconv"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/ingest"
)

// Field names an input the editor shows.
type Field string

const (
	FieldURL              Field = "url"
	FieldName             Field = "name"
	FieldIcon             Field = "icon"
	FieldIconSize         Field = "iconSize"
	FieldIconString       Field = "IconString"
	FieldSvgString        Field = "SvgString"
	FieldCustomIconSize   Field = "customIconSize"
	FieldIconStringIco    Field = "IconStringIco"
	FieldUpload           Field = "upload"
	FieldUploadPreview    Field = "uploadPreview"
	FieldUploadedIconSize Field = "uploadedIconSize"
)

// Fields lists the inputs relevant to the active variant, in display order.
// The upload preview and its size input appear only once an icon was uploaded.
func (e *Editor) Fields() []Field {
	fields := []Field{FieldURL, FieldName, FieldIcon}
	switch e.Variant() {
	case domain.VariantWebFavicon:
		fields = append(fields, FieldIconSize)
	case domain.VariantIconify:
		fields = append(fields, FieldIconString)
	case domain.VariantSVG:
		fields = append(fields, FieldSvgString, FieldCustomIconSize)
	case domain.VariantICO:
		fields = append(fields, FieldIconStringIco)
	case domain.VariantUpload:
		fields = append(fields, FieldUpload)
		if e.record.UploadedIconData != "" {
			fields = append(fields, FieldUploadPreview, FieldUploadedIconSize)
		}
	}
	return fields
}

// Preview describes how an uploaded icon is displayed.
type Preview struct {
	// Inline is true for sanitized SVG markup, false for an image source.
	Inline bool   `json:"inline"`
	Data   string `json:"data"`
}

// Preview returns the uploaded icon preview, if the upload variant is active
// and data is present.
func (e *Editor) Preview() (Preview, bool) {
	up, ok := e.Icon().(domain.UploadedIcon)
	if !ok || up.Data == "" {
		return Preview{}, false
	}
	return Preview{
		Inline: up.Type == domain.UploadedSVG,
		Data:   up.Data,
	}, true
}

// Option is one entry of a select input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionGroup is a labelled group of options. The first group has no label.
type OptionGroup struct {
	Label   string   `json:"label,omitempty"`
	Options []Option `json:"options"`
}

// IconOptions builds the icon selector: none, favicon services, custom
// sources, then every name of pack under packLabel.
func IconOptions(pack domain.IconPack, packLabel string) []OptionGroup {
	groups := []OptionGroup{
		{Options: []Option{{Value: domain.IconNone, Label: "None"}}},
		{Label: "Website Icons", Options: []Option{
			{Value: domain.IconFaviconGoogle, Label: "From Google"},
			{Value: domain.IconFaviconDuckDuckGo, Label: "From DuckDuckGo"},
			{Value: domain.IconFaviconFavicone, Label: "From Favicone"},
		}},
		{Label: "Custom", Options: []Option{
			{Value: domain.IconCustomIconify, Label: "From Iconify"},
			{Value: domain.IconCustomSVG, Label: "Custom SVG HTML"},
			{Value: domain.IconCustomICO, Label: "Custom ICO url"},
			{Value: domain.IconCustomUpload, Label: "Upload Custom Icon"},
		}},
	}
	if pack == nil {
		return groups
	}

	names := pack.Names()
	if len(names) == 0 {
		return groups
	}
	opts := make([]Option, 0, len(names))
	for _, n := range names {
		opts = append(opts, Option{Value: n, Label: n})
	}
	return append(groups, OptionGroup{Label: packLabel, Options: opts})
}

// IconSizeOptions lists the favicon resolutions ("16x16" ... "256x256").
func IconSizeOptions() []Option {
	opts := make([]Option, 0, len(domain.FaviconSizes))
	for _, s := range domain.FaviconSizes {
		v := strconv.Itoa(int(s))
		opts = append(opts, Option{Value: v, Label: v + "x" + v})
	}
	return opts
}

// UploadInput describes the file and size inputs of the upload variant.
type UploadInput struct {
	Accept  string      `json:"accept"`
	MinSize domain.Size `json:"minSize"`
	MaxSize domain.Size `json:"maxSize"`
	Step    int         `json:"step"`
}

// UploadInputSpec returns the advisory constraints of the upload inputs.
func UploadInputSpec() UploadInput {
	return UploadInput{
		Accept:  ingest.AcceptAttr,
		MinSize: domain.MinUploadedIconSize,
		MaxSize: domain.MaxUploadedIconSize,
		Step:    1,
	}
}
