package domain

import "testing"

func TestPredicatesExclusive(t *testing.T) {
	tests := []struct {
		icon string
		want Predicates
	}{
		{icon: IconFaviconGoogle, want: Predicates{IsWebFavicon: true}},
		{icon: IconFaviconDuckDuckGo, want: Predicates{IsWebFavicon: true}},
		{icon: IconFaviconFavicone, want: Predicates{IsWebFavicon: true}},
		{icon: IconCustomIconify, want: Predicates{IsCustomIconify: true}},
		{icon: IconCustomSVG, want: Predicates{IsCustomSvg: true}},
		{icon: IconCustomICO, want: Predicates{IsCustomIco: true}},
		{icon: IconCustomUpload, want: Predicates{IsCustomUpload: true}},
	}

	for _, tt := range tests {
		t.Run(tt.icon, func(t *testing.T) {
			got := PredicatesOf(tt.icon)
			if got != tt.want {
				t.Errorf("PredicatesOf(%q) = %+v, want %+v", tt.icon, got, tt.want)
			}
			if got.Count() != 1 {
				t.Errorf("PredicatesOf(%q) has %d true predicates, want exactly 1", tt.icon, got.Count())
			}
		})
	}
}

func TestPredicatesAllFalse(t *testing.T) {
	for _, icon := range []string{"", "github", "home", "_favicon_bing", "_CUSTOM_SVG", " _custom_svg"} {
		if n := PredicatesOf(icon).Count(); n != 0 {
			t.Errorf("PredicatesOf(%q) has %d true predicates, want 0", icon, n)
		}
	}
}

func TestResolverClassify(t *testing.T) {
	pack := NewStaticIconPack([]string{"github", "home", "mail"})
	r := NewResolver(pack)

	tests := []struct {
		icon string
		want Variant
	}{
		{icon: "", want: VariantNone},
		{icon: IconFaviconGoogle, want: VariantWebFavicon},
		{icon: IconFaviconDuckDuckGo, want: VariantWebFavicon},
		{icon: IconFaviconFavicone, want: VariantWebFavicon},
		{icon: IconCustomIconify, want: VariantIconify},
		{icon: IconCustomSVG, want: VariantSVG},
		{icon: IconCustomICO, want: VariantICO},
		{icon: IconCustomUpload, want: VariantUpload},
		{icon: "github", want: VariantStatic},
		{icon: "not-in-pack", want: VariantUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.want.String()+"/"+tt.icon, func(t *testing.T) {
			if got := r.Classify(tt.icon); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.icon, got, tt.want)
			}
		})
	}
}

func TestResolverNilPack(t *testing.T) {
	r := NewResolver(nil)
	if got := r.Classify("github"); got != VariantUnknown {
		t.Errorf("Classify with nil pack = %v, want %v", got, VariantUnknown)
	}
	if got := r.Classify(IconCustomSVG); got != VariantSVG {
		t.Errorf("Classify(%q) = %v, want %v", IconCustomSVG, got, VariantSVG)
	}
}

func TestStaticIconPack(t *testing.T) {
	pack := NewStaticIconPack([]string{"zap", "", "activity", "zap", IconCustomSVG, "airplay"})

	names := pack.Names()
	want := []string{"activity", "airplay", "zap"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if pack.Has(IconCustomSVG) {
		t.Error("pack should not contain reserved selector values")
	}

	// Names returns a copy.
	names[0] = "mutated"
	if pack.Names()[0] != "activity" {
		t.Error("Names() leaked internal slice")
	}
}

func TestVariantFields(t *testing.T) {
	tests := []struct {
		variant Variant
		want    []string
	}{
		{variant: VariantNone, want: nil},
		{variant: VariantStatic, want: nil},
		{variant: VariantUnknown, want: nil},
		{variant: VariantWebFavicon, want: []string{"iconSize"}},
		{variant: VariantIconify, want: []string{"IconString"}},
		{variant: VariantSVG, want: []string{"SvgString", "customIconSize"}},
		{variant: VariantICO, want: []string{"IconStringIco"}},
		{variant: VariantUpload, want: []string{"uploadedIconData", "uploadedIconType", "uploadedIconSize"}},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			got := tt.variant.Fields()
			if len(got) != len(tt.want) {
				t.Fatalf("Fields() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Fields()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
