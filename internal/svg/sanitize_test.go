package svg

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "width and height on root",
			input: `<svg width="100" height="50">`,
			want:  `<svg  >`,
		},
		{
			name:  "upload example",
			input: `<svg width="100" height="100"><rect/></svg>`,
			want:  `<svg  ><rect/></svg>`,
		},
		{
			name:  "keeps viewBox and other attributes",
			input: `<svg viewBox="0 0 24 24" width="24" fill="none"><path d="M0 0"/></svg>`,
			want:  `<svg viewBox="0 0 24 24"  fill="none"><path d="M0 0"/></svg>`,
		},
		{
			name:  "nested elements are stripped too",
			input: `<svg><rect width="10" height="10"/></svg>`,
			want:  `<svg><rect  /></svg>`,
		},
		{
			name:  "stroke-width loses its width suffix",
			input: `<path stroke-width="2"/>`,
			want:  `<path stroke-/>`,
		},
		{
			name:  "attribute name is case sensitive",
			input: `<svg WIDTH="10" Height="5">`,
			want:  `<svg WIDTH="10" Height="5">`,
		},
		{
			name:  "single quoted values are untouched",
			input: `<svg width='10'>`,
			want:  `<svg width='10'>`,
		},
		{
			name:  "inside a comment",
			input: `<!-- width="1" --><svg/>`,
			want:  `<!--  --><svg/>`,
		},
		{
			name:  "empty value",
			input: `<svg width="">`,
			want:  `<svg >`,
		},
		{
			name:  "removal splices a new attribute",
			input: `<svg widwidth="1"th="2">`,
			want:  `<svg >`,
		},
		{
			name:  "malformed markup passes through",
			input: `<svg width="3"<<<`,
			want:  `<svg <<<`,
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		``,
		`<svg width="100" height="50">`,
		`<svg widwidth="1"th="2">`,
		`<svg heiheight="1"ght="2" width="3">`,
		`width="width="1""`,
		`<svg viewBox="0 0 10 10"><g height="4"><rect width="1"/></g></svg>`,
		`no markup at all`,
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
		if HasSizing(once) {
			t.Errorf("Sanitize(%q) = %q still carries sizing", in, once)
		}
	}
}
