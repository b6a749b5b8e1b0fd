package redis

import "testing"

func TestLinkKey(t *testing.T) {
	if got := LinkKey("01HX"); got != "linkedit:link:01HX" {
		t.Errorf("LinkKey() = %q", got)
	}
	if got := LinksOrderKey(); got != "linkedit:links:order" {
		t.Errorf("LinksOrderKey() = %q", got)
	}
}

func TestExtractLinkID(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "linkedit:link:abc", want: "abc"},
		{key: "linkedit:link:", wantErr: true},
		{key: "other:link:abc", wantErr: true},
		{key: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ExtractLinkID(tt.key)
		if (err != nil) != tt.wantErr {
			t.Errorf("ExtractLinkID(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractLinkID(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
