package editor

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/ingest"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
)

// owner is a minimal owning collection: it merges every patch into its record.
type owner struct {
	mu      sync.Mutex
	record  domain.LinkRecord
	patches []domain.Patch
	removed bool
	moved   []string
}

func (o *owner) callbacks() Callbacks {
	return Callbacks{
		OnChange: func(p domain.Patch) {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.patches = append(o.patches, p)
			o.record = o.record.Merge(p)
		},
		OnRemove:   func() { o.removed = true },
		OnMoveUp:   func() { o.moved = append(o.moved, "up") },
		OnMoveDown: func() { o.moved = append(o.moved, "down") },
	}
}

func newEditor(t *testing.T, o *owner, number int) *Editor {
	t.Helper()
	pack := domain.NewStaticIconPack([]string{"github", "home"})
	in := ingest.NewIngestor(ingest.New(ingest.Options{}, logger.NewNop()), logger.NewNop())
	e, err := New(o.record, number, domain.NewResolver(pack), in, o.callbacks())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestNewRequiresCallbacks(t *testing.T) {
	if _, err := New(domain.LinkRecord{}, 1, nil, nil, Callbacks{OnRemove: func() {}}); err != ErrMissingOnChange {
		t.Errorf("New() without OnChange error = %v, want %v", err, ErrMissingOnChange)
	}
	if _, err := New(domain.LinkRecord{}, 1, nil, nil, Callbacks{OnChange: func(domain.Patch) {}}); err != ErrMissingOnRemove {
		t.Errorf("New() without OnRemove error = %v, want %v", err, ErrMissingOnRemove)
	}
}

func TestSettersEmitSparsePatches(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(e *Editor)
		fields []string
		check  func(t *testing.T, r domain.LinkRecord)
	}{
		{
			name:   "url",
			edit:   func(e *Editor) { e.SetURL("https://example.com") },
			fields: []string{"url"},
			check: func(t *testing.T, r domain.LinkRecord) {
				if r.URL != "https://example.com" {
					t.Errorf("URL = %q", r.URL)
				}
			},
		},
		{
			name:   "name",
			edit:   func(e *Editor) { e.SetName("Example") },
			fields: []string{"name"},
		},
		{
			name:   "icon",
			edit:   func(e *Editor) { e.SelectIcon(domain.IconCustomICO) },
			fields: []string{"icon"},
		},
		{
			name:   "favicon size from option text",
			edit:   func(e *Editor) { e.SetIconSizeText("128") },
			fields: []string{"iconSize"},
			check: func(t *testing.T, r domain.LinkRecord) {
				if r.IconSize != 128 {
					t.Errorf("IconSize = %d, want 128", r.IconSize)
				}
			},
		},
		{
			name:   "iconify identifier",
			edit:   func(e *Editor) { e.SetIconString("mdi:home") },
			fields: []string{"IconString"},
		},
		{
			name:   "ico url",
			edit:   func(e *Editor) { e.SetIconStringIco("https://example.com/favicon.ico") },
			fields: []string{"IconStringIco"},
		},
		{
			name:   "svg markup is sanitized",
			edit:   func(e *Editor) { e.SetSvgString(`<svg width="10" height="10"><path/></svg>`) },
			fields: []string{"SvgString"},
			check: func(t *testing.T, r domain.LinkRecord) {
				if r.SvgString != `<svg  ><path/></svg>` {
					t.Errorf("SvgString = %q", r.SvgString)
				}
			},
		},
		{
			name:   "custom size NaN is forwarded",
			edit:   func(e *Editor) { e.SetCustomIconSizeText("big") },
			fields: []string{"customIconSize"},
			check: func(t *testing.T, r domain.LinkRecord) {
				if !r.CustomIconSize.IsNaN() {
					t.Errorf("CustomIconSize = %d, want NaN", r.CustomIconSize)
				}
			},
		},
		{
			name:   "uploaded size out of advisory bounds is not clamped",
			edit:   func(e *Editor) { e.SetUploadedIconSizeText("2000") },
			fields: []string{"uploadedIconSize"},
			check: func(t *testing.T, r domain.LinkRecord) {
				if r.UploadedIconSize != 2000 {
					t.Errorf("UploadedIconSize = %d, want 2000", r.UploadedIconSize)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &owner{record: domain.LinkRecord{ID: "1", URL: "https://old.example"}}
			tt.edit(newEditor(t, o, 1))

			if len(o.patches) != 1 {
				t.Fatalf("emitted %d patches, want 1", len(o.patches))
			}
			got := o.patches[0].Fields()
			if strings.Join(got, ",") != strings.Join(tt.fields, ",") {
				t.Errorf("patch fields = %v, want %v", got, tt.fields)
			}
			if tt.check != nil {
				tt.check(t, o.record)
			}
		})
	}
}

func TestEditorDoesNotMutateRecord(t *testing.T) {
	o := &owner{record: domain.LinkRecord{ID: "1", Name: "before"}}
	e := newEditor(t, o, 1)

	e.SetName("after")

	if e.Record().Name != "before" {
		t.Errorf("editor record Name = %q, want unchanged", e.Record().Name)
	}
	if o.record.Name != "after" {
		t.Errorf("owner record Name = %q, want merged", o.record.Name)
	}
}

func TestSwitchingVariantRetainsPayloads(t *testing.T) {
	o := &owner{record: domain.LinkRecord{ID: "1", Icon: domain.IconCustomSVG}}

	newEditor(t, o, 1).SetSvgString("<svg/>")
	newEditor(t, o, 1).SelectIcon(domain.IconCustomICO)
	newEditor(t, o, 1).SelectIcon(domain.IconCustomSVG)

	if o.record.SvgString != "<svg/>" {
		t.Errorf("SvgString = %q, want restored <svg/>", o.record.SvgString)
	}
}

func TestApplyPatch(t *testing.T) {
	o := &owner{record: domain.LinkRecord{ID: "1"}}
	e := newEditor(t, o, 1)

	e.ApplyPatch(domain.Patch{})
	if len(o.patches) != 0 {
		t.Fatalf("empty patch emitted %d patches", len(o.patches))
	}

	e.ApplyPatch(domain.Patch{
		SvgString:        domain.Ptr(`<svg width="1"/>`),
		UploadedIconData: domain.Ptr(`<svg height="2"/>`),
		UploadedIconType: domain.Ptr(domain.UploadedSVG),
	})
	if o.record.SvgString != `<svg />` {
		t.Errorf("SvgString = %q", o.record.SvgString)
	}
	if o.record.UploadedIconData != `<svg />` {
		t.Errorf("UploadedIconData = %q", o.record.UploadedIconData)
	}

	e.ApplyPatch(domain.Patch{
		UploadedIconData: domain.Ptr(`data:image/png;base64,d2lkdGg9IjEi`),
		UploadedIconType: domain.Ptr(domain.UploadedImage),
	})
	if o.record.UploadedIconData != `data:image/png;base64,d2lkdGg9IjEi` {
		t.Errorf("image data altered: %q", o.record.UploadedIconData)
	}
}

func TestUploadEndToEnd(t *testing.T) {
	o := &owner{record: domain.LinkRecord{ID: "1", Icon: domain.IconCustomUpload}}
	e := newEditor(t, o, 1)

	task := e.Upload(context.Background(), &ingest.Upload{
		Content:     strings.NewReader(`<svg width="100" height="100"><rect/></svg>`),
		ContentType: "image/svg+xml",
	})
	if _, err := task.Wait(); err != nil {
		t.Fatalf("upload error = %v", err)
	}

	if len(o.patches) != 1 {
		t.Fatalf("emitted %d patches, want 1", len(o.patches))
	}
	p := o.patches[0]
	if *p.UploadedIconData != "<svg  ><rect/></svg>" || *p.UploadedIconType != domain.UploadedSVG || *p.UploadedIconSize != 24 {
		t.Errorf("patch = {%q, %q, %d}", *p.UploadedIconData, *p.UploadedIconType, *p.UploadedIconSize)
	}
}

func TestUploadPreservesSize(t *testing.T) {
	o := &owner{record: domain.LinkRecord{ID: "1", Icon: domain.IconCustomUpload, UploadedIconSize: 40}}
	e := newEditor(t, o, 1)

	task := e.Upload(context.Background(), &ingest.Upload{Content: strings.NewReader("x"), ContentType: "image/png"})
	if _, err := task.Wait(); err != nil {
		t.Fatalf("upload error = %v", err)
	}
	if o.record.UploadedIconSize != 40 {
		t.Errorf("UploadedIconSize = %d, want 40", o.record.UploadedIconSize)
	}
}

func TestUploadWithoutFileEmitsNothing(t *testing.T) {
	o := &owner{record: domain.LinkRecord{ID: "1", Icon: domain.IconCustomUpload}}
	e := newEditor(t, o, 1)

	_, err := e.Upload(context.Background(), nil).Wait()
	if !ingest.IsNoFile(err) {
		t.Errorf("error = %v, want no-file outcome", err)
	}
	if len(o.patches) != 0 {
		t.Errorf("emitted %d patches, want 0", len(o.patches))
	}
}

func TestUploadWithoutIngestor(t *testing.T) {
	o := &owner{}
	e, err := New(o.record, 1, nil, nil, o.callbacks())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := e.Upload(context.Background(), &ingest.Upload{Content: strings.NewReader("x")}).Wait(); err != ErrNoIngestor {
		t.Errorf("error = %v, want %v", err, ErrNoIngestor)
	}
}

func TestRemoveAndMove(t *testing.T) {
	o := &owner{}
	e := newEditor(t, o, 1)

	e.Remove()
	if !o.removed {
		t.Error("OnRemove not called")
	}
	if !e.MoveUp() || !e.MoveDown() {
		t.Error("move controls should be available")
	}
	if strings.Join(o.moved, ",") != "up,down" {
		t.Errorf("moves = %v", o.moved)
	}

	bare, err := New(domain.LinkRecord{}, 1, nil, nil, Callbacks{OnChange: func(domain.Patch) {}, OnRemove: func() {}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if bare.CanMoveUp() || bare.CanMoveDown() || bare.MoveUp() || bare.MoveDown() {
		t.Error("move controls should be hidden without callbacks")
	}
}

func TestShortcutLabel(t *testing.T) {
	tests := []struct {
		number int
		want   string
	}{
		{1, "Keyboard shortcut 1"},
		{9, "Keyboard shortcut 9"},
		{10, "Shortcut"},
	}

	for _, tt := range tests {
		e := newEditor(t, &owner{}, tt.number)
		if got := e.ShortcutLabel(); got != tt.want {
			t.Errorf("ShortcutLabel() for %d = %q, want %q", tt.number, got, tt.want)
		}
	}
}

func TestSvgText(t *testing.T) {
	o := &owner{record: domain.LinkRecord{SvgString: `<svg width="5"/>`}}
	if got := newEditor(t, o, 1).SvgText(); got != `<svg />` {
		t.Errorf("SvgText() = %q", got)
	}
}

func TestSetIcon(t *testing.T) {
	o := &owner{record: domain.LinkRecord{ID: "1", Icon: "github", IconString: "mdi:home"}}
	e := newEditor(t, o, 1)

	e.SetIcon(domain.SVGIcon{Markup: `<svg width="5"><path/></svg>`, Size: 32})
	if len(o.patches) != 1 {
		t.Fatalf("SetIcon emitted %d patches, want 1", len(o.patches))
	}
	if o.record.Icon != domain.IconCustomSVG || o.record.CustomIconSize != 32 {
		t.Errorf("record = %+v", o.record)
	}
	if o.record.SvgString != `<svg ><path/></svg>` {
		t.Errorf("SvgString = %q, want sanitized markup", o.record.SvgString)
	}
	if o.record.IconString != "mdi:home" {
		t.Errorf("inactive payload dropped: IconString = %q", o.record.IconString)
	}

	got, ok := newEditor(t, o, 1).Icon().(domain.SVGIcon)
	if !ok || got.Size != 32 {
		t.Errorf("Icon() = %#v", got)
	}
}
