package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/ingest"
	"github.com/MrSnakeDoc/linkedit/internal/svg"
)

// Callbacks is the upward surface of an Editor.
//
// OnChange receives sparse patches; the owner must merge each one into the
// full record, keeping every field the patch does not name, and hand the
// merged record to a fresh Editor for the next event.
type Callbacks struct {
	OnChange   func(domain.Patch) // required
	OnRemove   func()             // required
	OnMoveUp   func()             // optional, nil hides the control
	OnMoveDown func()             // optional, nil hides the control
}

var (
	ErrMissingOnChange = errors.New("editor: OnChange callback is required")
	ErrMissingOnRemove = errors.New("editor: OnRemove callback is required")
	ErrNoIngestor      = errors.New("editor: no ingestor configured")
)

// Editor edits one link. It never mutates the record it was given: every
// edit is emitted as a patch through OnChange.
type Editor struct {
	record   domain.LinkRecord
	number   int
	resolver *domain.Resolver
	ingestor *ingest.Ingestor
	cb       Callbacks
}

// New binds record (at 1-based position number) to callbacks.
func New(record domain.LinkRecord, number int, resolver *domain.Resolver, ingestor *ingest.Ingestor, cb Callbacks) (*Editor, error) {
	if cb.OnChange == nil {
		return nil, ErrMissingOnChange
	}
	if cb.OnRemove == nil {
		return nil, ErrMissingOnRemove
	}
	if resolver == nil {
		resolver = domain.NewResolver(nil)
	}
	return &Editor{
		record:   record,
		number:   number,
		resolver: resolver,
		ingestor: ingestor,
		cb:       cb,
	}, nil
}

// Record returns the record as last supplied by the owner.
func (e *Editor) Record() domain.LinkRecord { return e.record }

// Variant classifies the active icon selector.
func (e *Editor) Variant() domain.Variant { return e.resolver.Classify(e.record.Icon) }

// Icon is the active icon with only its own payload.
func (e *Editor) Icon() domain.IconConfig { return domain.FromRecord(e.record) }

// SetIcon selects cfg and assigns its payload in one change.
func (e *Editor) SetIcon(cfg domain.IconConfig) { e.ApplyPatch(domain.IconPatch(cfg)) }

// ShortcutLabel names the keyboard shortcut of the link: positions 1 to 9
// have a digit shortcut.
func (e *Editor) ShortcutLabel() string {
	if e.number <= 9 {
		return fmt.Sprintf("Keyboard shortcut %d", e.number)
	}
	return "Shortcut"
}

func (e *Editor) emit(p domain.Patch) { e.cb.OnChange(p) }

func (e *Editor) SetURL(url string)   { e.emit(domain.Patch{URL: &url}) }
func (e *Editor) SetName(name string) { e.emit(domain.Patch{Name: &name}) }

// SelectIcon switches the active variant. Payloads of other variants are
// left untouched so switching back restores them.
func (e *Editor) SelectIcon(icon string) { e.emit(domain.Patch{Icon: &icon}) }

func (e *Editor) SetIconSize(size domain.Size) { e.emit(domain.Patch{IconSize: &size}) }

// SetIconSizeText forwards the numeric value of a size option.
func (e *Editor) SetIconSizeText(text string) { e.SetIconSize(domain.ParseSize(text)) }

func (e *Editor) SetIconString(id string)     { e.emit(domain.Patch{IconString: &id}) }
func (e *Editor) SetIconStringIco(url string) { e.emit(domain.Patch{IconStringIco: &url}) }

// SetSvgString stores markup with explicit sizing stripped.
func (e *Editor) SetSvgString(markup string) {
	markup = svg.Sanitize(markup)
	e.emit(domain.Patch{SvgString: &markup})
}

// SvgText is the markup shown for editing, always sanitized.
func (e *Editor) SvgText() string { return svg.Sanitize(e.record.SvgString) }

func (e *Editor) SetCustomIconSize(size domain.Size) { e.emit(domain.Patch{CustomIconSize: &size}) }

// SetCustomIconSizeText parses numeric input; unparsable text is forwarded
// as SizeNaN.
func (e *Editor) SetCustomIconSizeText(text string) { e.SetCustomIconSize(domain.ParseSize(text)) }

func (e *Editor) SetUploadedIconSize(size domain.Size) { e.emit(domain.Patch{UploadedIconSize: &size}) }

// SetUploadedIconSizeText parses numeric input. The [16, 640] bounds are
// advisory and not enforced here.
func (e *Editor) SetUploadedIconSizeText(text string) {
	e.SetUploadedIconSize(domain.ParseSize(text))
}

// ApplyPatch emits a client-built patch after sanitizing its markup fields
// the way interactive edits are sanitized. Empty patches emit nothing.
func (e *Editor) ApplyPatch(p domain.Patch) {
	if p.IsEmpty() {
		return
	}
	e.emit(SanitizePatch(p))
}

// SanitizePatch strips explicit sizing from the markup fields of p: SvgString,
// and UploadedIconData when the patch marks it as svg.
func SanitizePatch(p domain.Patch) domain.Patch {
	if p.SvgString != nil {
		p.SvgString = domain.Ptr(svg.Sanitize(*p.SvgString))
	}
	if p.UploadedIconData != nil && p.UploadedIconType != nil && *p.UploadedIconType == domain.UploadedSVG {
		p.UploadedIconData = domain.Ptr(svg.Sanitize(*p.UploadedIconData))
	}
	return p
}

// Upload ingests up in the background. Its patch is emitted through OnChange
// once decoding completes, unless a newer upload for the same link
// supersedes it. With no file selected nothing is emitted.
func (e *Editor) Upload(ctx context.Context, up *ingest.Upload) *ingest.Task {
	if e.ingestor == nil {
		return ingest.NewFailedTask(ErrNoIngestor)
	}
	return e.ingestor.Submit(ctx, e.record.ID, up, e.record.UploadedIconSize, e.cb.OnChange)
}

// Remove asks the owner to drop the link.
func (e *Editor) Remove() { e.cb.OnRemove() }

func (e *Editor) CanMoveUp() bool   { return e.cb.OnMoveUp != nil }
func (e *Editor) CanMoveDown() bool { return e.cb.OnMoveDown != nil }

// MoveUp reports whether the control was available.
func (e *Editor) MoveUp() bool {
	if e.cb.OnMoveUp == nil {
		return false
	}
	e.cb.OnMoveUp()
	return true
}

// MoveDown reports whether the control was available.
func (e *Editor) MoveDown() bool {
	if e.cb.OnMoveDown == nil {
		return false
	}
	e.cb.OnMoveDown()
	return true
}
