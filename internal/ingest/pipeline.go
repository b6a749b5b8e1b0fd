package ingest

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
	"github.com/MrSnakeDoc/linkedit/internal/svg"
)

const (
	TypeSVG = "image/svg+xml"
	TypeICO = "image/x-icon"

	typeOctetStream = "application/octet-stream"
)

// Upload is a user-selected file.
type Upload struct {
	// Content is the raw file. A nil Content means no file was selected.
	Content io.Reader

	// ContentType is the declared content type. It drives the decode branch;
	// the filename extension is never consulted.
	ContentType string

	// Filename is informational only.
	Filename string
}

// Options configures a Pipeline.
type Options struct {
	// MaxBytes caps the size of a single upload. Zero disables the cap.
	MaxBytes int64

	// DefaultSize is applied when the record has no UploadedIconSize yet.
	DefaultSize domain.Size
}

// Pipeline turns uploads into normalized icon payloads.
type Pipeline struct {
	opts   Options
	logger logger.Logger
}

// New creates a pipeline.
func New(opts Options, log logger.Logger) *Pipeline {
	if opts.DefaultSize == 0 {
		opts.DefaultSize = domain.DefaultUploadedIconSize
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Pipeline{opts: opts, logger: log}
}

// Ingest reads up and returns the partial update
// {uploadedIconData, uploadedIconType, uploadedIconSize}.
//
// current is the record's UploadedIconSize: kept when set, replaced by the
// default otherwise. On failure no patch is returned and the error is a
// *DecodeError.
func (p *Pipeline) Ingest(ctx context.Context, up *Upload, current domain.Size) (domain.Patch, error) {
	if up == nil || up.Content == nil {
		return domain.Patch{}, decodeErr(KindNoFile, ErrNoFile)
	}

	data, err := p.read(ctx, up.Content)
	if err != nil {
		return domain.Patch{}, err
	}

	mediaType, params := declaredType(up.ContentType)

	var (
		payload  string
		iconType domain.UploadedIconType
	)
	switch mediaType {
	case TypeSVG:
		text, err := decodeText(data, params["charset"])
		if err != nil {
			return domain.Patch{}, decodeErr(KindCharset, err)
		}
		payload = svg.Sanitize(text)
		iconType = domain.UploadedSVG
	case TypeICO:
		payload = DataURL(mediaType, data)
		iconType = domain.UploadedICO
	default:
		payload = DataURL(embeddedType(mediaType, data), data)
		iconType = domain.UploadedImage
	}

	// The decode may have raced a cancellation; report it rather than
	// handing back a payload nobody asked for anymore.
	if err := ctx.Err(); err != nil {
		return domain.Patch{}, decodeErr(KindCanceled, err)
	}

	size := current.Or(p.opts.DefaultSize)

	p.logger.Debug("upload ingested",
		logger.String("filename", up.Filename),
		logger.String("content_type", mediaType),
		logger.String("icon_type", string(iconType)),
		logger.Bytes("size", int64(len(data))),
		logger.Int("icon_size", int(size)))

	return domain.Patch{
		UploadedIconData: domain.Ptr(payload),
		UploadedIconType: domain.Ptr(iconType),
		UploadedIconSize: domain.Ptr(size),
	}, nil
}

// Start runs Ingest in the background and returns a cancellable Task.
func (p *Pipeline) Start(ctx context.Context, up *Upload, current domain.Size) *Task {
	return startTask(ctx, func(ctx context.Context) (domain.Patch, error) {
		return p.Ingest(ctx, up, current)
	})
}

func (p *Pipeline) read(ctx context.Context, r io.Reader) ([]byte, error) {
	src := io.Reader(&ctxReader{ctx: ctx, r: r})
	if p.opts.MaxBytes > 0 {
		src = io.LimitReader(src, p.opts.MaxBytes+1)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, decodeErr(KindCanceled, err)
		}
		return nil, decodeErr(KindReadFailed, err)
	}
	if p.opts.MaxBytes > 0 && int64(len(data)) > p.opts.MaxBytes {
		return nil, decodeErr(KindTooLarge, fmt.Errorf("upload larger than %d bytes", p.opts.MaxBytes))
	}
	return data, nil
}

// declaredType parses the declared content type, splitting off parameters.
// The result picks the decode branch; content is never consulted here.
func declaredType(declared string) (string, map[string]string) {
	declared = strings.TrimSpace(declared)
	mediaType, params, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(declared), nil
	}
	return mediaType, params
}

// embeddedType is the media type written into a data URL. A missing or
// generic declaration is replaced by the sniffed type so the URL stays
// displayable.
func embeddedType(mediaType string, data []byte) string {
	if mediaType != "" && mediaType != typeOctetStream {
		return mediaType
	}
	sniffed, _, err := mime.ParseMediaType(mimetype.Detect(data).String())
	if err != nil || sniffed == "" {
		return typeOctetStream
	}
	return sniffed
}

// decodeText decodes SVG bytes as text. UTF-8 is the default; a leading BOM
// overrides the declared charset and is stripped. Invalid sequences become
// U+FFFD.
func decodeText(data []byte, charset string) (string, error) {
	var enc encoding.Encoding = unicode.UTF8
	if charset != "" {
		e, err := htmlindex.Get(charset)
		if err != nil {
			return "", fmt.Errorf("unsupported charset %q: %w", charset, err)
		}
		enc = e
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(out), nil
}

// DataURL embeds data as a self-contained, displayable image source.
func DataURL(mediaType string, data []byte) string {
	var b bytes.Buffer
	b.Grow(len("data:;base64,") + len(mediaType) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mediaType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
