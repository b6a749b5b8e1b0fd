package httpserver_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkedit/internal/collection"
	"github.com/MrSnakeDoc/linkedit/internal/config"
	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkedit/internal/ingest"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
)

type fixture struct {
	handler http.Handler
	links   *collection.Collection
}

func newFixture(t *testing.T, maxUpload int64) *fixture {
	t.Helper()
	log := logger.NewNop()

	links := collection.New(nil, log)
	links.Replace([]domain.LinkRecord{
		{ID: "a", URL: "https://a.example", Name: "A", Icon: "github"},
		{ID: "b", URL: "https://b.example", Icon: domain.IconCustomSVG, SvgString: "<svg/>", IconStringIco: "https://b.example/favicon.ico"},
		{ID: "c", URL: "https://c.example", Icon: domain.IconCustomUpload},
	})

	pack := domain.NewReloadablePack(domain.NewStaticIconPack([]string{"github", "home"}), "Simple Icons")
	pipeline := ingest.New(ingest.Options{MaxBytes: maxUpload}, log)

	cfg := &config.Config{ListenPort: ":0", RequestTimeout: 5 * time.Second}
	d := deps.Deps{
		Logger:             log,
		StartTime:          time.Now(),
		Links:              links,
		Pack:               pack,
		Resolver:           domain.NewResolver(pack),
		Ingestor:           ingest.NewIngestor(pipeline, log),
		MaxUploadBytes:     maxUpload,
		DecodeTimeout:      2 * time.Second,
		UploadBurst:        100,
		UploadRefillPerMin: 100,
	}

	return &fixture{handler: httpserver.New(cfg, log, d).Handler(), links: links}
}

func (f *fixture) do(t *testing.T, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type link struct {
	domain.LinkRecord
	Position int    `json:"position"`
	Variant  string `json:"variant"`
	Shortcut string `json:"shortcut"`
}

type apiError struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func multipartBody(t *testing.T, contentType string, content []byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="icon"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return buf.Bytes(), mw.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, 1<<20)
	rec := f.do(t, http.MethodGet, "/healthz", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(3), body["links"])
}

func TestReadyzMemoryOnly(t *testing.T) {
	f := newFixture(t, 1<<20)
	rec := f.do(t, http.MethodGet, "/readyz", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[map[string]any](t, rec)["ready"])
}

func TestListLinks(t *testing.T) {
	f := newFixture(t, 1<<20)
	rec := f.do(t, http.MethodGet, "/api/links", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	links := decode[[]link](t, rec)
	require.Len(t, links, 3)
	assert.Equal(t, "a", links[0].ID)
	assert.Equal(t, 1, links[0].Position)
	assert.Equal(t, "static", links[0].Variant)
	assert.Equal(t, "Keyboard shortcut 1", links[0].Shortcut)
	assert.Equal(t, "svg", links[1].Variant)
}

func TestGetLinkNotFound(t *testing.T) {
	f := newFixture(t, 1<<20)
	rec := f.do(t, http.MethodGet, "/api/links/missing", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[apiError](t, rec).Error.Code)
}

func TestCreateLink(t *testing.T) {
	f := newFixture(t, 1<<20)
	body := `{"url":"https://new.example","icon":"_custom_svg","SvgString":"<svg width=\"9\"/>"}`
	rec := f.do(t, http.MethodPost, "/api/links", []byte(body), "application/json")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[link](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 4, created.Position)
	assert.Equal(t, "<svg />", created.SvgString)
	assert.Equal(t, 4, f.links.Count())
}

func TestCreateLinkInvalidBody(t *testing.T) {
	f := newFixture(t, 1<<20)

	for _, body := range []string{"", "{", `{"unknown":1}`} {
		rec := f.do(t, http.MethodPost, "/api/links", []byte(body), "application/json")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Equal(t, "INVALID_REQUEST", decode[apiError](t, rec).Error.Code)
	}
}

func TestPatchLinkKeepsOtherVariants(t *testing.T) {
	f := newFixture(t, 1<<20)

	rec := f.do(t, http.MethodPatch, "/api/links/b", []byte(`{"icon":"_custom_ico"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[link](t, rec)
	assert.Equal(t, domain.IconCustomICO, got.Icon)
	assert.Equal(t, "ico", got.Variant)
	assert.Equal(t, "<svg/>", got.SvgString)
	assert.Equal(t, "https://b.example", got.URL)
}

func TestPatchLinkSanitizesSvg(t *testing.T) {
	f := newFixture(t, 1<<20)

	rec := f.do(t, http.MethodPatch, "/api/links/b", []byte(`{"SvgString":"<svg width=\"1\" height=\"2\"><g/></svg>"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	stored, _ := f.links.Get("b")
	assert.Equal(t, "<svg  ><g/></svg>", stored.SvgString)
}

func TestLinkFields(t *testing.T) {
	f := newFixture(t, 1<<20)

	rec := f.do(t, http.MethodGet, "/api/links/b/fields", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[map[string]any](t, rec)
	assert.Equal(t, "svg", got["variant"])
	assert.Equal(t, []any{"url", "name", "icon", "SvgString", "customIconSize"}, got["fields"])
	assert.Equal(t, "<svg/>", got["svgText"])
	assert.NotContains(t, got, "preview")
}

func TestUploadIconEndToEnd(t *testing.T) {
	f := newFixture(t, 1<<20)

	body, ct := multipartBody(t, "image/svg+xml", []byte(`<svg width="100" height="100"><rect/></svg>`))
	rec := f.do(t, http.MethodPost, "/api/links/c/icon", body, ct)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[link](t, rec)
	assert.Equal(t, "<svg  ><rect/></svg>", got.UploadedIconData)
	assert.Equal(t, domain.UploadedSVG, got.UploadedIconType)
	assert.Equal(t, domain.Size(24), got.UploadedIconSize)

	rec = f.do(t, http.MethodGet, "/api/links/c/fields", nil, "")
	fields := decode[map[string]any](t, rec)
	assert.Equal(t, []any{"url", "name", "icon", "upload", "uploadPreview", "uploadedIconSize"}, fields["fields"])
	assert.Equal(t, map[string]any{"inline": true, "data": "<svg  ><rect/></svg>"}, fields["preview"])
}

func TestUploadIconImage(t *testing.T) {
	f := newFixture(t, 1<<20)

	body, ct := multipartBody(t, "image/png", []byte{0x89, 'P', 'N', 'G'})
	rec := f.do(t, http.MethodPost, "/api/links/c/icon", body, ct)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[link](t, rec)
	assert.True(t, strings.HasPrefix(got.UploadedIconData, "data:image/png;base64,"))
	assert.Equal(t, domain.UploadedImage, got.UploadedIconType)
}

func TestUploadIconWithoutFile(t *testing.T) {
	f := newFixture(t, 1<<20)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	rec := f.do(t, http.MethodPost, "/api/links/c/icon", buf.Bytes(), mw.FormDataContentType())
	assert.Equal(t, http.StatusNoContent, rec.Code)

	stored, _ := f.links.Get("c")
	assert.Empty(t, stored.UploadedIconData)
}

func TestUploadIconTooLarge(t *testing.T) {
	f := newFixture(t, 16)

	body, ct := multipartBody(t, "image/png", bytes.Repeat([]byte{1}, 64))
	rec := f.do(t, http.MethodPost, "/api/links/c/icon", body, ct)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "UPLOAD_TOO_LARGE", decode[apiError](t, rec).Error.Code)

	stored, _ := f.links.Get("c")
	assert.Empty(t, stored.UploadedIconData)
}

func TestUploadIconUnknownCharset(t *testing.T) {
	f := newFixture(t, 1<<20)

	body, ct := multipartBody(t, "image/svg+xml; charset=x-unknown", []byte(`<svg><rect/></svg>`))
	rec := f.do(t, http.MethodPost, "/api/links/c/icon", body, ct)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	got := decode[apiError](t, rec)
	assert.Equal(t, "DECODE_FAILED", got.Error.Code)
	assert.Equal(t, "charset", got.Error.Details["kind"])

	stored, _ := f.links.Get("c")
	assert.Empty(t, stored.UploadedIconData)
}

func TestDeleteLink(t *testing.T) {
	f := newFixture(t, 1<<20)

	rec := f.do(t, http.MethodDelete, "/api/links/a", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 2, f.links.Count())

	rec = f.do(t, http.MethodDelete, "/api/links/a", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMoveLinks(t *testing.T) {
	f := newFixture(t, 1<<20)

	rec := f.do(t, http.MethodPost, "/api/links/a/move-up", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode[map[string]any](t, rec)["moved"])

	rec = f.do(t, http.MethodPost, "/api/links/a/move-down", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[map[string]any](t, rec)["moved"])
	assert.Equal(t, 2, f.links.Position("a"))

	rec = f.do(t, http.MethodPost, "/api/links/c/move-down", nil, "")
	assert.Equal(t, false, decode[map[string]any](t, rec)["moved"])
}

func TestIcons(t *testing.T) {
	f := newFixture(t, 1<<20)

	rec := f.do(t, http.MethodGet, "/api/icons", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[struct {
		Groups []struct {
			Label   string `json:"label"`
			Options []struct {
				Value string `json:"value"`
			} `json:"options"`
		} `json:"groups"`
		Sizes  []map[string]string `json:"sizes"`
		Upload map[string]any      `json:"upload"`
	}](t, rec)

	require.Len(t, got.Groups, 4)
	assert.Equal(t, "Simple Icons", got.Groups[3].Label)
	assert.Len(t, got.Sizes, 5)
	assert.Equal(t, "image/*,.svg,.ico", got.Upload["accept"])
}

func TestClassify(t *testing.T) {
	f := newFixture(t, 1<<20)

	rec := f.do(t, http.MethodGet, "/api/icons/classify?icon=_favicon_duckduckgo", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[map[string]any](t, rec)
	assert.Equal(t, "web_favicon", got["variant"])
	assert.Equal(t, true, got["predicates"].(map[string]any)["isWebFavicon"])
}

func TestReloadWithoutIconsFile(t *testing.T) {
	f := newFixture(t, 1<<20)
	rec := f.do(t, http.MethodPost, "/api/reload", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
