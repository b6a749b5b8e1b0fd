package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/editor"
	apperrors "github.com/MrSnakeDoc/linkedit/internal/errors"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
)

// maxPatchBytes bounds JSON bodies. Uploads have their own limit.
const maxPatchBytes = 1 << 20

type linkResponse struct {
	domain.LinkRecord
	Position int    `json:"position"`
	Variant  string `json:"variant"`
	Shortcut string `json:"shortcut"`
}

type moveResponse struct {
	Moved bool         `json:"moved"`
	Link  linkResponse `json:"link"`
}

type fieldsResponse struct {
	Variant string          `json:"variant"`
	Fields  []editor.Field  `json:"fields"`
	Preview *editor.Preview `json:"preview,omitempty"`
	SvgText string          `json:"svgText,omitempty"`
}

// session binds one link to an editor whose callbacks write back into the
// collection. The first callback error is kept for the response.
type session struct {
	d      deps.Deps
	ctx    context.Context
	id     string
	editor *editor.Editor
	err    error
}

func openSession(ctx context.Context, d deps.Deps, id string) (*session, error) {
	record, ok := d.Links.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound(id)
	}
	position := d.Links.Position(id)

	// Persistence must outlive a client that disconnects mid-upload.
	s := &session{d: d, ctx: context.WithoutCancel(ctx), id: id}

	cb := editor.Callbacks{
		OnChange: func(p domain.Patch) {
			if _, err := d.Links.Merge(s.ctx, id, p); err != nil && s.err == nil {
				s.err = err
			}
		},
		OnRemove: func() {
			if err := d.Links.Remove(s.ctx, id); err != nil && s.err == nil {
				s.err = err
			}
		},
	}
	if position > 1 {
		cb.OnMoveUp = func() { s.move(d.Links.MoveUp) }
	}
	if position < d.Links.Count() {
		cb.OnMoveDown = func() { s.move(d.Links.MoveDown) }
	}

	e, err := editor.New(record, position, d.Resolver, d.Ingestor, cb)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	s.editor = e
	return s, nil
}

func (s *session) move(fn func(context.Context, string) (bool, error)) {
	if _, err := fn(s.ctx, s.id); err != nil && s.err == nil {
		s.err = err
	}
}

// current renders the link as stored after the editor's callbacks ran.
func (s *session) current() (linkResponse, error) {
	record, ok := s.d.Links.Get(s.id)
	if !ok {
		return linkResponse{}, apperrors.NewNotFound(s.id)
	}
	return toResponse(s.d, record, s.d.Links.Position(s.id)), nil
}

func toResponse(d deps.Deps, record domain.LinkRecord, position int) linkResponse {
	shortcut := "Shortcut"
	if e, err := editor.New(record, position, d.Resolver, nil, editor.Callbacks{
		OnChange: func(domain.Patch) {},
		OnRemove: func() {},
	}); err == nil {
		shortcut = e.ShortcutLabel()
	}
	return linkResponse{
		LinkRecord: record,
		Position:   position,
		Variant:    d.Resolver.Classify(record.Icon).String(),
		Shortcut:   shortcut,
	}
}

func decodePatch(w http.ResponseWriter, r *http.Request) (domain.Patch, error) {
	var p domain.Patch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPatchBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return p, apperrors.NewInvalidRequest("request body is empty")
		}
		return p, apperrors.NewInvalidRequest("invalid JSON patch: " + err.Error())
	}
	return p, nil
}

// ListLinks returns every link in display order.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := d.Links.All()
		out := make([]linkResponse, 0, len(all))
		for i, record := range all {
			out = append(out, toResponse(d, record, i+1))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// CreateLink appends a link built from a patch body.
func CreateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := decodePatch(w, r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		record := domain.LinkRecord{}.Merge(editor.SanitizePatch(p))
		record = d.Links.Add(r.Context(), record)

		d.Logger.Info("link created", logger.String("id", record.ID))
		writeJSON(w, http.StatusCreated, toResponse(d, record, d.Links.Position(record.ID)))
	}
}

// GetLink returns one link.
func GetLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		record, ok := d.Links.Get(id)
		if !ok {
			writeError(w, d.Logger, apperrors.NewNotFound(id))
			return
		}
		writeJSON(w, http.StatusOK, toResponse(d, record, d.Links.Position(id)))
	}
}

// PatchLink merges a sparse patch. Fields absent from the body are kept.
func PatchLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := openSession(r.Context(), d, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		p, err := decodePatch(w, r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		s.editor.ApplyPatch(p)
		if s.err != nil {
			writeError(w, d.Logger, s.err)
			return
		}

		resp, err := s.current()
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// LinkFields lists the inputs relevant to the active icon variant.
func LinkFields(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := openSession(r.Context(), d, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		resp := fieldsResponse{
			Variant: s.editor.Variant().String(),
			Fields:  s.editor.Fields(),
		}
		if preview, ok := s.editor.Preview(); ok {
			resp.Preview = &preview
		}
		if s.editor.Variant() == domain.VariantSVG {
			resp.SvgText = s.editor.SvgText()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// DeleteLink removes a link.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := openSession(r.Context(), d, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		s.editor.Remove()
		if s.err != nil {
			writeError(w, d.Logger, s.err)
			return
		}

		d.Logger.Info("link removed", logger.String("id", s.id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// MoveLinkUp swaps a link with its predecessor. The first link does not move.
func MoveLinkUp(d deps.Deps) http.HandlerFunc {
	return moveLink(d, (*editor.Editor).MoveUp)
}

// MoveLinkDown swaps a link with its successor. The last link does not move.
func MoveLinkDown(d deps.Deps) http.HandlerFunc {
	return moveLink(d, (*editor.Editor).MoveDown)
}

func moveLink(d deps.Deps, move func(*editor.Editor) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := openSession(r.Context(), d, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		moved := move(s.editor)
		if s.err != nil {
			writeError(w, d.Logger, s.err)
			return
		}

		resp, err := s.current()
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, moveResponse{Moved: moved, Link: resp})
	}
}
