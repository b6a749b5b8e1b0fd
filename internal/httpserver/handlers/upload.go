package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	apperrors "github.com/MrSnakeDoc/linkedit/internal/errors"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkedit/internal/ingest"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
	"github.com/MrSnakeDoc/linkedit/internal/utils"
)

const (
	// UploadField is the multipart field carrying the icon file.
	UploadField = "file"

	// multipartOverhead leaves room for boundaries and part headers on top of
	// the file itself.
	multipartOverhead = 64 << 10
)

// UploadIcon ingests the icon sent as multipart field "file" and merges the
// resulting patch into the link. A request without a file changes nothing.
func UploadIcon(d deps.Deps) http.HandlerFunc {
	limit := humanize.Bytes(uint64(d.MaxUploadBytes))

	return func(w http.ResponseWriter, r *http.Request) {
		s, err := openSession(r.Context(), d, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, d.MaxUploadBytes+multipartOverhead)
		file, header, err := r.FormFile(UploadField)
		switch {
		case errors.Is(err, http.ErrMissingFile):
			s.editor.Upload(r.Context(), nil)
			w.WriteHeader(http.StatusNoContent)
			return
		case err != nil:
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, d.Logger, apperrors.NewUploadTooLarge(limit))
				return
			}
			writeError(w, d.Logger, apperrors.NewInvalidRequest("invalid multipart body: "+err.Error()))
			return
		}
		defer utils.MustClose(file, d.Logger, "upload")

		ctx := r.Context()
		if d.DecodeTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.DecodeTimeout)
			defer cancel()
		}

		task := s.editor.Upload(ctx, &ingest.Upload{
			Content:     file,
			ContentType: header.Header.Get("Content-Type"),
			Filename:    header.Filename,
		})
		if _, err := task.Wait(); err != nil {
			writeError(w, d.Logger, uploadError(err, s.id, limit))
			return
		}
		if s.err != nil {
			writeError(w, d.Logger, s.err)
			return
		}

		d.Logger.Info("icon uploaded",
			logger.String("id", s.id),
			logger.String("filename", header.Filename),
			logger.Bytes("size", header.Size))

		resp, err := s.current()
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func uploadError(err error, id, limit string) error {
	switch ingest.KindOf(err) {
	case ingest.KindTooLarge:
		return apperrors.NewUploadTooLarge(limit)
	case ingest.KindCanceled:
		if errors.Is(err, ingest.ErrSuperseded) {
			return apperrors.NewUploadSuperseded(id)
		}
		return apperrors.NewDecodeFailed(string(ingest.KindCanceled), err)
	case "":
		return err
	default:
		return apperrors.NewDecodeFailed(string(ingest.KindOf(err)), err)
	}
}
