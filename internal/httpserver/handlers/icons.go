package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/editor"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/deps"
)

type iconsResponse struct {
	Groups []editor.OptionGroup `json:"groups"`
	Sizes  []editor.Option      `json:"sizes"`
	Upload editor.UploadInput   `json:"upload"`
}

// Icons lists the selector options, the favicon resolutions and the upload
// input constraints.
func Icons(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			pack  domain.IconPack
			label string
		)
		if d.Pack != nil {
			pack, label = d.Pack, d.Pack.Label()
		}

		writeJSON(w, http.StatusOK, iconsResponse{
			Groups: editor.IconOptions(pack, label),
			Sizes:  editor.IconSizeOptions(),
			Upload: editor.UploadInputSpec(),
		})
	}
}

type classifyResponse struct {
	Icon       string            `json:"icon"`
	Variant    string            `json:"variant"`
	Fields     []string          `json:"fields"`
	Predicates domain.Predicates `json:"predicates"`
}

// Classify reports how a selector value is interpreted (?icon=...).
func Classify(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		icon := strings.TrimSpace(r.URL.Query().Get("icon"))
		v := d.Resolver.Classify(icon)

		writeJSON(w, http.StatusOK, classifyResponse{
			Icon:       icon,
			Variant:    v.String(),
			Fields:     v.Fields(),
			Predicates: domain.PredicatesOf(icon),
		})
	}
}
