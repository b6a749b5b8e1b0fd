package seed

import (
	"strings"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/svg"
)

// DefaultPackLabel labels the icon pack group when icons.yaml names none
const DefaultPackLabel = "Icons"

// MapLinks normalizes seeded links. IDs are left to the collection.
// Inline SVG payloads go through the same sanitizer as edits, so a seed file
// cannot reintroduce explicit sizing.
func MapLinks(config LinksConfig) []domain.LinkRecord {
	links := make([]domain.LinkRecord, 0, len(config.Links))
	for _, l := range config.Links {
		l.URL = strings.TrimSpace(l.URL)
		l.Icon = strings.TrimSpace(l.Icon)
		l.SvgString = svg.Sanitize(l.SvgString)
		if l.UploadedIconType == domain.UploadedSVG {
			l.UploadedIconData = svg.Sanitize(l.UploadedIconData)
		}
		links = append(links, l)
	}
	return links
}

// MapIcons builds the icon pack and its selector label
func MapIcons(config IconsConfig) (*domain.StaticIconPack, string) {
	label := strings.TrimSpace(config.Label)
	if label == "" {
		label = DefaultPackLabel
	}

	names := make([]string, 0, len(config.Icons))
	for _, n := range config.Icons {
		names = append(names, strings.TrimSpace(n))
	}
	return domain.NewStaticIconPack(names), label
}
