package seed

import "github.com/MrSnakeDoc/linkedit/internal/domain"

// LinksConfig represents the top-level structure of links.yaml
type LinksConfig struct {
	Links []domain.LinkRecord `yaml:"links"`
}

// IconsConfig represents the top-level structure of icons.yaml: the icon pack
// offered in the selector next to the built-in sources
type IconsConfig struct {
	Label string   `yaml:"label"`
	Icons []string `yaml:"icons"`
}
