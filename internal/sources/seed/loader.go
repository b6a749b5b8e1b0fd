package seed

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVariable = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads links.yaml and icons.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new loader for filePath
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// LoadLinks reads and parses a links file
func (l *Loader) LoadLinks() (LinksConfig, error) {
	var config LinksConfig
	if err := l.decode(&config); err != nil {
		return LinksConfig{}, fmt.Errorf("failed to load links: %w", err)
	}
	return config, nil
}

// LoadIcons reads and parses an icon pack file
func (l *Loader) LoadIcons() (IconsConfig, error) {
	var config IconsConfig
	if err := l.decode(&config); err != nil {
		return IconsConfig{}, fmt.Errorf("failed to load icons: %w", err)
	}
	return config, nil
}

func (l *Loader) decode(out any) error {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", l.filePath, err)
	}

	// Template variables ({{VAR}}) are left by dashboard exports; drop them
	data = stripTemplateVariables(data)

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	return nil
}

// stripTemplateVariables replaces template variables with an empty string
// Example: {{GITHUB_URL}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVariable.ReplaceAll(data, []byte(`""`))
}
