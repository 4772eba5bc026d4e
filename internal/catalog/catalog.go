// Package catalog serves the static product content: generation options,
// templates, simulated trends, creator tools, pricing and the site map.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	cattypes "trendmindAPI/internal/types/catalog"
)

// TrialDays is the length of the Early Adopter trial.
const TrialDays = 7

//go:embed catalog.yaml
var catalogYAML []byte

// Load parses the embedded catalog.
func Load() (*cattypes.Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalog document and fills in the derived topics.
func Parse(data []byte) (*cattypes.Catalog, error) {
	var c cattypes.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.ContentTypes) == 0 || len(c.Tones) == 0 {
		return nil, fmt.Errorf("catalog needs at least one content type and tone")
	}

	for i := range c.Templates {
		c.Templates[i].Topic = TemplateTopic(c.Templates[i].Title)
	}
	for i := range c.Trends {
		c.Trends[i].Topic = TrendTopic(c.Trends[i].Headline)
	}
	return &c, nil
}

// TemplateTopic is the generation topic prefilled by a template.
func TemplateTopic(title string) string {
	return fmt.Sprintf("Write a post using the %s framework. The core topic is: [INSERT TOPIC HERE]", title)
}

// TrendTopic is the generation topic prefilled by a trend.
func TrendTopic(headline string) string {
	return fmt.Sprintf("Write an analytical post discussing this recent trend: \"%s\"", headline)
}

// IsPublicPath reports whether path, or a parent page of it, is reachable
// without signing in.
func IsPublicPath(pages []cattypes.Page, path string) bool {
	for _, p := range pages {
		if !p.Public {
			continue
		}
		if p.Path == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if path == p.Path || strings.HasPrefix(path, p.Path+"/") {
			return true
		}
	}
	return false
}
