package news

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one RSS feed.
type Source struct {
	Name             string `yaml:"name"`
	URL              string `yaml:"url"`
	FilterForHousing bool   `yaml:"filter_for_housing"`
}

// DefaultSources are used when no sources file is configured.
var DefaultSources = []Source{
	{Name: "NOS Economie", URL: "https://feeds.nos.nl/nosnieuwseconomie", FilterForHousing: true},
	{Name: "NOS Binnenland", URL: "https://feeds.nos.nl/nosnieuwsbinnenland", FilterForHousing: true},
}

type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads a YAML sources file. An empty path yields DefaultSources.
func LoadSources(path string) ([]Source, error) {
	if path == "" {
		return DefaultSources, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read news sources: %w", err)
	}
	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse news sources: %w", err)
	}
	for i, s := range f.Sources {
		if s.URL == "" {
			return nil, fmt.Errorf("news source %d (%q) has no url", i, s.Name)
		}
	}
	if len(f.Sources) == 0 {
		return DefaultSources, nil
	}
	return f.Sources, nil
}
