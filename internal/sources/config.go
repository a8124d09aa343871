package sources

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zagzy8776/realssa-news-agg/internal/models"
)

// FeedEntry is one feed as written in a feeds.json or feeds.yaml file.
type FeedEntry struct {
	URL      string `json:"url" yaml:"url"`
	Source   string `json:"source" yaml:"source"`
	Category string `json:"category" yaml:"category"`
	Country  string `json:"country" yaml:"country"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// FeedsConfig holds the feeds configuration
type FeedsConfig struct {
	Sources []FeedEntry `json:"sources" yaml:"sources"`
}

// LoadFeedsConfig loads feed sources from a JSON or YAML file, chosen by extension.
func LoadFeedsConfig(configPath string) (*FeedsConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds config: %w", err)
	}

	var config FeedsConfig
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse feeds config: %w", err)
	}

	return &config, nil
}

// FindFeedsConfig searches for a feeds file in common locations.
func FindFeedsConfig() string {
	locations := []string{
		"feeds.json",
		"feeds.yaml",
		"feeds.yml",
		"../feeds.json",
		"../feeds.yaml",
		"/app/feeds.json",
		"/app/feeds.yaml",
		"config/feeds.json",
		"config/feeds.yaml",
	}

	if envPath := os.Getenv("FEEDS_CONFIG_PATH"); envPath != "" {
		locations = append([]string{envPath}, locations...)
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			absPath, _ := filepath.Abs(loc)
			return absPath
		}
	}

	return ""
}

// FeedSources converts enabled entries to registry rows, in file order.
func (c *FeedsConfig) FeedSources() []models.FeedSource {
	out := make([]models.FeedSource, 0, len(c.Sources))
	for _, e := range c.Sources {
		if e.Disabled {
			continue
		}
		out = append(out, models.FeedSource{
			URL:        strings.TrimSpace(e.URL),
			SourceName: strings.TrimSpace(e.Source),
			Category:   strings.TrimSpace(e.Category),
			Country:    strings.TrimSpace(e.Country),
		})
	}
	return out
}
