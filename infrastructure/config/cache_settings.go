package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheSettings is the on-disk tuning file for the query cache: per-category
// TTL overrides and the warmup queries fired after a customer authenticates.
type CacheSettings struct {
	TTLs   map[string]time.Duration
	Warmup []WarmupEntry
}

// WarmupEntry names one query to preload for each authenticated customer.
type WarmupEntry struct {
	Category string                 `yaml:"category"`
	Params   map[string]interface{} `yaml:"params"`
}

// cacheSettingsFile mirrors the YAML layout. TTLs are duration strings
// ("90s", "2m") since yaml has no native duration type.
type cacheSettingsFile struct {
	TTLs   map[string]string `yaml:"ttls"`
	Warmup []WarmupEntry     `yaml:"warmup"`
}

// LoadCacheSettings reads the cache settings file. An empty path returns
// empty settings so the cache runs on its defaults.
func LoadCacheSettings(path string) (*CacheSettings, error) {
	settings := &CacheSettings{}
	if path == "" {
		return settings, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cache settings %s: %w", path, err)
	}
	var file cacheSettingsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse cache settings %s: %w", path, err)
	}

	if len(file.TTLs) > 0 {
		settings.TTLs = make(map[string]time.Duration, len(file.TTLs))
	}
	for category, value := range file.TTLs {
		ttl, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("cache settings %s: ttl for %q: %w", path, category, err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("cache settings %s: ttl for %q must be positive", path, category)
		}
		settings.TTLs[category] = ttl
	}
	for i, entry := range file.Warmup {
		if entry.Category == "" {
			return nil, fmt.Errorf("cache settings %s: warmup entry %d has no category", path, i)
		}
	}
	settings.Warmup = file.Warmup

	return settings, nil
}
