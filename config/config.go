// Package config loads the scraper's YAML configuration. A missing file is
// not an error -- the defaults describe the source site's current policy --
// but a file that exists and cannot be parsed is.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the structure of config.yaml.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Rate   RateConfig   `yaml:"rate"`
}

// SourceConfig identifies the listing page and the default item bound.
type SourceConfig struct {
	ListingURL string `yaml:"listing_url"`
	Limit      int    `yaml:"limit"`
}

// FetchConfig holds transport settings.
type FetchConfig struct {
	UserAgent string   `yaml:"user_agent"`
	Timeout   Duration `yaml:"timeout"`
}

// RateConfig holds the request-pacing policy: minimum spacing between
// dispatches, bucket capacity, and the full-refill period.
type RateConfig struct {
	Spacing    Duration `yaml:"spacing"`
	BucketSize int      `yaml:"bucket_size"`
	Refill     Duration `yaml:"refill"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Source: SourceConfig{
			ListingURL: "https://www.nintendo.com/us/whatsnew/",
			Limit:      10,
		},
		Fetch: FetchConfig{
			UserAgent: "nintendonews/1.0 (news listing scraper)",
			Timeout:   Duration(10 * time.Second),
		},
		Rate: RateConfig{
			Spacing:    Duration(2 * time.Second),
			BucketSize: 30,
			Refill:     Duration(60 * time.Second),
		},
	}
}

// Load reads configuration from path, layering the file's values over the
// defaults. A missing file yields the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Duration is a time.Duration that reads and writes the "2s"/"60s" string
// form in YAML.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML decodes a duration string like "2s" or "1m30s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// MarshalYAML encodes the duration in its string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
