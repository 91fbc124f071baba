// Package config handles YAML config file loading for the jieba CLI.
package config

import (
	"fmt"
	"time"
)

// Config represents a jieba.yaml configuration file. All values are
// optional and act as defaults; CLI flags always override them.
type Config struct {
	// InstallDir is where the native artifact is installed, relative to
	// the working directory unless absolute.
	InstallDir string `yaml:"install_dir"`
	// Registry overrides the package registry base URL.
	Registry string `yaml:"registry"`
	// ExtractTimeout bounds the archive unpack stage (e.g. "5m").
	ExtractTimeout Duration `yaml:"extract_timeout"`
	// Dict is an optional user dictionary loaded after startup.
	Dict string `yaml:"dict"`
	// IDFDict is an optional TF-IDF dictionary loaded after startup.
	IDFDict string `yaml:"idf_dict"`
}

// DefaultInstallDir is used when neither config nor flags name one.
const DefaultInstallDir = "data/jieba"

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}
