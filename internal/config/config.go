// Package config loads model.Options from YAML via viper, and writes a
// default config file directly through yaml.v3 when a caller wants one
// seeded on disk.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ModelOptions mirrors model.Options' fields with mapstructure tags so it
// can be populated independently of the model package (which must not
// depend on viper/yaml itself — only cmd/coretext and callers that want
// file-based configuration do). The yaml tags are used only by Save; Load
// goes through viper, which parses YAML on its own.
type ModelOptions struct {
	TabSize            int  `mapstructure:"tab_size" yaml:"tab_size"`
	InsertSpaces       bool `mapstructure:"insert_spaces" yaml:"insert_spaces"`
	TrimAutoWhitespace bool `mapstructure:"trim_auto_whitespace" yaml:"trim_auto_whitespace"`
	MaxSyncBytes       int  `mapstructure:"max_sync_bytes" yaml:"max_sync_bytes"`
	TooLargeBytes      int  `mapstructure:"too_large_bytes" yaml:"too_large_bytes"`
	TooLargeLines      int  `mapstructure:"too_large_lines" yaml:"too_large_lines"`
	LongLineThreshold  int  `mapstructure:"long_line_threshold" yaml:"long_line_threshold"`
}

// DefaultModelOptions returns the default construction limits for a model.
func DefaultModelOptions() ModelOptions {
	return ModelOptions{
		TabSize:            4,
		InsertSpaces:       true,
		TrimAutoWhitespace: true,
		MaxSyncBytes:       50 * 1000 * 1000,
		TooLargeBytes:      20 * 1000 * 1000,
		TooLargeLines:      300000,
		LongLineThreshold:  10000,
	}
}

// Load reads coretext.yaml (or the CORETEXT_-prefixed environment) from
// the given search paths, falling back to DefaultModelOptions when no
// file is found.
func Load(searchPaths ...string) (ModelOptions, error) {
	v := viper.New()
	v.SetConfigName("coretext")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvPrefix("CORETEXT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return ModelOptions{}, fmt.Errorf("coretext: reading config: %w", err)
		}
	}

	var opts ModelOptions
	if err := v.Unmarshal(&opts); err != nil {
		return ModelOptions{}, fmt.Errorf("coretext: unmarshaling config: %w", err)
	}
	return opts, nil
}

// Save marshals opts to YAML via yaml.v3 and writes it to path, creating
// or truncating the file. Unlike Load, this bypasses viper entirely —
// there is nothing to merge with defaults or the environment, just a
// config file a caller wants seeded on disk.
func Save(path string, opts ModelOptions) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("coretext: marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("coretext: writing config: %w", err)
	}
	return nil
}

func applyDefaults(v *viper.Viper) {
	d := DefaultModelOptions()
	v.SetDefault("tab_size", d.TabSize)
	v.SetDefault("insert_spaces", d.InsertSpaces)
	v.SetDefault("trim_auto_whitespace", d.TrimAutoWhitespace)
	v.SetDefault("max_sync_bytes", d.MaxSyncBytes)
	v.SetDefault("too_large_bytes", d.TooLargeBytes)
	v.SetDefault("too_large_lines", d.TooLargeLines)
	v.SetDefault("long_line_threshold", d.LongLineThreshold)
}
