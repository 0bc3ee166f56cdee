// Package config handles loading of the batch conversion file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Jobs []Job `yaml:"jobs"`
}

// Job describes one GeoJSON to .poly conversion.
type Job struct {
	Name   string `yaml:"name,omitempty"`
	Input  string `yaml:"input"`
	Output string `yaml:"output,omitempty"` // defaults to Input with a .poly extension
	Format string `yaml:"format,omitempty"` // json or yaml, defaults to the Input extension
}

// Load reads and parses the YAML configuration file from the specified path.
// Relative job paths are resolved against the directory of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.normalize(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) normalize(baseDir string) error {
	seen := make(map[string]bool, len(c.Jobs))

	for i := range c.Jobs {
		job := &c.Jobs[i]

		if job.Input == "" {
			return fmt.Errorf("job %d: input is required", i)
		}
		if !filepath.IsAbs(job.Input) {
			job.Input = filepath.Join(baseDir, job.Input)
		}

		if job.Output == "" {
			job.Output = strings.TrimSuffix(job.Input, filepath.Ext(job.Input)) + ".poly"
		} else if !filepath.IsAbs(job.Output) {
			job.Output = filepath.Join(baseDir, job.Output)
		}

		switch job.Format {
		case "", "json", "yaml":
		default:
			return fmt.Errorf("job %d: unknown format %q", i, job.Format)
		}

		if job.Name == "" {
			base := filepath.Base(job.Input)
			job.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if seen[job.Name] {
			return fmt.Errorf("job %d: duplicate name %q", i, job.Name)
		}
		seen[job.Name] = true
	}

	return nil
}
