// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	DefaultLogLevel     = "warn"
	DefaultJobs         = 4
	DefaultBufferFrames = 4096
	DefaultOutputFormat = "raw"
)

type Config struct {
	LogLevel string `koanf:"log_level"`
	// Format forces a decoder instead of picking one by file extension.
	Format string `koanf:"format"`
	// Jobs bounds how many inputs probe works on at once.
	Jobs int `koanf:"jobs"`

	Read struct {
		BufferFrames int    `koanf:"buffer_frames"`
		OutputFormat string `koanf:"output_format"`
	} `koanf:"read"`
}

// flagKeys maps command line flags to configuration keys. Flags missing
// here are per-invocation and never stored in the configuration.
var flagKeys = map[string]string{
	"log-level":     "log_level",
	"format":        "format",
	"jobs":          "jobs",
	"buffer-frames": "read.buffer_frames",
	"output-format": "read.output_format",
}

// loadConfig layers the built-in defaults, the YAML file at path (if any)
// and the flags the user actually set, in that order.
func loadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(map[string]interface{}{
		"log_level":          DefaultLogLevel,
		"format":             "",
		"jobs":               DefaultJobs,
		"read.buffer_frames": DefaultBufferFrames,
		"read.output_format": DefaultOutputFormat,
	}, "."), nil)
	if err != nil {
		return nil, fmt.Errorf("failed loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed reading configuration file %s: %w", path, err)
		}
	}

	if flags != nil {
		p := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("failed loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed unmarshalling configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("invalid jobs %d: must be at least 1", c.Jobs)
	}
	if c.Read.BufferFrames < 1 {
		return fmt.Errorf("invalid buffer frames %d: must be at least 1", c.Read.BufferFrames)
	}

	switch c.Read.OutputFormat {
	case "raw", "wav":
	default:
		return fmt.Errorf("invalid output format %q: must be raw or wav", c.Read.OutputFormat)
	}

	return nil
}
