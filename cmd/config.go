package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/arr-ai/dbc/textenc"
)

// Config holds the settings that may be given in a configuration file.
//
//	encodings: [gbk, windows-1252]
//	output_encoding: utf-8
//	fmt:
//	  include: ["**/*.dbc"]
//	  exclude: ["vendor/**"]
//	  jobs: 4
//	verbose: false
type Config struct {
	// Encodings are tried, in order, on input that is not UTF-8.
	Encodings      []string  `mapstructure:"encodings"`
	OutputEncoding string    `mapstructure:"output_encoding"`
	Fmt            FmtConfig `mapstructure:"fmt"`
	Verbose        bool      `mapstructure:"verbose"`
}

type FmtConfig struct {
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`
	Jobs    int      `mapstructure:"jobs"`
}

//nolint:gochecknoglobals
var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		Encodings:      append([]string(nil), textenc.DefaultFallbacks...),
		OutputEncoding: "utf-8",
		Fmt: FmtConfig{
			Include: []string{"**/*.dbc"},
			Jobs:    runtime.GOMAXPROCS(0),
		},
	}
}

func loadConfig(path string) (Config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := decodeConfig(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func decodeConfig(raw map[string]interface{}, c *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		ZeroFields:  true,
		Result:      c,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return err
	}
	return c.validate()
}

func (c Config) validate() error {
	for _, name := range append([]string{c.OutputEncoding}, c.Encodings...) {
		if _, err := textenc.Lookup(name); err != nil {
			return err
		}
	}
	for _, pattern := range append(append([]string(nil), c.Fmt.Include...), c.Fmt.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	if c.Fmt.Jobs < 1 {
		return fmt.Errorf("fmt.jobs must be at least 1, got %d", c.Fmt.Jobs)
	}
	return nil
}
