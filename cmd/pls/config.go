package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the command line tool. Flags override values
// read from a configuration file.
type Config struct {
	Database string `yaml:"database"`
	Script   string `yaml:"script"`
	Scheme   string `yaml:"scheme"`
	Trace    string `yaml:"trace"`
}

func defaultConfig() Config {
	return Config{
		Script: "devanagari",
		Scheme: "iast",
		Trace:  "Error",
	}
}

// loadConfig reads a YAML configuration file on top of the defaults.
// An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.Wrap(err, "reading configuration")
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.Wrapf(err, "parsing configuration %s", path)
	}
	return conf, nil
}
