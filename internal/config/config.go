package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logger  Logger  `envPrefix:"LOGGER_" yaml:"logger"`
	HTTP    HTTP    `envPrefix:"HTTP_" yaml:"http"`
	Storage Storage `envPrefix:"STORAGE_" yaml:"storage"`
	LLM     LLM     `envPrefix:"LLM_" yaml:"llm"`
}

func Parse() (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: "NOTELY_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}

// ParseFile loads the YAML file then lets environment variables override
// its values. Precedence is env over file over defaults.
func ParseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var conf Config

	// Apply the envDefault values without reading the actual environment
	if err := env.ParseWithOptions(&conf, env.Options{
		Prefix:      "NOTELY_",
		Environment: map[string]string{},
	}); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, errors.WithStack(err)
	}

	// Overlay set environment variables, without re-applying defaults
	if err := env.ParseWithOptions(&conf, env.Options{
		Prefix:              "NOTELY_",
		DefaultValueTagName: "envFileDefault",
	}); err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
