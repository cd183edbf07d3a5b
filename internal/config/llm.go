package config

import "time"

type LLM struct {
	Enabled  bool        `env:"ENABLED" envDefault:"false" yaml:"enabled"`
	Provider LLMProvider `envPrefix:"PROVIDER_" yaml:"provider"`
}

type LLMProvider struct {
	Name                string `env:"NAME,expand" envDefault:"openai" yaml:"name"`
	BaseURL             string `env:"BASE_URL,expand" envDefault:"https://api.mistral.ai/v1/" yaml:"baseUrl"`
	Key                 string `env:"KEY,expand" yaml:"key"`
	ChatCompletionModel string `env:"CHAT_COMPLETION_MODEL,expand" envDefault:"mistral-small-latest" yaml:"chatCompletionModel"`

	// MinInterval throttles outgoing completion calls, 0 disables the
	// limiter.
	MinInterval time.Duration `env:"MIN_INTERVAL" envDefault:"1s" yaml:"minInterval"`
}
