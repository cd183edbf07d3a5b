package config

import "time"

type HTTP struct {
	BaseURL string `env:"BASE_URL,expand" envDefault:"/" yaml:"baseUrl"`
	Address string `env:"ADDRESS,expand" envDefault:":3002" yaml:"address"`

	Auth      Auth      `envPrefix:"AUTH_" yaml:"auth"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_" yaml:"rateLimit"`
}

type Auth struct {
	User  User `envPrefix:"USER_" yaml:"user"`
	Admin User `envPrefix:"ADMIN_" yaml:"admin"`
}

type User struct {
	Username string `env:"USERNAME,expand" yaml:"username"`
	Password string `env:"PASSWORD,expand" yaml:"password"`
}

// RateLimit applies to the anonymous public share endpoint only.
type RateLimit struct {
	Enabled      bool          `env:"ENABLED" envDefault:"true" yaml:"enabled"`
	TrustHeaders bool          `env:"TRUST_HEADERS" envDefault:"false" yaml:"trustHeaders"`
	MinInterval  time.Duration `env:"MIN_INTERVAL" envDefault:"100ms" yaml:"minInterval"`
	MaxBurst     int           `env:"MAX_BURST" envDefault:"10" yaml:"maxBurst"`
	CacheSize    int           `env:"CACHE_SIZE" envDefault:"1024" yaml:"cacheSize"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"10m" yaml:"cacheTtl"`
}
