package config

import "time"

// Config is the root configuration for the DealGrid client SDK.
type Config struct {
	API   APIConfig   `koanf:"api" json:"api" yaml:"api"`
	Log   LogConfig   `koanf:"log" json:"log" yaml:"log"`
	Redis RedisConfig `koanf:"redis" json:"redis" yaml:"redis"`
}

// APIConfig drives the HTTP client: where to talk and how patiently.
type APIConfig struct {
	BaseURL     string        `koanf:"baseurl" json:"baseUrl" yaml:"baseurl" validate:"required,url"`
	Timeout     time.Duration `koanf:"timeout" json:"timeout" yaml:"timeout" validate:"min=0"`
	MaxRetries  int           `koanf:"maxretries" json:"maxRetries" yaml:"maxretries" validate:"min=0,max=10"`
	RetryDelay  time.Duration `koanf:"retrydelay" json:"retryDelay" yaml:"retrydelay" validate:"min=0"`
	RefreshPath string        `koanf:"refreshpath" json:"refreshPath" yaml:"refreshpath"`
	RateLimit   float64       `koanf:"ratelimit" json:"rateLimit" yaml:"ratelimit" validate:"min=0"`
	RateBurst   int           `koanf:"rateburst" json:"rateBurst" yaml:"rateburst" validate:"min=0"`
}

// LogConfig controls the SDK's structured logging output.
type LogConfig struct {
	Level  string `koanf:"level" json:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal disabled"`
	Pretty bool   `koanf:"pretty" json:"pretty" yaml:"pretty"`
}

// RedisConfig configures the optional Redis-backed response cache.
// Leaving URL empty disables Redis and the SDK falls back to the
// in-memory cache.
type RedisConfig struct {
	URL string        `koanf:"url" json:"url" yaml:"url"`
	TTL time.Duration `koanf:"ttl" json:"ttl" yaml:"ttl" validate:"min=0"`
}
