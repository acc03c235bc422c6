package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultHTTPPort          = 9001
	DefaultAuthTokenEnv      = "AUTH_TOKEN"
	DefaultDispatchAttempts  = 3
	DefaultDispatchDelay     = 5 * time.Second
	DefaultDispatchTimeout   = 10 * time.Second
	DefaultQueueWorkers      = 4
	DefaultQueueBuffer       = 100
	DefaultRecordTTL         = time.Hour
	DefaultBroadcastInterval = 5 * time.Second
)

// Config is the top-level configuration, parsed from the `calc:` section
// of config.yaml.
type Config struct {
	Calc CalcConfig `yaml:"calc"`
}

// CalcConfig holds all calculator service settings.
type CalcConfig struct {
	// HTTPPort is the port the HTTP API listens on.
	HTTPPort int `yaml:"http_port"`

	// CollectorURL is the base URL of the downstream collector service
	// that receives finished calculation results.
	CollectorURL string `yaml:"collector_url"`

	// Auth configures the shared token compared against inbound requests
	// and sent along with outbound results.
	Auth AuthConfig `yaml:"auth"`

	// ProcessingDelay is an artificial pause applied before the synchronous
	// calculation runs, simulating processing time. Zero disables it.
	ProcessingDelay time.Duration `yaml:"processing_delay"`

	// Dispatch controls result delivery to the collector.
	Dispatch DispatchConfig `yaml:"dispatch"`

	// Queue controls the asynchronous calculation workers.
	Queue QueueConfig `yaml:"queue"`

	// Records controls in-memory calculation record retention.
	Records RecordsConfig `yaml:"records"`

	// BroadcastInterval is how often the WebSocket hub pushes the live
	// calculation list to connected clients.
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
}

// AuthConfig resolves the shared auth token from the environment.
// The token value itself never lives in the config file.
type AuthConfig struct {
	// TokenEnv is the name of the environment variable holding the token.
	TokenEnv string `yaml:"token_env"`
}

// Token returns the auth token resolved from the environment, or empty
// string when TokenEnv is unset or the variable is not found.
func (a AuthConfig) Token() string {
	if a.TokenEnv == "" {
		return ""
	}
	return os.Getenv(a.TokenEnv)
}

// DispatchConfig controls the bounded-retry delivery to the collector.
type DispatchConfig struct {
	// Attempts is the maximum number of delivery tries per result.
	Attempts int `yaml:"attempts"`

	// RetryDelay is the fixed wait between failed attempts.
	RetryDelay time.Duration `yaml:"retry_delay"`

	// Timeout bounds each individual HTTP attempt.
	Timeout time.Duration `yaml:"timeout"`
}

// QueueConfig controls the asynchronous task adapter.
type QueueConfig struct {
	// Workers is the number of goroutines draining the job buffer.
	Workers int `yaml:"workers"`

	// BufferSize is the maximum number of queued jobs; Enqueue rejects
	// jobs when the buffer is full.
	BufferSize int `yaml:"buffer_size"`
}

// RecordsConfig controls calculation record retention.
type RecordsConfig struct {
	// TTL is how long a record remains in the store after its last update.
	TTL time.Duration `yaml:"ttl"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Calc: CalcConfig{
			HTTPPort: DefaultHTTPPort,
			Auth:     AuthConfig{TokenEnv: DefaultAuthTokenEnv},
			Dispatch: DispatchConfig{
				Attempts:   DefaultDispatchAttempts,
				RetryDelay: DefaultDispatchDelay,
				Timeout:    DefaultDispatchTimeout,
			},
			Queue: QueueConfig{
				Workers:    DefaultQueueWorkers,
				BufferSize: DefaultQueueBuffer,
			},
			Records:           RecordsConfig{TTL: DefaultRecordTTL},
			BroadcastInterval: DefaultBroadcastInterval,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	c := cfg.Calc
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("calc.http_port %d is out of range [1, 65535]", c.HTTPPort)
	}
	if c.CollectorURL == "" {
		return fmt.Errorf("calc.collector_url is required")
	}
	if c.ProcessingDelay < 0 {
		return fmt.Errorf("calc.processing_delay must not be negative")
	}
	if c.Dispatch.Attempts < 1 {
		return fmt.Errorf("calc.dispatch.attempts must be at least 1")
	}
	if c.Dispatch.RetryDelay < 0 {
		return fmt.Errorf("calc.dispatch.retry_delay must not be negative")
	}
	if c.Dispatch.Timeout <= 0 {
		return fmt.Errorf("calc.dispatch.timeout must be positive")
	}
	if c.Queue.Workers < 1 {
		return fmt.Errorf("calc.queue.workers must be at least 1")
	}
	if c.Queue.BufferSize < 1 {
		return fmt.Errorf("calc.queue.buffer_size must be at least 1")
	}
	if c.Records.TTL < 0 {
		return fmt.Errorf("calc.records.ttl must not be negative")
	}
	if c.BroadcastInterval <= 0 {
		return fmt.Errorf("calc.broadcast_interval must be positive")
	}
	return nil
}
