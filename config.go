package restclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides. A variable
// like RESTCALL_BASE_URL maps to the base_url key; a double underscore
// descends into nested keys, e.g. RESTCALL_RETRY__COUNT -> retry.count.
const EnvPrefix = "RESTCALL_"

// Config is the declarative construction surface of the client. It mirrors
// the [Option] functions and can be loaded from YAML and the environment.
type Config struct {
	BaseURL   string            `koanf:"base_url" validate:"required,url"`
	Headers   map[string]string `koanf:"headers"`
	Params    map[string]string `koanf:"params"`
	Timeout   time.Duration     `koanf:"timeout"`
	VerifySSL bool              `koanf:"verify_ssl"`
	RequestID bool              `koanf:"request_id"`
	Retry     RetryConfig       `koanf:"retry"`
	Auth      AuthConfig        `koanf:"auth"`
}

type RetryConfig struct {
	Count       int           `koanf:"count" validate:"gte=0,lte=100"`
	WaitTime    time.Duration `koanf:"wait_time"`
	MaxWaitTime time.Duration `koanf:"max_wait_time"`
}

// AuthConfig configures either token auth (scheme + token) or basic auth
// (username + password). The two are mutually exclusive.
type AuthConfig struct {
	Scheme   string `koanf:"scheme"`
	Token    string `koanf:"token"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

var validate = validator.New()

// DefaultConfig returns a Config carrying the library defaults and no base
// URL.
func DefaultConfig() *Config {
	return &Config{
		Timeout:   30 * time.Second,
		VerifySSL: true,
		Retry: RetryConfig{
			Count:       3,
			WaitTime:    500 * time.Millisecond,
			MaxWaitTime: 3 * time.Second,
		},
	}
}

// LoadConfig loads configuration with increasing priority: built-in
// defaults, the YAML file at path (skipped when path is empty), then
// environment variables under [EnvPrefix].
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(envprovider.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return unmarshalConfig(k)
}

// ParseConfig loads configuration from in-memory YAML over the built-in
// defaults. Environment variables are not applied.
func ParseConfig(data []byte) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return unmarshalConfig(k)
}

// NewFromConfig builds a client from a loaded configuration. Extra options
// are applied after the configuration and win on conflict.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, &APIError{Message: "config must not be nil"}
	}
	return New(cfg.BaseURL, append(cfg.options(), opts...)...)
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"timeout":             "30s",
		"verify_ssl":          true,
		"request_id":          false,
		"retry.count":         3,
		"retry.wait_time":     "500ms",
		"retry.max_wait_time": "3s",
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func unmarshalConfig(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (cfg *Config) options() []Option {
	opts := []Option{
		WithTimeout(cfg.Timeout),
		WithRetryCount(cfg.Retry.Count),
		WithRetryWaitTime(cfg.Retry.WaitTime),
		WithRetryMaxWaitTime(cfg.Retry.MaxWaitTime),
	}

	for header, value := range cfg.Headers {
		opts = append(opts, WithRequestHeader(header, value))
	}
	for param, value := range cfg.Params {
		opts = append(opts, WithQueryParam(param, value))
	}

	if !cfg.VerifySSL {
		opts = append(opts, WithInsecureSkipVerify())
	}
	if cfg.RequestID {
		opts = append(opts, WithRequestID())
	}

	if cfg.Auth.Token != "" {
		opts = append(opts, WithAuthToken(cfg.Auth.Token))
		if cfg.Auth.Scheme != "" {
			opts = append(opts, WithAuthScheme(cfg.Auth.Scheme))
		}
	}
	if cfg.Auth.Username != "" {
		opts = append(opts, WithBasicAuth(cfg.Auth.Username, cfg.Auth.Password))
	}

	return opts
}
