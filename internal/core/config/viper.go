package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// secretKeys may only come from the environment.
var secretKeys = []string{
	"aws_secret_key",
	"mws.aws_secret_key",
	"mws.secret_key",
	"mws.auth_token",
}

// LoadEnvFile loads a dotenv file into the process environment without
// overriding variables that are already set.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence; flags are
// applied by the caller on the returned Config.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault("mws.endpoint", d.Endpoint)
	v.SetDefault("mws.scheme", d.Scheme)
	v.SetDefault("fba.version", d.Version)
	v.SetDefault("ledger.db_url", d.LedgerURL)
	v.SetDefault("server.host", d.Host)
	v.SetDefault("server.port", d.Port)
	v.SetDefault("server.request_timeout", d.RequestTimeout.String())
	v.SetDefault("log.level", d.LogLevel)
	v.SetDefault("log.format", d.LogFormat)

	// Bind environment variables with MWS_ prefix (MWS_SERVER_PORT, MWS_LEDGER_DB_URL)
	v.SetEnvPrefix("MWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := validateNoSecretsInConfig(v); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Endpoint:       v.GetString("mws.endpoint"),
		Scheme:         v.GetString("mws.scheme"),
		Version:        v.GetString("fba.version"),
		LedgerURL:      v.GetString("ledger.db_url"),
		Host:           v.GetString("server.host"),
		Port:           v.GetInt("server.port"),
		RequestTimeout: v.GetDuration("server.request_timeout"),
		LogLevel:       strings.ToLower(v.GetString("log.level")),
		LogFormat:      strings.ToLower(v.GetString("log.format")),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks port range, scheme, version, timeout and log settings.
func Validate(cfg *Config) error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("mws.endpoint must not be empty")
	}
	if cfg.Scheme != "https" && cfg.Scheme != "http" {
		return fmt.Errorf("mws.scheme must be http or https, got %q", cfg.Scheme)
	}
	if cfg.Version == "" {
		return fmt.Errorf("fba.version must not be empty")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", cfg.RequestTimeout)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", cfg.LogFormat)
	}
	return nil
}

// validateNoSecretsInConfig enforces environment-only secrets (12-factor principle).
// Only keys present in the file itself are rejected; environment values are fine.
func validateNoSecretsInConfig(v *viper.Viper) error {
	for _, k := range secretKeys {
		if v.InConfig(k) {
			return fmt.Errorf("%s not allowed in config files (use the environment)", k)
		}
	}
	return nil
}
