// Package config provides configuration management for the mwsfba tools.
package config

import (
	"fmt"
	"time"
)

// Config holds settings for building, previewing and recording MWS
// Fulfillment parameter sets. Credentials never live here; the transport
// collaborator reads them from its own environment.
type Config struct {
	Endpoint       string        // MWS host, e.g. mws.amazonservices.com
	Scheme         string        // https or http
	Version        string        // Fulfillment API version for the catalog
	LedgerURL      string        // sqlite://... or postgres://...; empty disables recording
	Host           string        // preview server bind host
	Port           int           // preview server bind port
	RequestTimeout time.Duration // preview server per-request timeout
	LogLevel       string        // debug, info, warn, error
	LogFormat      string        // text, json
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:       "mws.amazonservices.com",
		Scheme:         "https",
		Version:        "2010-10-01",
		Host:           "127.0.0.1",
		Port:           8080,
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Addr returns the preview server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BaseURL returns scheme://endpoint without a trailing slash.
func (c *Config) BaseURL() string {
	return c.Scheme + "://" + c.Endpoint
}
