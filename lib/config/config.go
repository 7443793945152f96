// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "DEPCRAWL_CONFIG"

// Config is the master configuration for depcrawl.
type Config struct {
	// GitHub configures the REST API client.
	GitHub GitHubConfig `yaml:"github"`

	// Resolve configures graph resolution.
	Resolve ResolveConfig `yaml:"resolve"`

	// Cache configures in-process caches.
	Cache CacheConfig `yaml:"cache"`
}

// GitHubConfig configures the GitHub REST API client.
type GitHubConfig struct {
	// APIURL is the REST API root. Must use HTTPS.
	// Default: https://api.github.com
	APIURL string `yaml:"api_url"`

	// Token is a personal access token, sent as a Bearer header.
	// Mutually exclusive with ClientID/ClientSecret.
	Token string `yaml:"token"`

	// ClientID and ClientSecret identify an OAuth application. They are
	// sent as query parameters. Both or neither.
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// UserAgent overrides the User-Agent header.
	// Default: depcrawl/<version>
	UserAgent string `yaml:"user_agent"`
}

// ResolveConfig configures graph resolution.
type ResolveConfig struct {
	// Concurrency is the maximum number of ticket fetches in flight.
	// Default: 8
	Concurrency int `yaml:"concurrency"`

	// MissingTickets is what a reference to a nonexistent ticket does.
	// Values: "fail" (abort the resolution), "leaf" (treat as having no
	// dependencies).
	// Default: fail
	MissingTickets string `yaml:"missing_tickets"`
}

// CacheConfig sizes the in-process LRU caches. Zero selects the built-in
// default; a negative value disables the cache.
type CacheConfig struct {
	// Tickets is the number of fetched tickets kept across resolutions.
	// Default: 4096
	Tickets int `yaml:"tickets"`

	// ETags is the number of API responses kept for conditional requests.
	// Default: 512
	ETags int `yaml:"etags"`
}

// Default returns the default configuration. File values are decoded on
// top of it, so a file only needs the fields it changes.
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL: "https://api.github.com",
		},
		Resolve: ResolveConfig{
			Concurrency:    8,
			MissingTickets: "fail",
		},
		Cache: CacheConfig{
			Tickets: 4096,
			ETags:   512,
		},
	}
}

// Load loads configuration from the file named by DEPCRAWL_CONFIG. Fails
// if the variable is not set; use [LoadFile] for an explicit path.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your depcrawl.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Unknown fields
// are errors, so a misspelled key does not silently fall back to its
// default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile decodes a single configuration file over the current config.
func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		// An empty file decodes to io.EOF; that is a valid config.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// github section.
func (c *Config) expandVariables() {
	c.GitHub.APIURL = expandVars(c.GitHub.APIURL)
	c.GitHub.Token = expandVars(c.GitHub.Token)
	c.GitHub.ClientID = expandVars(c.GitHub.ClientID)
	c.GitHub.ClientSecret = expandVars(c.GitHub.ClientSecret)
	c.GitHub.UserAgent = expandVars(c.GitHub.UserAgent)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.GitHub.APIURL != "" && !strings.HasPrefix(c.GitHub.APIURL, "https://") {
		errs = append(errs, fmt.Errorf("github.api_url must use https: %q", c.GitHub.APIURL))
	}

	hasClient := c.GitHub.ClientID != "" || c.GitHub.ClientSecret != ""
	if c.GitHub.Token != "" && hasClient {
		errs = append(errs, errors.New("github.token and github.client_id/client_secret are mutually exclusive"))
	}
	if hasClient && (c.GitHub.ClientID == "" || c.GitHub.ClientSecret == "") {
		errs = append(errs, errors.New("github.client_id and github.client_secret must be set together"))
	}

	if c.Resolve.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("resolve.concurrency must be at least 1, got %d", c.Resolve.Concurrency))
	}

	missingValues := []string{"fail", "leaf"}
	if !slices.Contains(missingValues, c.Resolve.MissingTickets) {
		errs = append(errs, fmt.Errorf("resolve.missing_tickets must be one of: %v", missingValues))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
