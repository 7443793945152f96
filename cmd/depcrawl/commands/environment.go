// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bureau-foundation/depcrawl/cmd/depcrawl/cli"
	"github.com/bureau-foundation/depcrawl/lib/config"
	"github.com/bureau-foundation/depcrawl/lib/depgraph"
	"github.com/bureau-foundation/depcrawl/lib/github"
	"github.com/bureau-foundation/depcrawl/lib/tracker"
)

// environment carries what every command shares: the process streams and
// the HTTP client API requests go through.
type environment struct {
	streams    cli.IO
	httpClient *http.Client
}

// connectionParams are the flags every networked command accepts.
type connectionParams struct {
	ConfigPath string `flag:"config" desc:"path to a depcrawl.yaml config file (default: $DEPCRAWL_CONFIG)"`
	LogLevel   string `flag:"log-level" desc:"log level: debug, info, warn, or error" default:"warn"`
	Token      string `flag:"token" desc:"GitHub token (overrides github.token)"`
	APIURL     string `flag:"api-url" desc:"GitHub REST API root (overrides github.api_url)"`
}

// logger builds the command's stderr logger.
func (env *environment) logger(command, level string) (*slog.Logger, error) {
	parsed, err := cli.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return cli.NewCommandLogger(env.streams.Err, parsed).With("command", command), nil
}

// loadConfig reads the config file named by --config, or by
// DEPCRAWL_CONFIG when the flag is absent. With neither, the defaults
// apply. Flag overrides are applied before validation.
func loadConfig(params connectionParams) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case params.ConfigPath != "":
		cfg, err = config.LoadFile(params.ConfigPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}

	if params.Token != "" {
		cfg.GitHub.Token = params.Token
		cfg.GitHub.ClientID = ""
		cfg.GitHub.ClientSecret = ""
	}
	if params.APIURL != "" {
		cfg.GitHub.APIURL = params.APIURL
	}
	return cfg, nil
}

// source builds the ticket source described by cfg: the GitHub tracker,
// wrapped in a ticket cache unless cache.tickets is negative.
func (env *environment) source(cfg *config.Config, logger *slog.Logger) (depgraph.Source, error) {
	client, err := github.NewClient(github.Config{
		BaseURL:       cfg.GitHub.APIURL,
		Token:         cfg.GitHub.Token,
		ClientID:      cfg.GitHub.ClientID,
		ClientSecret:  cfg.GitHub.ClientSecret,
		UserAgent:     cfg.GitHub.UserAgent,
		ETagCacheSize: cfg.Cache.ETags,
		HTTPClient:    env.httpClient,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	var source depgraph.Source = tracker.NewGitHub(client, logger)
	if cfg.Cache.Tickets < 0 {
		return source, nil
	}
	cached, err := tracker.NewCached(source, cfg.Cache.Tickets)
	if err != nil {
		return nil, fmt.Errorf("creating ticket cache: %w", err)
	}
	return cached, nil
}
