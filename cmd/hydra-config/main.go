// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command hydra-config resolves the crawler configuration from its layered
// sources and prints it, or checks what the configuration points at.
//
// Usage:
//
//	hydra-config [flags] show            print the resolved configuration as TOML
//	hydra-config [flags] get KEY         print a single value
//	hydra-config [flags] user-agent      print the full User-Agent
//	hydra-config [flags] check           exit non-zero if the configuration is invalid
//	hydra-config [flags] db              connect to DATABASE_URL and ping it
//	hydra-config [flags] probe URL...    HEAD each URL with the configured HTTP client
//	hydra-config version                 print build information
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"

	"github.com/MKhiriev/go-hydra-config/internal/adapter"
	"github.com/MKhiriev/go-hydra-config/internal/config"
	"github.com/MKhiriev/go-hydra-config/internal/environ"
	"github.com/MKhiriev/go-hydra-config/internal/logger"
	"github.com/MKhiriev/go-hydra-config/internal/store"
	"github.com/MKhiriev/go-hydra-config/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var errUsage = errors.New("usage: hydra-config [flags] show|get KEY|user-agent|check|db|probe URL...|version")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewLogger("hydra-config")
	if err := run(ctx, os.Args[1:], os.Stdout, environ.OS(), log); err != nil {
		log.Fatal().Err(err).Msg("hydra-config failed")
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, env environ.Environment, log *logger.Logger) error {
	flags, err := config.ParseFlags("hydra-config", args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(flags.Args) == 0 {
		return errUsage
	}

	command, rest := flags.Args[0], flags.Args[1:]
	if command == "version" {
		printBuildInfo(stdout)
		return nil
	}

	opts := flags.Options
	opts.Version = buildVersion

	cfg, err := config.Init(env, log, opts)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if len(flags.Overrides) > 0 {
		if err = cfg.Override(flags.Overrides.Typed(cfg)); err != nil {
			return fmt.Errorf("error applying overrides: %w", err)
		}
	}
	log = log.WithLevel(cfg.String(config.KeyLogLevel, ""))

	switch command {
	case "show":
		return cfg.Encode(stdout)
	case "get":
		if len(rest) != 1 {
			return errUsage
		}
		return printValue(stdout, cfg, rest[0])
	case "user-agent":
		_, err = fmt.Fprintln(stdout, cfg.UserAgentFull())
		return err
	case "check":
		_, err = fmt.Fprintf(stdout, "ok: %d keys, version %s\n", len(cfg.Keys()), cfg.String(config.KeyAppVersion, ""))
		return err
	case "db":
		pool, err := store.NewPool(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("%w (%s)", err, store.Classify(err))
		}
		defer pool.Close()
		_, err = fmt.Fprintf(stdout, "ok: database reachable, max %d connections\n", pool.Config().MaxConns)
		return err
	case "probe":
		if len(rest) == 0 {
			return errUsage
		}
		return probe(ctx, stdout, adapter.NewHTTPClient(cfg, log), cfg.Int(config.KeyBatchSize, 1), rest)
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
}

// probe checks urls concurrently, at most batchSize at a time, and prints one
// line per URL in argument order.
func probe(ctx context.Context, w io.Writer, client *adapter.HTTPClient, batchSize int, urls []string) error {
	statuses := make([]int, len(urls))
	errs := make([]error, len(urls))

	pool := workers.New(batchSize)
	for i, url := range urls {
		pool.Add(workers.Func(func(ctx context.Context) error {
			statuses[i], errs[i] = client.Probe(ctx, url)
			return nil
		}))
	}
	if err := pool.Run(ctx); err != nil {
		return err
	}

	for i, url := range urls {
		if statuses[i] == 0 {
			fmt.Fprintf(w, "ERR %s: %v\n", url, errs[i])
			continue
		}
		fmt.Fprintf(w, "%d %s\n", statuses[i], url)
	}

	return errors.Join(errs...)
}

func printValue(w io.Writer, cfg *config.Config, key string) error {
	value, ok := cfg.Lookup(key)
	if !ok {
		return fmt.Errorf("key %s is not configured", key)
	}

	if table, isTable := value.(map[string]any); isTable {
		return toml.NewEncoder(w).Encode(table)
	}

	_, err := fmt.Fprintln(w, value)
	return err
}

func printBuildInfo(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(buildVersion))
	fmt.Fprintf(w, "Build date: %s\n", orNA(buildDate))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(buildCommit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
