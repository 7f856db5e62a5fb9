// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store opens the PostgreSQL connection pool described by the
// resolved configuration.
package store

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MKhiriev/go-hydra-config/internal/config"
	"github.com/MKhiriev/go-hydra-config/internal/logger"
)

// NewPoolConfig builds a pgxpool configuration from DATABASE_URL.
//
// MAX_POOL_SIZE and MIN_POOL_SIZE size the pool when they are positive;
// MinConns never exceeds MaxConns. A non-empty DATABASE_SCHEMA becomes the
// session search_path.
func NewPoolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	dsn := cfg.String(config.KeyDatabaseURL, "")
	if dsn == "" {
		return nil, ErrNoDatabaseURL
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDatabaseURL, err)
	}

	if n := cfg.Int(config.KeyMaxPoolSize, 0); n > 0 {
		poolCfg.MaxConns = clampInt32(n)
	}
	if n := cfg.Int(config.KeyMinPoolSize, 0); n > 0 {
		poolCfg.MinConns = min(clampInt32(n), poolCfg.MaxConns)
	}

	if schema := cfg.String(config.KeyDatabaseSchema, ""); schema != "" {
		poolCfg.ConnConfig.RuntimeParams["search_path"] = schema
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = cfg.String(config.KeyAppName, config.AppName)

	return poolCfg, nil
}

// NewPool creates the connection pool and pings the database once.
func NewPool(ctx context.Context, cfg *config.Config, log *logger.Logger) (*pgxpool.Pool, error) {
	if log == nil {
		log = logger.Nop()
	}

	poolCfg, err := NewPoolConfig(cfg)
	if err != nil {
		log.Err(err).Str("func", "NewPool").Msg("error building pool configuration")
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Err(err).Str("func", "NewPool").Msg("error creating connection pool")
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnect, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		log.Err(err).
			Str("func", "NewPool").
			Stringer("classification", Classify(err)).
			Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: %w", ErrDatabaseConnect, err)
	}

	log.Info().
		Str("func", "NewPool").
		Int32("max_conns", poolCfg.MaxConns).
		Int32("min_conns", poolCfg.MinConns).
		Msg("connected to database successfully")

	return pool, nil
}

func clampInt32(n int) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}
