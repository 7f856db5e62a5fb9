// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound HTTP client used to reach remote
// resources. The client is built from a resolved [config.Config]: it sends the
// full user agent, honours REQUEST_TIMEOUT and HTTP_RETRIES, and refuses URLs
// that EXCLUDED_DOMAINS or ALLOWED_SCHEMES rule out.
//
// Status codes are mapped to the sentinel errors in errors.go so that callers
// can use [errors.Is] (e.g. [ErrNotFound] for 404 and 410).
package adapter

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-hydra-config/internal/config"
	"github.com/MKhiriev/go-hydra-config/internal/logger"
)

const (
	defaultTimeout   = 15 * time.Second
	retryWaitTime    = 200 * time.Millisecond
	retryMaxWaitTime = 5 * time.Second
)

// HTTPClient is a wrapper around resty.Client configured from the resolved
// configuration. It embeds *resty.Client to expose all of its methods.
type HTTPClient struct {
	*resty.Client

	excludedDomains []string
	allowedSchemes  []string
}

// NewHTTPClient creates an HTTPClient whose every request carries the
// User-Agent returned by [config.Config.UserAgentFull].
//
// Each call returns an independent client; later configuration overrides are
// not picked up by clients that already exist.
func NewHTTPClient(cfg *config.Config, log *logger.Logger) *HTTPClient {
	if log == nil {
		log = logger.Nop()
	}

	c := &HTTPClient{
		excludedDomains: lowerAll(cfg.Strings(config.KeyExcludedDomains)),
		allowedSchemes:  lowerAll(cfg.Strings(config.KeyAllowedSchemes)),
	}

	retries := max(cfg.Int(config.KeyHTTPRetries, 0), 0)

	c.Client = resty.New().
		SetLogger(restyLogger{log: log}).
		SetHeader("User-Agent", cfg.UserAgentFull()).
		SetTimeout(cfg.Duration(config.KeyRequestTimeout, defaultTimeout)).
		SetRetryCount(retries).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(retryable).
		SetPreRequestHook(c.checkURL)

	return c
}

// Probe issues a HEAD request to url and returns the final status code. A
// non-2xx/3xx status is reported as a mapped error alongside the code.
func (c *HTTPClient) Probe(ctx context.Context, url string) (int, error) {
	resp, err := c.R().SetContext(ctx).Head(url)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", url, err)
	}

	return resp.StatusCode(), mapHTTPError(resp)
}

func (c *HTTPClient) checkURL(_ *resty.Client, req *http.Request) error {
	scheme := strings.ToLower(req.URL.Scheme)
	if len(c.allowedSchemes) > 0 && !slices.Contains(c.allowedSchemes, scheme) {
		return fmt.Errorf("%w: scheme %q", ErrURLNotAllowed, scheme)
	}

	host := strings.ToLower(req.URL.Hostname())
	for _, domain := range c.excludedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return fmt.Errorf("%w: domain %q is excluded", ErrURLNotAllowed, host)
		}
	}

	return nil
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// restyLogger routes resty's internal messages to zerolog.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error().Str("component", "http").Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn().Str("component", "http").Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug().Str("component", "http").Msgf(format, v...)
}
