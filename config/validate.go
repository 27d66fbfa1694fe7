package config

import (
	"strings"

	"github.com/teranos/shufa/errors"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Gateway.Provider {
	case ProviderPassthrough, ProviderChat:
	default:
		return errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidConfig, "gateway.provider %q", c.Gateway.Provider),
			"use %q or %q", ProviderPassthrough, ProviderChat,
		)
	}

	if c.Gateway.TimeoutSeconds <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "gateway.timeout_seconds must be > 0, got %d", c.Gateway.TimeoutSeconds)
	}
	if c.Gateway.RequestsPerMinute <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "gateway.requests_per_minute must be > 0, got %d", c.Gateway.RequestsPerMinute)
	}
	if c.Gateway.Provider == ProviderChat && c.Gateway.BaseURL == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "gateway.base_url cannot be empty when provider is chat")
	}
	if c.REPL.Prompt == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "repl.prompt cannot be empty")
	}
	return nil
}

// IsExitWord reports whether input ends the REPL. Comparison ignores case.
func (c REPLConfig) IsExitWord(input string) bool {
	for _, w := range c.ExitWords {
		if strings.EqualFold(input, w) {
			return true
		}
	}
	return false
}
