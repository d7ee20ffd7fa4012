package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLookup(); err != nil {
		return err
	}
	if err := c.validateEditing(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateLookup() error {
	if c.Lookup.TimeoutSeconds <= 0 || c.Lookup.TimeoutSeconds > maxLookupTimeoutSeconds {
		return fmt.Errorf("lookup.timeout_seconds must be between 1 and %d", maxLookupTimeoutSeconds)
	}
	if c.Lookup.RequestsPerSecond <= 0 || c.Lookup.RequestsPerSecond > maxLookupRequestsPerSec {
		return fmt.Errorf("lookup.requests_per_second must be greater than 0 and at most %.0f", maxLookupRequestsPerSec)
	}
	if !c.Lookup.Enabled {
		return nil
	}
	parsed, err := url.Parse(c.Lookup.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("lookup.base_url %q must be an absolute URL", c.Lookup.BaseURL)
	}
	return nil
}

func (c *Config) validateEditing() error {
	switch c.Editing.SwitchPolicy {
	case SwitchPolicyCommit, SwitchPolicyCancel:
		return nil
	default:
		return fmt.Errorf("editing.switch_policy must be %q or %q, got %q", SwitchPolicyCommit, SwitchPolicyCancel, c.Editing.SwitchPolicy)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
