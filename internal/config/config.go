// Package config resolves probe configuration from defaults, an optional
// YAML file, the environment, and command-line flags, in that order of
// precedence (flags win).
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the resolved probe configuration. It is built once per
// invocation and not mutated afterwards.
type Config struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Insecure bool   `yaml:"insecure"`

	// TimeoutSeconds is the overall probe budget. A fixed 1s margin is
	// subtracted for the HTTP deadline so the probe can still report
	// before the supervisor's own timeout fires.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	Warning  string `yaml:"warning"`
	Critical string `yaml:"critical"`
}

const (
	// DefaultTimeoutSeconds matches the usual supervisor plugin budget.
	DefaultTimeoutSeconds = 10

	// reportMargin is withheld from the HTTP deadline so a timed-out fetch
	// still leaves room to print an UNKNOWN line.
	reportMargin = 1 * time.Second
)

// Load reads configuration from a YAML file. A missing file is only an error
// when the path was explicitly given.
func Load(path string, explicit bool) (*Config, error) {
	cfg := &Config{TimeoutSeconds: DefaultTimeoutSeconds}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return cfg, nil
}

// ApplyEnv overlays ES_URL, ES_USERNAME and ES_PASSWORD from the
// environment onto cfg. Environment values win over file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ES_URL"); v != "" {
		c.URL = v
	}
	if v := os.Getenv("ES_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("ES_PASSWORD"); v != "" {
		c.Password = v
	}
}

// HTTPTimeout returns the per-request deadline: the probe budget minus the
// reporting margin, floored at one second.
func (c *Config) HTTPTimeout() time.Duration {
	d := time.Duration(c.TimeoutSeconds)*time.Second - reportMargin
	if d < time.Second {
		d = time.Second
	}
	return d
}

// ParseESURI parses an Elasticsearch URI and returns the base URL (without
// credentials), username, and password. Returns an error if the URI is
// invalid or has an unsupported scheme.
func ParseESURI(esURI string) (baseURL, username, password string, err error) {
	u, err := url.Parse(esURI)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid URI %q: %w", esURI, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", "", fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}

	if u.Hostname() == "" {
		return "", "", "", fmt.Errorf("invalid URI %q: host is required", esURI)
	}

	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
		// Credentials travel via Basic Auth, never inside the stored URL.
		u.User = nil
	}

	return u.String(), username, password, nil
}
