// Package config builds the run configuration from environment variables and flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Defaults applied when neither a flag nor an environment variable is set.
const (
	DefaultOrganization = "ersiliaos"
	DefaultRegistryURL  = "https://hub.docker.com"
	DefaultFormat       = "csv"
	DefaultConcurrency  = 1
	DefaultTimeout      = 30 * time.Second
)

// Config holds everything a run needs. It is built once per process and passed
// explicitly to the gateways and use cases.
type Config struct {
	Username          string
	Password          string
	Organization      string
	RegistryURL       string
	SpreadsheetID     string
	SheetsCredentials string
	OutputDir         string
	Format            string
	Concurrency       int
	Timeout           time.Duration
}

// envBindings maps configuration keys to environment variables.
var envBindings = map[string]string{
	"username":           "USERNAME",
	"password":           "PASSWORD",
	"sheets-credentials": "GOOGLE_SHEETS_CREDS",
	"spreadsheet-id":     "SPREADSHEET_ID",
	"org":                "DOCKERHUB_ORG",
	"registry-url":       "DOCKERHUB_URL",
}

// Load reads the configuration from the environment and the given flags. Keys match
// flag names; an environment variable wins over a flag default, an explicitly set flag
// wins over both.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("org", DefaultOrganization)
	v.SetDefault("registry-url", DefaultRegistryURL)
	v.SetDefault("output-dir", ".")
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("timeout", DefaultTimeout)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	return &Config{
		Username:          v.GetString("username"),
		Password:          v.GetString("password"),
		Organization:      v.GetString("org"),
		RegistryURL:       v.GetString("registry-url"),
		SpreadsheetID:     v.GetString("spreadsheet-id"),
		SheetsCredentials: v.GetString("sheets-credentials"),
		OutputDir:         v.GetString("output-dir"),
		Format:            v.GetString("format"),
		Concurrency:       v.GetInt("concurrency"),
		Timeout:           v.GetDuration("timeout"),
	}, nil
}

// ValidateRegistry checks the settings needed to talk to the registry.
func (c *Config) ValidateRegistry() error {
	var errs []error
	if c.Username == "" {
		errs = append(errs, errors.New("USERNAME is not set"))
	}
	if c.Password == "" {
		errs = append(errs, errors.New("PASSWORD is not set"))
	}
	if c.Organization == "" {
		errs = append(errs, errors.New("organization is empty"))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	return errors.Join(errs...)
}

// ValidateSheets checks the settings needed to update the shared spreadsheet.
func (c *Config) ValidateSheets() error {
	var errs []error
	if c.SpreadsheetID == "" {
		errs = append(errs, errors.New("spreadsheet ID is not set (--spreadsheet-id or SPREADSHEET_ID)"))
	}
	if c.SheetsCredentials == "" {
		errs = append(errs, errors.New("GOOGLE_SHEETS_CREDS is not set"))
	}
	return errors.Join(errs...)
}

// DecodeCredentials unwraps the doubly encoded service account key: the variable holds
// a JSON string whose content is the key's JSON document.
func DecodeCredentials(raw string) ([]byte, error) {
	var inner string
	if err := json.Unmarshal([]byte(raw), &inner); err != nil {
		return nil, fmt.Errorf("GOOGLE_SHEETS_CREDS is not a JSON-encoded string: %w", err)
	}
	if !json.Valid([]byte(inner)) {
		return nil, errors.New("GOOGLE_SHEETS_CREDS does not contain a JSON document")
	}
	return []byte(inner), nil
}
