// Package config defines the harness configuration: where the services under
// test live, which credentials to use, the test data for the standard
// scenarios, and the timing bounds the contract imposes.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Credentials is an email/password pair for one of the test users.
type Credentials struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// TestData holds the canned inputs used by the standard scenarios.
type TestData struct {
	ValidQuestion   string `yaml:"validQuestion"`
	ValidCompany    string `yaml:"validCompany"`
	UnicodeQuestion string `yaml:"unicodeQuestion"`
	UnicodeCompany  string `yaml:"unicodeCompany"`
}

// Config is the full harness configuration. All fields have defaults; a YAML
// file given with -config overrides them, and the -url/-aiml-url flags
// override the URLs in turn.
type Config struct {
	// BaseURL is where the job-queue API lives.
	BaseURL string `yaml:"baseUrl"`
	// AIMLURL is where the downstream answer service lives. It is a separate
	// service boundary and may be a different address; when neither the file
	// nor the -aiml-url flag sets it, ApplyURLOverrides falls back to BaseURL.
	AIMLURL string `yaml:"aimlUrl"`

	Analyst Credentials `yaml:"analyst"`
	Admin   Credentials `yaml:"admin"`

	TestData TestData `yaml:"testData"`

	// PollIntervalMS is the delay between job-status polls.
	PollIntervalMS int `yaml:"pollIntervalMs"`
	// PollTimeoutMS bounds the total wall-clock time spent waiting for a job
	// to reach a terminal status.
	PollTimeoutMS int `yaml:"pollTimeoutMs"`
	// StartupTimeoutMS bounds the initial wait for the service to respond.
	StartupTimeoutMS int `yaml:"startupTimeoutMs"`

	// SubmitLatencyBoundMS and StatusLatencyBoundMS are the per-request
	// response-time requirements asserted by the performance tests.
	SubmitLatencyBoundMS int `yaml:"submitLatencyBoundMs"`
	StatusLatencyBoundMS int `yaml:"statusLatencyBoundMs"`
}

// Default returns the configuration used when no file is given. The
// credentials and test data match the standard seed data for the service.
func Default() Config {
	return Config{
		BaseURL: "http://localhost:3001",
		Analyst: Credentials{Email: "analyst@test.com", Password: "TestPass123!"},
		Admin:   Credentials{Email: "admin@test.com", Password: "AdminPass123!"},
		TestData: TestData{
			ValidQuestion:   "What are the Scope 1 emissions for this company?",
			ValidCompany:    "Nokia",
			UnicodeQuestion: "What are 中国公司's sustainability practices?",
			UnicodeCompany:  "中国移动",
		},
		PollIntervalMS:       1000,
		PollTimeoutMS:        30000,
		StartupTimeoutMS:     10000,
		SubmitLatencyBoundMS: 500,
		StatusLatencyBoundMS: 200,
	}
}

// Load reads a YAML configuration file and overlays it on the defaults.
// An empty path returns the defaults unchanged. The AIML URL fallback is not
// resolved here; call ApplyURLOverrides after any command-line overrides.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	return c, c.validate()
}

// ApplyURLOverrides applies the -url and -aiml-url command-line values on top
// of the loaded configuration, then resolves the AIML URL fallback. An aimlUrl
// set in the config file survives a -url override; -aiml-url always wins.
func (c *Config) ApplyURLOverrides(baseURL, aimlURL string) {
	if baseURL != "" {
		c.BaseURL = baseURL
	}
	if aimlURL != "" {
		c.AIMLURL = aimlURL
	}
	if c.AIMLURL == "" {
		c.AIMLURL = c.BaseURL
	}
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("baseUrl must not be empty")
	}
	if c.PollIntervalMS <= 0 || c.PollTimeoutMS <= 0 {
		return fmt.Errorf("poll interval and timeout must be positive")
	}
	return nil
}

func (c Config) PollInterval() time.Duration     { return time.Duration(c.PollIntervalMS) * time.Millisecond }
func (c Config) PollTimeout() time.Duration      { return time.Duration(c.PollTimeoutMS) * time.Millisecond }
func (c Config) StartupTimeout() time.Duration   { return time.Duration(c.StartupTimeoutMS) * time.Millisecond }
func (c Config) SubmitLatencyBound() time.Duration {
	return time.Duration(c.SubmitLatencyBoundMS) * time.Millisecond
}
func (c Config) StatusLatencyBound() time.Duration {
	return time.Duration(c.StatusLatencyBoundMS) * time.Millisecond
}

// LongQuestion returns a question comfortably past the 10,000-character limit.
func (c Config) LongQuestion() string {
	return strings.Repeat("This is a very long question ", 400) // ~11,600 chars
}

// BoundaryQuestion returns a question of exactly the given length.
func (c Config) BoundaryQuestion(length int) string {
	return strings.Repeat("q", length)
}
