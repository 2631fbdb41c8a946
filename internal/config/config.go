// Package config provides configuration loading for HeaderHunter.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (HEADERHUNTER_*) > config file (~/.headerhunter.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CypherHippie/HeaderHunter/internal/analyzer"
	"github.com/CypherHippie/HeaderHunter/internal/fetcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds all HeaderHunter configuration options.
type Config struct {
	URLFile         string        `mapstructure:"url_file" yaml:"url_file"`
	OutputFormat    string        `mapstructure:"output_format" yaml:"output_format"`
	Concurrency     int           `mapstructure:"concurrency" yaml:"concurrency"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MinDelay        time.Duration `mapstructure:"min_delay" yaml:"min_delay"`
	MaxDelay        time.Duration `mapstructure:"max_delay" yaml:"max_delay"`
	RateLimit       float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	Method          string        `mapstructure:"method" yaml:"method"`
	PriorityHeaders []string      `mapstructure:"priority_headers" yaml:"priority_headers"`
	Patterns        []string      `mapstructure:"patterns" yaml:"patterns"`
	UserAgents      []string      `mapstructure:"user_agents" yaml:"user_agents"`
	Dedupe          bool          `mapstructure:"dedupe" yaml:"dedupe"`
	MinSeverity     uint          `mapstructure:"min_severity" yaml:"min_severity"`
	ListenAddr      string        `mapstructure:"listen_addr" yaml:"listen_addr"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		OutputFormat:    "table",
		Concurrency:     10,
		Timeout:         10 * time.Second,
		MinDelay:        time.Second,
		MaxDelay:        5 * time.Second,
		Method:          "HEAD",
		PriorityHeaders: append([]string(nil), analyzer.DefaultPriorityHeaders...),
		Patterns:        append([]string(nil), analyzer.DefaultPatterns...),
		UserAgents:      append([]string(nil), fetcher.DefaultUserAgents...),
		ListenAddr:      ":3000",
	}
}

// Load reads configuration from ~/.headerhunter.yaml and environment variables.
// It does NOT apply CLI flag overrides; call ApplyFlags for that.
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName(".headerhunter")
	v.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return decode(v)
}

// ApplyFlags overrides config values with any CLI flags that were explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("url-file") {
		cfg.URLFile, _ = flags.GetString("url-file")
	}
	if flags.Changed("output") {
		cfg.OutputFormat, _ = flags.GetString("output")
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("min-delay") {
		cfg.MinDelay, _ = flags.GetDuration("min-delay")
	}
	if flags.Changed("max-delay") {
		cfg.MaxDelay, _ = flags.GetDuration("max-delay")
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit, _ = flags.GetFloat64("rate-limit")
	}
	if flags.Changed("method") {
		cfg.Method, _ = flags.GetString("method")
	}
	if flags.Changed("priority") {
		cfg.PriorityHeaders, _ = flags.GetStringSlice("priority")
	}
	if flags.Changed("pattern") {
		cfg.Patterns, _ = flags.GetStringArray("pattern")
	}
	if flags.Changed("dedupe") {
		cfg.Dedupe, _ = flags.GetBool("dedupe")
	}
	if flags.Changed("min-severity") {
		cfg.MinSeverity, _ = flags.GetUint("min-severity")
	}
	if flags.Changed("addr") {
		cfg.ListenAddr, _ = flags.GetString("addr")
	}
}

// AnalyzerOptions compiles the configured patterns. An invalid pattern
// is a configuration error and no options are returned.
func (c *Config) AnalyzerOptions() (analyzer.Options, error) {
	patterns, err := analyzer.CompilePatterns(c.Patterns)
	if err != nil {
		return analyzer.Options{}, fmt.Errorf("invalid exploit pattern: %w", err)
	}
	return analyzer.Options{
		PriorityNames: c.PriorityHeaders,
		Patterns:      patterns,
		Dedupe:        c.Dedupe,
	}, nil
}

// FetcherOptions returns the probe settings.
func (c *Config) FetcherOptions() fetcher.Options {
	return fetcher.Options{
		Method:     strings.ToUpper(c.Method),
		Timeout:    c.Timeout,
		UserAgents: c.UserAgents,
		MinDelay:   c.MinDelay,
		MaxDelay:   c.MaxDelay,
		RateLimit:  c.RateLimit,
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.MinDelay < 0 || c.MaxDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.MaxDelay < c.MinDelay {
		return fmt.Errorf("max_delay (%s) is shorter than min_delay (%s)", c.MaxDelay, c.MinDelay)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative")
	}
	switch strings.ToUpper(c.Method) {
	case "HEAD", "GET":
	default:
		return fmt.Errorf("unsupported method %q (supported: HEAD, GET)", c.Method)
	}
	return nil
}

// ConfigFilePath returns the default config file path (~/.headerhunter.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".headerhunter.yaml"
	}
	return filepath.Join(home, ".headerhunter.yaml")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("HEADERHUNTER")
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("url_file", d.URLFile)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("min_delay", d.MinDelay)
	v.SetDefault("max_delay", d.MaxDelay)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("method", d.Method)
	v.SetDefault("priority_headers", d.PriorityHeaders)
	v.SetDefault("patterns", d.Patterns)
	v.SetDefault("user_agents", d.UserAgents)
	v.SetDefault("dedupe", d.Dedupe)
	v.SetDefault("min_severity", d.MinSeverity)
	v.SetDefault("listen_addr", d.ListenAddr)
}
