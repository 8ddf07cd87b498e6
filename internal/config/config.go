// Package config loads runtime settings from defaults, an optional YAML file,
// a .env file and SITECLASS_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"site-classifier/internal/crawler"
)

const envPrefix = "SITECLASS"

// Fetch engines.
const (
	EngineBrowser = "browser"
	EngineHTTP    = "http"
)

type Config struct {
	Browser BrowserConfig `mapstructure:"browser"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Output  OutputConfig  `mapstructure:"output"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Sites   []string      `mapstructure:"sites"`
}

type BrowserConfig struct {
	// Bin is the Chrome/Chromium executable. Empty means search the usual locations.
	Bin          string `mapstructure:"bin"`
	WindowWidth  int    `mapstructure:"window_width"`
	WindowHeight int    `mapstructure:"window_height"`
	UserAgent    string `mapstructure:"user_agent"`
}

type FetchConfig struct {
	Engine        string        `mapstructure:"engine"`
	ReadyTimeout  time.Duration `mapstructure:"ready_timeout"`
	ReadySelector string        `mapstructure:"ready_selector"`
	ScrollSettle  time.Duration `mapstructure:"scroll_settle"`
	MaxScrolls    int           `mapstructure:"max_scrolls"`
	// MaxBodyBytes caps responses for the http engine.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

type BatchConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type OutputConfig struct {
	CSV         string `mapstructure:"csv"`
	SQLite      string `mapstructure:"sqlite"`
	MetricsFile string `mapstructure:"metrics_file"`
	Table       bool   `mapstructure:"table"`
}

type LogConfig struct {
	Level       string   `mapstructure:"level"`
	OutputPaths []string `mapstructure:"output_paths"`
	Console     bool     `mapstructure:"console"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

func setDefaults(v *viper.Viper) {
	b := crawler.DefaultBrowserConfig()
	v.SetDefault("browser.bin", "")
	v.SetDefault("browser.window_width", b.WindowWidth)
	v.SetDefault("browser.window_height", b.WindowHeight)
	v.SetDefault("browser.user_agent", b.UserAgent)

	f := crawler.DefaultFetchConfig()
	v.SetDefault("fetch.engine", EngineBrowser)
	v.SetDefault("fetch.ready_timeout", f.ReadyTimeout)
	v.SetDefault("fetch.ready_selector", f.ReadySelector)
	v.SetDefault("fetch.scroll_settle", f.ScrollSettle)
	v.SetDefault("fetch.max_scrolls", f.MaxScrolls)
	v.SetDefault("fetch.max_body_bytes", 5*1024*1024)

	v.SetDefault("batch.delay", 3*time.Second)

	v.SetDefault("output.csv", "website_analysis.csv")
	v.SetDefault("output.sqlite", "")
	v.SetDefault("output.metrics_file", "")
	v.SetDefault("output.table", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_paths", []string{"stderr", "scraper.log"})
	v.SetDefault("log.console", false)

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("sites", append([]string(nil), DefaultSites...))
}

// Load reads configuration. An empty path looks for ./config.yaml and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the fetch protocol cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Fetch.Engine != EngineBrowser && c.Fetch.Engine != EngineHTTP {
		errs = append(errs, fmt.Errorf("fetch.engine must be %q or %q, got %q", EngineBrowser, EngineHTTP, c.Fetch.Engine))
	}
	if c.Fetch.ReadyTimeout <= 0 {
		errs = append(errs, errors.New("fetch.ready_timeout must be positive"))
	}
	if c.Fetch.ScrollSettle < 0 {
		errs = append(errs, errors.New("fetch.scroll_settle must not be negative"))
	}
	if c.Fetch.MaxScrolls < 0 {
		errs = append(errs, errors.New("fetch.max_scrolls must not be negative"))
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("fetch.max_body_bytes must be positive"))
	}
	if c.Batch.Delay < 0 {
		errs = append(errs, errors.New("batch.delay must not be negative"))
	}
	if c.Browser.WindowWidth <= 0 || c.Browser.WindowHeight <= 0 {
		errs = append(errs, errors.New("browser window size must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// CrawlerBrowser converts to the crawler's launch configuration.
func (c *Config) CrawlerBrowser() crawler.BrowserConfig {
	return crawler.BrowserConfig{
		Bin:          c.Browser.Bin,
		WindowWidth:  c.Browser.WindowWidth,
		WindowHeight: c.Browser.WindowHeight,
		UserAgent:    c.Browser.UserAgent,
	}
}

// CrawlerFetch converts to the crawler's fetch protocol timings.
func (c *Config) CrawlerFetch() crawler.FetchConfig {
	return crawler.FetchConfig{
		ReadyTimeout:  c.Fetch.ReadyTimeout,
		ReadySelector: c.Fetch.ReadySelector,
		ScrollSettle:  c.Fetch.ScrollSettle,
		MaxScrolls:    c.Fetch.MaxScrolls,
	}
}
