// Package config loads service configuration from file, environment and flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Convert ConvertConfig
	HTTP    HTTPConfig
}

// AppConfig holds application-specific settings.
type AppConfig struct {
	Env  string // development, production
	Port string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// ConvertConfig holds conversion pipeline settings.
type ConvertConfig struct {
	WorkDir       string        // base directory for per-request scratch workspaces
	RenderTimeout time.Duration // headless browser render timeout
	OfficeTimeout time.Duration // LibreOffice conversion timeout
	BrowserBin    string        // pre-installed browser binary (empty = auto-download)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	MaxBodyBytes int64 // request body limit for conversion payloads
}

// Defaults returns the built-in configuration, before any file, environment
// or flag overrides.
func Defaults() *Config {
	return &Config{
		App: AppConfig{
			Env:  "development",
			Port: "8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stdout",
		},
		Convert: ConvertConfig{
			WorkDir:       "./files",
			RenderTimeout: 60 * time.Second,
			OfficeTimeout: 60 * time.Second,
		},
		HTTP: HTTPConfig{
			MaxBodyBytes: 1000 << 20, // matches the original 1000mb body limit
		},
	}
}

// Flags returns the pflag set recognized by the server binary.
// Flag values override file and environment values when set.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	fs.String("config", "", "path to config file")
	fs.String("app.port", "", "listen port")
	fs.String("app.env", "", "environment (development, production)")
	fs.String("log.level", "", "log level")
	fs.String("convert.work_dir", "", "scratch workspace base directory")
	return fs
}

// Load loads configuration with the following priority, highest first:
// flags, environment variables with HTML2PDF_ prefix, config file, defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Defaults()
	v.SetDefault("app.env", def.App.Env)
	v.SetDefault("app.port", def.App.Port)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.output", def.Log.Output)
	v.SetDefault("convert.work_dir", def.Convert.WorkDir)
	v.SetDefault("convert.render_timeout", def.Convert.RenderTimeout)
	v.SetDefault("convert.office_timeout", def.Convert.OfficeTimeout)
	v.SetDefault("convert.browser_bin", def.Convert.BrowserBin)
	v.SetDefault("http.max_body_bytes", def.HTTP.MaxBodyBytes)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			// Missing config file is fine, defaults and env vars apply.
		}
	}

	v.SetEnvPrefix("HTML2PDF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Convert: ConvertConfig{
			WorkDir:       v.GetString("convert.work_dir"),
			RenderTimeout: v.GetDuration("convert.render_timeout"),
			OfficeTimeout: v.GetDuration("convert.office_timeout"),
			BrowserBin:    v.GetString("convert.browser_bin"),
		},
		HTTP: HTTPConfig{
			MaxBodyBytes: v.GetInt64("http.max_body_bytes"),
		},
	}

	return cfg, nil
}
