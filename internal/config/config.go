// Package config loads settings from defaults, a config file, PREFY_*
// environment variables and command-line flags, lowest to highest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyCatalogDB       = "catalog_db"
	KeyTemplatesDir    = "templates_dir"
	KeyDefaultTemplate = "default_template"
	KeyLogLevel        = "log_level"
	KeyLogConsole      = "log_console"
	KeyLogFile         = "log_file"

	envPrefix  = "PREFY"
	configName = "config"
)

// Config holds the resolved settings.
type Config struct {
	CatalogDB       string
	TemplatesDir    string
	DefaultTemplate string
	LogLevel        string
	LogConsole      bool
	LogFile         string
}

// stderrIsTerminal reports whether logs written to stderr reach a terminal.
var stderrIsTerminal = func() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DefaultConfig returns the settings used when nothing overrides them.
// Console logging is the default only when stderr is a terminal.
func DefaultConfig() Config {
	return Config{
		CatalogDB:       "~/.prefy/catalog.db",
		TemplatesDir:    "./configs",
		DefaultTemplate: "general_interests",
		LogLevel:        "warn",
		LogConsole:      stderrIsTerminal(),
	}
}

// flagNames maps config keys to their command-line flag.
var flagNames = map[string]string{
	KeyCatalogDB:    "catalog-db",
	KeyTemplatesDir: "templates-dir",
	KeyLogLevel:     "log-level",
	KeyLogFile:      "log-file",
}

// BindFlags registers the overridable settings on fs.
func BindFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String(flagNames[KeyCatalogDB], d.CatalogDB, "template catalog database path")
	fs.String(flagNames[KeyTemplatesDir], d.TemplatesDir, "directory of starter templates")
	fs.String(flagNames[KeyLogLevel], d.LogLevel, "log level (debug, info, warn, error)")
	fs.String(flagNames[KeyLogFile], d.LogFile, "append logs to this file instead of stderr")
}

// Load resolves the configuration. fs may be nil; flags are only bound when
// BindFlags registered them. searchPaths replaces the default config file
// locations ($PREFY_CONFIG_PATH, ~/.prefy, ./). A missing config file is
// not an error; an unreadable one is.
func Load(fs *pflag.FlagSet, searchPaths ...string) (Config, error) {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault(KeyCatalogDB, d.CatalogDB)
	v.SetDefault(KeyTemplatesDir, d.TemplatesDir)
	v.SetDefault(KeyDefaultTemplate, d.DefaultTemplate)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogConsole, d.LogConsole)
	v.SetDefault(KeyLogFile, d.LogFile)

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if len(searchPaths) == 0 {
		searchPaths = defaultSearchPaths()
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	if fs != nil {
		for key, name := range flagNames {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Config{
		TemplatesDir:    v.GetString(KeyTemplatesDir),
		DefaultTemplate: v.GetString(KeyDefaultTemplate),
		LogLevel:        v.GetString(KeyLogLevel),
		LogConsole:      v.GetBool(KeyLogConsole),
	}
	var err error
	if cfg.CatalogDB, err = expandPath(v.GetString(KeyCatalogDB)); err != nil {
		return Config{}, err
	}
	if cfg.TemplatesDir, err = expandPath(cfg.TemplatesDir); err != nil {
		return Config{}, err
	}
	if cfg.LogFile, err = expandPath(v.GetString(KeyLogFile)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaultSearchPaths() []string {
	var paths []string
	if override := os.Getenv(envPrefix + "_CONFIG_PATH"); override != "" {
		paths = append(paths, override)
	}
	if home, err := homedir.Dir(); err == nil {
		paths = append(paths, filepath.Join(home, ".prefy"))
	}
	return append(paths, "./")
}

func expandPath(p string) (string, error) {
	if p == "" || p == ":memory:" {
		return p, nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", p, err)
	}
	return expanded, nil
}
