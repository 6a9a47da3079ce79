// Package config loads the site configuration using Viper for flexible
// configuration loading from files, environment variables, and command-line
// flags.
//
// Loading starts from the built-in dataset of the site package. A YAML config
// file (.sitecfg.yml by default) overlays it: scalar fields override one by
// one, a navigation block replaces the built-in navigation and keeps the
// order of its keys. Environment variables with the SITECFG_ prefix override
// single scalar fields last, e.g. SITECFG_SITE_TITLE or
// SITECFG_COPYRIGHT_TEXT.
//
// Loading fails fast: any invalid field aborts with an error naming every
// offending field, so a broken configuration never reaches a build.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/conneroisu/sitecfg/internal/site"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by the loader.
	EnvPrefix = "SITECFG"

	// ConfigFileEnv names a config file to use when --config is not given.
	ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"

	// DefaultConfigName is searched for in the working directory.
	DefaultConfigName = ".sitecfg"

	// DefaultConfigFile is the file written and read by default.
	DefaultConfigFile = DefaultConfigName + ".yml"
)

// override binds a Viper key to the site field it replaces.
type override struct {
	key   string
	apply func(s *site.Site, value string)
}

// overrides lists every scalar that can be set from the environment.
// Keys are lower-case because Viper folds case.
var overrides = []override{
	{"site.title", func(s *site.Site, v string) { s.Metadata.Title = v }},
	{"site.description", func(s *site.Site, v string) { s.Metadata.Description = v }},
	{"site.email", func(s *site.Site, v string) { s.Metadata.Email = v }},
	{"site.sitename", func(s *site.Site, v string) { s.Metadata.Name = v }},
	{"site.siteurl", func(s *site.Site, v string) { s.Metadata.URL = v }},
	{"site.lang", func(s *site.Site, v string) { s.Metadata.Lang = v }},
	{"site.author", func(s *site.Site, v string) { s.Metadata.Author = v }},
	{"copyright.url", func(s *site.Site, v string) { s.Copyright.URL = v }},
	{"copyright.text", func(s *site.Site, v string) { s.Copyright.Text = v }},
}

// OverrideKeys returns the Viper keys that override single site fields.
func OverrideKeys() []string {
	keys := make([]string, 0, len(overrides))
	for _, o := range overrides {
		keys = append(keys, o.key)
	}

	return keys
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Configure points v at the config file and enables environment overrides.
//
// File selection priority (highest to lowest):
//  1. cfgFile, normally the --config flag
//  2. the SITECFG_CONFIG_FILE environment variable
//  3. .sitecfg.yml (or .yaml) in the working directory
//
// A missing default file is not an error; a missing or unreadable explicit
// file is. The returned path is empty when no file is in use.
func Configure(v *viper.Viper, cfgFile string) (string, error) {
	explicit := true

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(ConfigFileEnv); envConfigFile != "" {
		v.SetConfigFile(envConfigFile)
	} else {
		explicit = false
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(DefaultConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return "", nil
		}

		return "", fmt.Errorf("failed to read config file: %w", err)
	}

	return v.ConfigFileUsed(), nil
}

// Load builds the registry from the global Viper instance.
func Load() (*site.Registry, error) {
	return LoadViper(viper.GetViper())
}

// LoadViper builds the registry from v. v must have been set up with
// Configure (or equivalent) beforehand.
func LoadViper(v *viper.Viper) (*site.Registry, error) {
	s, err := Resolve(v)
	if err != nil {
		return nil, err
	}

	registry, err := site.NewRegistry(s)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return registry, nil
}

// Resolve returns the merged but unvalidated site: built-in values, then the
// config file used by v, then environment overrides.
func Resolve(v *viper.Viper) (site.Site, error) {
	s := site.DefaultSite()

	if path := v.ConfigFileUsed(); path != "" {
		overlay, err := readOverlay(path)
		if err != nil {
			return site.Site{}, err
		}
		overlay.apply(&s)
	}

	for _, o := range overrides {
		if v.IsSet(o.key) {
			o.apply(&s, v.GetString(o.key))
		}
	}

	return s, nil
}
