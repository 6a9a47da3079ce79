package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conneroisu/sitecfg/internal/site"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `site:
  title: My Blog
  siteName: blog.example.com
  siteUrl: https://blog.example.com
  lang: en-US
navigation:
  links:
    title: Links
    links:
      - name: Home
        url: /
      - name: Source
        url: https://github.com/example/blog
  about:
    title: About
    links:
      - name: Me
        url: /about
copyright:
  text: Made by Example
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "site.yml", sampleConfig)

	s, result, err := LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Valid, result.String())

	defaults := site.DefaultSite()

	assert.Equal(t, "My Blog", s.Metadata.Title)
	assert.Equal(t, "blog.example.com", s.Metadata.Name)
	assert.Equal(t, "en-US", s.Metadata.Lang)
	assert.Equal(t, defaults.Metadata.Email, s.Metadata.Email, "absent fields keep built-in values")
	assert.Equal(t, defaults.Metadata.Author, s.Metadata.Author)

	assert.Equal(t, []string{"links", "about"}, s.Navigation.Keys(), "file order is kept")
	links, ok := s.Navigation.Get("links")
	require.True(t, ok)
	assert.Equal(t, "Links", links.Title)
	assert.Equal(t, site.Link{Name: "Source", URL: "https://github.com/example/blog"}, links.Links[1])

	_, ok = s.Navigation.Get(site.SectionSocial)
	assert.False(t, ok, "a navigation block replaces the built-in sections")

	assert.Equal(t, "Made by Example", s.Copyright.Text)
	assert.Equal(t, defaults.Copyright.URL, s.Copyright.URL)
}

func TestLoadFile_EmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "empty.yaml", "")

	s, result, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.True(t, s.Equal(site.DefaultSite()))
}

func TestLoadFile_ReportsInvalidFields(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "bad.yml", `site:
  email: not-an-email
  siteUrl: ftp://example.com
`)

	_, result, err := LoadFile(path)
	require.NoError(t, err, "validation problems are not read errors")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Fields(), "site.email")
	assert.Contains(t, result.Fields(), "site.siteUrl")
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{
			name:    "unknown top-level key",
			path:    writeConfig(t, dir, "unknown.yml", "theme: dark\n"),
			wantErr: "theme",
		},
		{
			name:    "unknown site key",
			path:    writeConfig(t, dir, "typo.yml", "site:\n  titel: x\n"),
			wantErr: "titel",
		},
		{
			name:    "unknown section field",
			path:    writeConfig(t, dir, "section.yml", "navigation:\n  a:\n    title: A\n    icon: x\n"),
			wantErr: "icon",
		},
		{
			name:    "duplicate section",
			path:    writeConfig(t, dir, "dup.yml", "navigation:\n  a:\n    title: A\n  a:\n    title: B\n"),
			wantErr: "duplicate navigation section",
		},
		{
			name:    "navigation is a list",
			path:    writeConfig(t, dir, "list.yml", "navigation:\n  - a\n"),
			wantErr: "navigation",
		},
		{
			name:    "wrong extension",
			path:    writeConfig(t, dir, "site.toml", "title = 'x'\n"),
			wantErr: "not allowed",
		},
		{
			name:    "missing file",
			path:    filepath.Join(dir, "missing.yml"),
			wantErr: "error reading config file",
		},
		{
			name:    "path traversal",
			path:    "../outside.yml",
			wantErr: "path traversal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadFile(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigure_ExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "site.yml", sampleConfig)

	v := viper.New()
	used, err := Configure(v, path)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	registry, err := LoadViper(v)
	require.NoError(t, err)
	assert.Equal(t, "My Blog", registry.Metadata().Title)
	assert.Equal(t, []string{"links", "about"}, registry.Navigation().Keys())
}

func TestConfigure_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	_, err := Configure(v, filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfigure_EnvConfigFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "env.yml", "site:\n  author: Env Author\n")
	t.Setenv(ConfigFileEnv, path)

	v := viper.New()
	used, err := Configure(v, "")
	require.NoError(t, err)
	assert.Equal(t, path, used)

	registry, err := LoadViper(v)
	require.NoError(t, err)
	assert.Equal(t, "Env Author", registry.Metadata().Author)
}

func TestConfigure_NoDefaultFile(t *testing.T) {
	chdir(t, t.TempDir())

	v := viper.New()
	used, err := Configure(v, "")
	require.NoError(t, err)
	assert.Empty(t, used)

	registry, err := LoadViper(v)
	require.NoError(t, err)
	assert.True(t, registry.Site().Equal(site.DefaultSite()))
}

func TestConfigure_DefaultFileDiscovered(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, DefaultConfigFile, "copyright:\n  text: Found it\n")
	chdir(t, dir)

	v := viper.New()
	used, err := Configure(v, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, filepath.Base(used))

	registry, err := LoadViper(v)
	require.NoError(t, err)
	assert.Equal(t, "Found it", registry.Copyright().Text)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "site.yml", sampleConfig)
	t.Setenv("SITECFG_SITE_TITLE", "From Env")
	t.Setenv("SITECFG_COPYRIGHT_URL", "https://example.org")

	v := viper.New()
	_, err := Configure(v, path)
	require.NoError(t, err)

	registry, err := LoadViper(v)
	require.NoError(t, err)
	assert.Equal(t, "From Env", registry.Metadata().Title, "environment beats the file")
	assert.Equal(t, "https://example.org", registry.Copyright().URL)
	assert.Equal(t, "blog.example.com", registry.Metadata().Name)
}

func TestLoadViper_InvalidNamesEveryField(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SITECFG_SITE_EMAIL", "nobody")
	t.Setenv("SITECFG_SITE_LANG", "not a tag")

	v := viper.New()
	_, err := Configure(v, "")
	require.NoError(t, err)

	registry, err := LoadViper(v)
	require.Error(t, err)
	assert.Nil(t, registry)
	assert.ErrorIs(t, err, site.ErrInvalidSite)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "site.email")
	assert.Contains(t, err.Error(), "site.lang")
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "SITECFG_SITE_TITLE", EnvName("site.title"))
	assert.Equal(t, "SITECFG_SITE_SITEURL", EnvName("site.siteurl"))
	assert.Equal(t, "SITECFG_COPYRIGHT_TEXT", EnvName("copyright.text"))
}

func TestOverrideKeys(t *testing.T) {
	keys := OverrideKeys()
	assert.Len(t, keys, 9)
	for _, key := range keys {
		assert.Equal(t, strings.ToLower(key), key, "viper keys are lower-case")
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}
