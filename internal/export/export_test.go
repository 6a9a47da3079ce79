package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/conneroisu/sitecfg/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"js", FormatJS, false},
		{" mjs ", FormatJS, false},
		{"toml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, ".json", FormatJSON.Extension())
	assert.Equal(t, ".yml", FormatYAML.Extension())
	assert.Equal(t, ".js", FormatJS.Extension())
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, site.DefaultSite(), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, buf.Len())
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, site.DefaultSite(), FormatJSON))

	out := buf.String()
	assert.Contains(t, out, `"siteUrl": "https://daily.borninsea.com"`)
	assert.Less(t, strings.Index(out, `"products"`), strings.Index(out, `"social"`))
	assert.Less(t, strings.Index(out, `"social"`), strings.Index(out, `"friends"`))

	var decoded site.Site
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.True(t, decoded.Equal(site.DefaultSite()), "JSON export reads back unchanged")
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, site.DefaultSite(), FormatYAML))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "site:\n"), out)
	assert.Contains(t, out, "siteName: daily.borninsea.com")
	assert.Contains(t, out, "lang: zh-CN")

	var decoded site.Site
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.True(t, decoded.Equal(site.DefaultSite()), "YAML export reads back unchanged")
}

func TestWrite_JS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, site.DefaultSite(), FormatJS))

	out := buf.String()
	for _, line := range []string{
		`export const SITE_TITLE = "Heisenberg Github Activity daily track";`,
		`export const SITE_DESCRIPTION = "海生在GitHub上的蛛丝马迹";`,
		`export const SITE_EMAIL = "admin@borninsea.com";`,
		`export const SITE_NAME = "daily.borninsea.com";`,
		`export const SITE_URL = "https://daily.borninsea.com";`,
		`export const SITE_LANG = "zh-CN";`,
		`export const SITE_AUTHOR = "Wanghaisheng";`,
		`export const COPYRIGHT_LINK = "https://borninsea.com";`,
		`export const COPYRIGHT_TEXT = "Made by Heisenberg";`,
	} {
		assert.Contains(t, out, line)
	}

	start := strings.Index(out, "export const NAV_LINKS = ")
	require.NotEqual(t, -1, start)
	end := strings.Index(out[start:], ";\n")
	require.NotEqual(t, -1, end)

	literal := strings.TrimPrefix(out[start:start+end], "export const NAV_LINKS = ")
	var nav site.Navigation
	require.NoError(t, json.Unmarshal([]byte(literal), &nav))
	assert.Equal(t, []string{site.SectionProducts, site.SectionSocial, site.SectionFriends}, nav.Keys())

	social, ok := nav.Get(site.SectionSocial)
	require.True(t, ok)
	assert.Equal(t, site.Link{Name: "Github", URL: "https://github.com/wanghaisheng"}, social.Links[1])
}

func TestWrite_JSEscapesStrings(t *testing.T) {
	s := site.DefaultSite()
	s.Metadata.Title = `Say "hi" </script>`
	s.Copyright.Text = "line\nbreak"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s, FormatJS))

	out := buf.String()
	assert.Contains(t, out, `export const SITE_TITLE = "Say \"hi\" \u003c/script\u003e";`)
	assert.Contains(t, out, `export const COPYRIGHT_TEXT = "line\nbreak";`)
	assert.NotContains(t, out, "</script>")
}
