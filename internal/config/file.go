package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/conneroisu/sitecfg/internal/site"
	"github.com/conneroisu/sitecfg/internal/validation"
	"gopkg.in/yaml.v3"
)

// allowedExtensions are the config file types the loader reads.
var allowedExtensions = []string{".yml", ".yaml"}

// fileConfig is the on-disk shape. Pointers distinguish "absent" from
// "empty" so absent fields keep their built-in values.
type fileConfig struct {
	Site       *fileMetadata    `yaml:"site"`
	Navigation *site.Navigation `yaml:"navigation"`
	Copyright  *fileCopyright   `yaml:"copyright"`
}

type fileMetadata struct {
	Title       *string `yaml:"title"`
	Description *string `yaml:"description"`
	Email       *string `yaml:"email"`
	Name        *string `yaml:"siteName"`
	URL         *string `yaml:"siteUrl"`
	Lang        *string `yaml:"lang"`
	Author      *string `yaml:"author"`
}

type fileCopyright struct {
	URL  *string `yaml:"url"`
	Text *string `yaml:"text"`
}

// LoadFile reads a single config file on top of the built-in values and
// validates the result. The error is non-nil only when the file cannot be
// read or parsed; validation problems are reported in the result.
func LoadFile(path string) (site.Site, *site.ValidationResult, error) {
	overlay, err := readOverlay(path)
	if err != nil {
		return site.Site{}, nil, err
	}

	s := site.DefaultSite()
	overlay.apply(&s)

	return s, site.Validate(s), nil
}

// decode parses config file content. Unknown keys are rejected so typos
// fail the build instead of being ignored.
func decode(r io.Reader) (*fileConfig, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg fileConfig
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, err
	}

	return &cfg, nil
}

func readOverlay(path string) (*fileConfig, error) {
	if err := validation.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	if err := validation.ValidateFileExtension(path, allowedExtensions); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	cfg, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

func (f *fileConfig) apply(s *site.Site) {
	if m := f.Site; m != nil {
		setIf(&s.Metadata.Title, m.Title)
		setIf(&s.Metadata.Description, m.Description)
		setIf(&s.Metadata.Email, m.Email)
		setIf(&s.Metadata.Name, m.Name)
		setIf(&s.Metadata.URL, m.URL)
		setIf(&s.Metadata.Lang, m.Lang)
		setIf(&s.Metadata.Author, m.Author)
	}

	if f.Navigation != nil {
		s.Navigation = f.Navigation.Clone()
	}

	if c := f.Copyright; c != nil {
		setIf(&s.Copyright.URL, c.URL)
		setIf(&s.Copyright.Text, c.Text)
	}
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
