package site

import (
	"errors"
	"fmt"
)

// ErrInvalidSite wraps the validation errors of a rejected Site.
var ErrInvalidSite = errors.New("invalid site configuration")

// Registry serves a validated, immutable Site.
type Registry struct {
	site     Site
	warnings []ValidationError
}

// defaultRegistry is built eagerly so it is complete before the first read.
var defaultRegistry = MustNewRegistry(DefaultSite())

// Default returns the registry over the built-in dataset.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry validates s and freezes a copy of it. The returned error wraps
// ErrInvalidSite and lists every offending field.
func NewRegistry(s Site) (*Registry, error) {
	result := Validate(s)
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSite, err)
	}

	return &Registry{
		site:     s.Clone(),
		warnings: result.Warnings,
	}, nil
}

// MustNewRegistry is like NewRegistry but panics on an invalid site.
func MustNewRegistry(s Site) *Registry {
	r, err := NewRegistry(s)
	if err != nil {
		panic(err)
	}

	return r
}

// Metadata returns the site metadata.
func (r *Registry) Metadata() Metadata {
	return r.site.Metadata
}

// Navigation returns a copy of the navigation in display order.
func (r *Registry) Navigation() Navigation {
	return r.site.Navigation.Clone()
}

// Copyright returns the copyright line.
func (r *Registry) Copyright() Copyright {
	return r.site.Copyright
}

// Site returns a copy of the complete configuration.
func (r *Registry) Site() Site {
	return r.site.Clone()
}

// Warnings returns the non-fatal findings recorded when the registry was built.
func (r *Registry) Warnings() []ValidationError {
	warnings := make([]ValidationError, len(r.warnings))
	copy(warnings, r.warnings)

	return warnings
}
