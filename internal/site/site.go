// Package site holds the site configuration registry of a blog theme: the
// site metadata used for page titles and meta tags, the grouped navigation
// links rendered in menus, and the footer copyright.
//
// A Registry is built once from a Site, validated, and never mutated
// afterwards. Every accessor returns a copy, so any number of goroutines
// (templating workers, page generators, request handlers) may read from the
// same Registry without locking.
//
// The built-in dataset is available through Default. Loading overrides from
// files and environment variables lives in the config package.
package site

import "slices"

// Metadata describes the site for branding and SEO.
type Metadata struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Email       string `yaml:"email" json:"email"`
	// Name is the canonical site name, normally the host of URL.
	Name string `yaml:"siteName" json:"siteName"`
	// URL is the canonical absolute site URL including the scheme.
	URL string `yaml:"siteUrl" json:"siteUrl"`
	// Lang is a BCP 47 language tag such as "zh-CN".
	Lang string `yaml:"lang" json:"lang"`
	// Author is used only when a page does not name its own author; an
	// author set in a post's front matter takes precedence.
	Author string `yaml:"author" json:"author"`
}

// Link is one clickable navigation entry.
type Link struct {
	Name string `yaml:"name" json:"name"`
	// URL is either an absolute http(s) URL or a path starting with "/".
	URL string `yaml:"url" json:"url"`
}

// Section is a named group of links. The order of Links is the menu order.
type Section struct {
	Key   string `yaml:"-" json:"-"`
	Title string `yaml:"title" json:"title"`
	Links []Link `yaml:"links" json:"links"`
}

// Copyright is the footer copyright line.
type Copyright struct {
	URL  string `yaml:"url" json:"url"`
	Text string `yaml:"text" json:"text"`
}

// Site is the complete configuration served by a Registry.
type Site struct {
	Metadata   Metadata   `yaml:"site" json:"site"`
	Navigation Navigation `yaml:"navigation" json:"navigation"`
	Copyright  Copyright  `yaml:"copyright" json:"copyright"`
}

// Clone returns a deep copy of s.
func (s Site) Clone() Site {
	return Site{
		Metadata:   s.Metadata,
		Navigation: s.Navigation.Clone(),
		Copyright:  s.Copyright,
	}
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	return Section{
		Key:   s.Key,
		Title: s.Title,
		Links: slices.Clone(s.Links),
	}
}

// Equal reports whether two sites hold the same values in the same order.
func (s Site) Equal(other Site) bool {
	return s.Metadata == other.Metadata &&
		s.Copyright == other.Copyright &&
		s.Navigation.Equal(other.Navigation)
}
