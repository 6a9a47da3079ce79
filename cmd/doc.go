// Package cmd provides the command-line interface for sitecfg.
//
// This package implements all CLI commands using the Cobra framework.
//
// # Available Commands
//
//   - validate: Validate the resolved configuration or a single file
//   - config show: Show the resolved configuration as YAML or JSON
//   - config env: List the environment overrides
//   - export: Write the configuration as JSON, YAML or an ES module
//   - watch: Re-validate the config file on every save
//   - doctor: Diagnose configuration problems
//   - version: Show build information
//
// # Command Examples
//
//	// Fail a site build on any invalid field or warning
//	sitecfg validate --strict
//
//	// Generate the constants module imported by the theme
//	sitecfg export --format js --output src/consts.js
//
//	// Override a single field for a preview deployment
//	SITECFG_SITE_SITEURL=https://preview.example.com sitecfg export
package cmd
