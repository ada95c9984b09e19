// Package configs embeds the configuration template written by `wiki init`.
//
// The template documents every key of internal/config.Config with its
// default value. Edit wiki.example.yaml and rebuild to change it.
package configs

import _ "embed"

// ProjectConfigTemplate is written to .wiki.yaml by `wiki init`.
//
//go:embed wiki.example.yaml
var ProjectConfigTemplate string
