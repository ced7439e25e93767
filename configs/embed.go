// Package configs embeds the configuration file templates written by
// `verify-project config init`.
//
// Configuration hierarchy (see internal/config Load):
//  1. Hardcoded defaults
//  2. User config (~/.config/verify-project/config.yaml)
//  3. Project config (.verify-project.yaml)
//  4. Environment variables (VERIFY_PROJECT_*)
//  5. Command-line flags
package configs

import _ "embed"

// UserConfigTemplate is written to the user config path by `config init`.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is written to .verify-project.yaml by
// `config init --project`.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
