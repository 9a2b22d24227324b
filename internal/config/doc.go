// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for jcheck's user
// configuration. The configuration is a YAML document named jcheck.yaml in
// the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/jcheck.yaml or $HOME/.config/jcheck.yaml
//   - macOS: $HOME/Library/Application Support/jcheck.yaml
//   - Windows: %AppData%/jcheck.yaml
//
// JCHECK_CFG_FILE overrides the location.
package config
