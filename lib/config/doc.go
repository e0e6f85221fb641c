// Copyright 2026 The Lazynote Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for lazynote.
//
// Configuration is loaded from a single file specified by either the
// LAZYNOTE_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no ~/.config discovery and no
// automatic file search; when no file is named, the built-in defaults
// apply as-is.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${LAZYNOTE_ROOT}, and ${VAR:-default} patterns are
// expanded. No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Paths, Database, Log, Search
//   - [Default] -- returns a complete working default Config
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other lazynote packages.
package config
