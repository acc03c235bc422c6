// Package config loads and validates the chronocalc YAML configuration.
//
// Load(path) parses the `calc:` section of config.yaml, fills missing
// fields with defaults, and validates structural constraints. Secrets
// (the shared auth token) are never stored in the file; the config holds
// the *name* of the environment variable and AuthConfig.Token() resolves
// it at call time.
//
// Watch(ctx, path, onChange) hot-reloads the file via fsnotify; a failed
// reload keeps the previous config active.
package config
