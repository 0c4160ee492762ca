// Package config defines the application's configuration structure and
// loading logic. Configuration comes from environment variables (TRACKER_
// prefix) and an optional YAML file, with env vars taking precedence, and
// is validated before use.
package config
