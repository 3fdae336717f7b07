// Package config handles configuration loading, parsing, and validation
// from environment variables (LMS_ prefix), an optional config.yaml and an
// optional .env file. Values are checked with struct validation tags before
// any component sees them.
package config
