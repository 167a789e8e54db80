// Package config provides configuration loading and validation for pacbucket.
//
// The package handles YAML configuration files, environment variables, and
// CLI flags with automatic merging and validation using
// go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (PACBUCKET_ prefix)
//  4. CLI flags
//
// # Environment Variables
//
// All config keys map to environment variables with the PACBUCKET_ prefix:
//   - server.port → PACBUCKET_SERVER_PORT
//   - storage.s3.bucket → PACBUCKET_STORAGE_S3_BUCKET
//   - github.token → PACBUCKET_GITHUB_TOKEN
//
// Secrets (the S3 credentials and the GitHub token) are normally supplied
// through the environment rather than the config file.
package config
