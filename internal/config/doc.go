// Package config loads, merges and validates configuration for the new-tab
// client and the reference sync server.
//
// Sources, highest priority first:
//  1. Command-line flags (pflag, usually bound to cobra persistent flags)
//  2. Environment variables
//  3. Config file (.json with comments, or .toml)
//  4. Built-in defaults
//
// Entry points are [GetClientConfig] and [GetServerConfig].
package config
