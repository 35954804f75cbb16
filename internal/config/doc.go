// Package config provides configuration loading and validation for the
// speechkit command line tool. It handles YAML-based configuration with
// per-section struct validation and supplies the defaults used when no
// config file is given.
package config
