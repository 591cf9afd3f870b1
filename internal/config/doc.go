// Package config manages user-level settings stored at ~/.pop/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default token symbol used by "pop new parachain".
package config
