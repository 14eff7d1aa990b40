// Package config defines deployment settings used by the deploy binary and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the install root, the mainline remote and branch,
// the dependency manifest, the canonical service list and the state paths.
package config
