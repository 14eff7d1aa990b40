// Package pip wraps the package-manager collaborator: installing or
// upgrading the platform dependencies from a manifest file via the pip CLI.
package pip
