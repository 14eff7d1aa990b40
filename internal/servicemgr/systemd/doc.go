// Package systemd wraps the service-manager collaborator: reloading unit
// definitions, restarting named units, querying active state and fetching
// status detail via the systemctl CLI.
package systemd
