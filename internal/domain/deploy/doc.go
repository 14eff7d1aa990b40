// Package deploy contains core domain types for the deployment logic.
//
// It defines the service selection (with Known/UnknownWarned name variants),
// the ChangeSet derived from two commits, and the Record/Report types
// describing a completed run.
package deploy
