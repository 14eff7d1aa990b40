// Package marker implements persistence for the deployed-commit marker.
//
// The FileRepository stores and loads the last successfully deployed commit
// as a plain-text file and exposes a Repository interface that the deployer
// service depends on.
package marker
