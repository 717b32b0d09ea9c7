// Package files provides the file system operations of a batch run.
//
// Discovery lists raw exports in a data folder by exact extension match,
// sorted by file name. Manager creates the results folder.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.DataDir)
//	raw, err := discovery.FindRawFiles(".", ".CSV")
package files
