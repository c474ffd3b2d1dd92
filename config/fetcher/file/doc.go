// Package file reads configuration documents from the local filesystem.
//
// Only regular files are accepted: directories, sockets and devices are
// rejected with ErrNotRegularFile. IsRegular performs the same check
// without reading, which is what the config locator uses to probe
// candidate locations.
//
// The document is read once when the Fetcher is constructed; Fetch hands
// out copies of that snapshot.
//
//	fetcher, err := file.NewFetcher("/etc/lightbulbflow/config.yaml")()
//	if err != nil {
//	    // not found, permission denied, not a regular file, ...
//	}
//	data, _ := fetcher.Fetch()
package file
