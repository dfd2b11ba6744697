package model

import "time"

// RemotePackage is a reference to a package in the online library: the
// entry name plus a direct-download locator. Bodies are fetched separately.
type RemotePackage struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

// InstalledPackage describes the result of a completed install.
type InstalledPackage struct {
	Name           string    // sample name the library resolves (title without extension)
	Title          string    // display title from the descriptor
	AudioPath      string    // installed audio payload
	DescriptorPath string    // canonical sidecar written next to the payload
	InstalledAt    time.Time // when the install finished
}
