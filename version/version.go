// Package version reports build information for the shufa binary.
package version

import (
	"fmt"
	"runtime"
)

// Build information. These variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/teranos/shufa/version.Version=v1.2.0 -X github.com/teranos/shufa/version.CommitHash=$(git rev-parse HEAD)"
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash     string `json:"commit_hash"`
	BuildTime      string `json:"build_time"`
	Version        string `json:"version"`
	DatasetVersion string `json:"dataset_version"`
	GoVersion      string `json:"go_version"`
	Platform       string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// WithDataset returns a copy of i reporting the loaded dataset version
func (i Info) WithDataset(v string) Info {
	i.DatasetVersion = v
	return i
}

// String returns a human-readable version string
func (i Info) String() string {
	s := fmt.Sprintf("shufa %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
	if i.DatasetVersion != "" {
		s += fmt.Sprintf(", dataset %s", i.DatasetVersion)
	}
	return s
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
