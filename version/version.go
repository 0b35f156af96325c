// Package version reports which xmldoc build is running.
//
// Release builds stamp the variables below:
//
//	go build -ldflags "-X github.com/teranos/xmldoc/version.Version=v0.4.0 \
//	    -X github.com/teranos/xmldoc/version.CommitHash=$(git rev-parse HEAD) \
//	    -X github.com/teranos/xmldoc/version.BuildTime=$(date -u +%FT%TZ)" ./cmd/xmldoc
//
// Binaries from `go install github.com/teranos/xmldoc/cmd/xmldoc@version` carry
// no ldflags; their module version and VCS stamp are read from the build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unset = "dev"

// Set by ldflags.
var (
	Version    = unset
	CommitHash = unset
	BuildTime  = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version    string `json:"version" yaml:"version"`
	CommitHash string `json:"commit_hash" yaml:"commit_hash"`
	BuildTime  string `json:"build_time" yaml:"build_time"`
	// Modified is set when the binary was built from a dirty work tree.
	Modified  bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the stamped build information, filling unset fields from the
// module build info when it is available.
func Get() Info {
	info := Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = fill(info, bi)
	}
	return info
}

// fill copies what bi knows into the fields ldflags left unset.
func fill(info Info, bi *debug.BuildInfo) Info {
	if info.Version == unset && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.CommitHash == unset {
				info.CommitHash = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func (i Info) String() string {
	commit := i.Short()
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("xmldoc %s (commit %s, built %s)", i.Version, commit, i.BuildTime)
}

// Short is the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
