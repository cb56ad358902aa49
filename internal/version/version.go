// Package version reports the railskit build version.
package version

import (
	"regexp"
	"runtime/debug"
	"strings"
)

// Info is the subset of build metadata railskit prints.
type Info struct {
	Version  string
	Revision string
	Modified bool
}

// pseudoVersion matches Go module pseudo-versions such as
// v0.0.0-20250716020515-7a30fe114040 and v1.2.4-0.20250716020515-7a30fe114040.
var pseudoVersion = regexp.MustCompile(`-(?:[0-9A-Za-z.]+\.)?\d{14}-[0-9a-f]{12}$`)

// Read extracts Info from the running binary.
func Read() Info {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}
	}
	info := Info{Version: bi.Main.Version}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// Release reports whether the version names a tagged, clean release.
func (i Info) Release() bool {
	v := i.Version
	if v == "" || v == "(devel)" || strings.Contains(v, "+dirty") {
		return false
	}
	v, _, _ = strings.Cut(v, "+")
	return !pseudoVersion.MatchString(v)
}

// String renders a release version as-is. Development builds render as
// "(devel)", with the short revision when the binary carries one.
func (i Info) String() string {
	if i.Release() {
		return i.Version
	}
	if i.Revision == "" {
		return "(devel)"
	}
	rev := i.Revision
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if i.Modified {
		rev += "-dirty"
	}
	return "(devel " + rev + ")"
}

func String() string {
	return Read().String()
}
