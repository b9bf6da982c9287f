package buildinfo

import (
	"runtime/debug"
)

const revisionLength = 7

// Revision returns the short vcs revision the binary was built from, or an
// empty string when built outside a repository.
func Revision() string {
	rev := setting("vcs.revision")
	if len(rev) > revisionLength {
		return rev[:revisionLength]
	}
	return rev
}

// BuildTime returns the vcs commit timestamp of the build
func BuildTime() string {
	return setting("vcs.time")
}

func setting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
