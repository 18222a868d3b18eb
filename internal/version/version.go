package version

import "runtime/debug"

// Version is stamped at build time via -ldflags. When built with
// go install it falls back to the module version from build info.
var Version = "dev"

func init() {
	if Version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
}
