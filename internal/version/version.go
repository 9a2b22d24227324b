// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other jcheck packages to avoid import cycles.

package version

import "runtime/debug"

// Name is the binary name used in help output and file locations.
const Name = "jcheck"

// Version is the module version stamped by the Go toolchain, or "dev".
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// String renders the "<name> <version>" banner.
func String() string {
	return Name + " " + Version
}
