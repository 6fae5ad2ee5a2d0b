// Copyright 2023 The Authors (see AUTHORS file)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package version reports the build information of gencomplete. The values
// can be overridden with -ldflags "-X".
package version

import (
	"runtime"
	"runtime/debug"
)

// ModulePath is the import path of this module.
const ModulePath = "github.com/abcxyz/gencomplete"

var (
	// Name is the name of the binary.
	Name = "gencomplete"

	// Version is the module version, "source" for local builds.
	Version = moduleVersion(debug.ReadBuildInfo)

	// Commit is the VCS revision, "HEAD" when unknown.
	Commit = commit(debug.ReadBuildInfo)

	// OSArch is the operating system and architecture, for example
	// "linux/amd64".
	OSArch = runtime.GOOS + "/" + runtime.GOARCH

	// HumanVersion is the version string printed by -version.
	HumanVersion = Name + " " + Version + " (" + Commit + ", " + OSArch + ")"
)

type readBuildInfoFunc func() (*debug.BuildInfo, bool)

// moduleVersion returns the version of this module. It is the main module when
// gencomplete itself is built, and a dependency when the completer package is
// embedded in another program.
func moduleVersion(read readBuildInfoFunc) string {
	info, ok := read()
	if !ok || info == nil {
		return "source"
	}

	if info.Main.Path == ModulePath {
		return nonEmpty(info.Main.Version)
	}
	for _, dep := range info.Deps {
		if dep == nil || dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil {
			return nonEmpty(dep.Replace.Version)
		}
		return nonEmpty(dep.Version)
	}
	return "source"
}

func commit(read readBuildInfoFunc) string {
	info, ok := read()
	if !ok || info == nil {
		return "HEAD"
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			return setting.Value
		}
	}
	return "HEAD"
}

func nonEmpty(v string) string {
	if v == "" || v == "(devel)" {
		return "source"
	}
	return v
}
