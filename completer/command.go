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

// Package completer generates shell completion scripts from a program's command
// tree. A CLI object from a supported framework is first adapted into a
// uniform [Command] view, which is then rendered into a bash, zsh, fish or
// PowerShell script:
//
//	c, err := completer.New(rootCmd, completer.WithProg("my-tool"))
//	if err != nil {
//	  return err
//	}
//	script, err := c.Render(ctx, "zsh")
//
// Rendering is deterministic: the same tree, program names and invocation path
// always produce byte-identical output.
package completer

// Flag is a single option accepted by a command.
type Flag struct {
	// Name is the primary (longest) spelling of the option, including leading
	// dashes, for example "--file".
	Name string

	// Help is the description of the option. It may be empty.
	Help string
}

// Command is a read-only view over a command of some CLI framework.
// Implementations exist for cobra commands, this module's cli SDK and YAML
// manifests; any other framework only needs a new implementation.
type Command interface {
	// Flags returns the options accepted at this command level, excluding
	// positional arguments and hidden options. Names are unique.
	Flags() []Flag

	// Commands returns the visible subcommands keyed by name. Leaf commands
	// return an empty map.
	Commands() map[string]Command

	// Help returns the one-line description of the command, possibly empty.
	Help() string
}
