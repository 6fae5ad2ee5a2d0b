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

package completer

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// renderZsh renders _describe arrays for the root options, the first level
// commands and the options of each command.
//
// Descriptions of global options come from a single table shared by every
// level. When a command declares an option with the same name as a global
// option, the help of the command option replaces the global one. Commands are
// visited in sorted order so the result is stable.
func renderZsh(in *renderInput) map[string]string {
	descriptions := make(map[string]string, 8)

	rootFlags := in.root.Flags()
	for _, f := range rootFlags {
		descriptions[f.Name] = f.Help
	}
	globals := flagNames(rootFlags)

	names, cmds := subcommands(in.root)
	coms := make([]string, 0, len(names))
	blocks := make([]string, 0, len(names))
	for _, name := range names {
		cmd := cmds[name]
		coms = append(coms, Describe(name, cmd.Help()))

		scoped := make(map[string]string, 8)
		for _, f := range cmd.Flags() {
			scoped[f.Name] = f.Help
			descriptions[f.Name] = f.Help
		}

		scopedNames := maps.Keys(scoped)
		sort.Strings(scopedNames)

		opts := make([]string, 0, len(scoped))
		for _, opt := range scopedNames {
			opts = append(opts, Describe(opt, scoped[opt]))
		}
		blocks = append(blocks, caseBlock(name, "opts=("+strings.Join(opts, " ")+")"))
	}

	opts := make([]string, 0, len(globals))
	for _, opt := range globals {
		opts = append(opts, Describe(opt, descriptions[opt]))
	}

	// The first name is bound by the #compdef header.
	var compdefs []string
	for _, alias := range in.prog[1:] {
		compdefs = append(compdefs, "compdef "+in.function+" "+alias)
	}

	return map[string]string{
		"opts":         strings.Join(opts, " "),
		"coms":         strings.Join(coms, " "),
		"command_list": strings.Join(blocks, "\n\n"),
		"compdefs":     strings.Join(compdefs, "\n"),
	}
}
