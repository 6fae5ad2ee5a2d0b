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
	"strings"

	"github.com/abcxyz/gencomplete/slices"
)

// renderBash renders a flat case statement keyed by the first level command.
// Bash has no description slot, so help text is dropped.
func renderBash(in *renderInput) map[string]string {
	opts := slices.Map(flagNames(in.root.Flags()), bashWord)

	names, cmds := subcommands(in.root)
	blocks := make([]string, 0, len(names))
	for _, name := range names {
		words := slices.Map(flagNames(cmds[name].Flags()), bashWord)
		blocks = append(blocks, caseBlock(name, `opts="`+strings.Join(words, " ")+`"`))
	}

	compdefs := make([]string, 0, len(in.prog))
	for _, alias := range in.prog {
		compdefs = append(compdefs, "complete -o default -F "+in.function+" "+alias)
	}

	return map[string]string{
		"opts":         strings.Join(opts, " "),
		"coms":         strings.Join(names, " "),
		"command_list": strings.Join(blocks, "\n\n"),
		"compdefs":     strings.Join(compdefs, "\n"),
	}
}

// bashWord escapes colons, which bash treats as word separators during
// completion. Root and command options are escaped alike.
func bashWord(name string) string {
	return strings.Trim(Describe(name, ""), `"`)
}
