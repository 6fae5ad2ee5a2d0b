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

var psEscaper = strings.NewReplacer("`", "``", `"`, "`\"", "$", "`$")

// renderPowerShell renders the options of each first level command as arms of
// a switch statement. PowerShell completion has no description slot.
func renderPowerShell(in *renderInput) map[string]string {
	names, cmds := subcommands(in.root)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "                "+psQuote(name)+
			" { $opts = @("+psList(flagNames(cmds[name].Flags()))+") }")
	}

	return map[string]string{
		"aliases":      psList(in.prog),
		"opts":         psList(flagNames(in.root.Flags())),
		"coms":         psList(names),
		"command_list": strings.Join(lines, "\n"),
	}
}

func psQuote(s string) string {
	return `"` + psEscaper.Replace(s) + `"`
}

func psList(items []string) string {
	return strings.Join(slices.Map(items, psQuote), ", ")
}
