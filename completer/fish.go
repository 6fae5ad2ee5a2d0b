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
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var invalidFishVarChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// renderFish renders one completion rule per command and option. It is the
// only dialect that descends below the first command level.
func renderFish(in *renderInput) map[string]string {
	rootFlags := sortedFlags(in.root.Flags())

	opts := make([]string, 0, len(rootFlags))
	for _, f := range rootFlags {
		opts = append(opts, fmt.Sprintf("complete -c %s -n '__fish%s_no_subcommand' %s -d %s",
			in.scriptName, in.function, fishOption(f.Name), fishQuote(f.Help)))
	}

	names, cmds := subcommands(in.root)
	var lines []string
	for i, name := range names {
		lines = fishCommand(lines, in, name, cmds[name], nil)
		if i < len(names)-1 {
			lines = append(lines, "")
		}
	}

	return map[string]string{
		"cmds_names": strings.Join(names, " "),
		"opts":       strings.Join(opts, "\n"),
		"cmds":       strings.Join(lines, "\n"),
	}
}

// fishCommand appends the rules for cmd, reached through parents, and then
// recurses into its subcommands.
func fishCommand(lines []string, in *renderInput, name string, cmd Command, parents []string) []string {
	path := make([]string, 0, len(parents)+1)
	path = append(path, parents...)
	path = append(path, name)

	lines = append(lines, "# "+strings.Join(path, " "))

	seen := make([]string, 0, len(parents))
	for _, p := range parents {
		seen = append(seen, "__fish_seen_subcommand_from "+p)
	}
	seeParents := strings.Join(seen, "; and ")

	if len(parents) == 0 {
		lines = append(lines, fmt.Sprintf("complete -c %s -f -n '__fish%s_no_subcommand' -a %s -d %s",
			in.scriptName, in.function, name, fishQuote(cmd.Help())))
	} else {
		lines = append(lines, fmt.Sprintf("complete -c %s -f -n '%s; and not __fish_seen_subcommand_from $%s' -a %s -d %s",
			in.scriptName, seeParents, fishVar(in.function, parents), name, fishQuote(cmd.Help())))
	}

	cond := "__fish_seen_subcommand_from " + name
	if len(parents) > 0 {
		cond = seeParents + "; and " + cond
	}

	for _, f := range sortedFlags(cmd.Flags()) {
		lines = append(lines, fmt.Sprintf("complete -c %s -A -n '%s' %s -d %s",
			in.scriptName, cond, fishOption(f.Name), fishQuote(f.Help)))
	}

	names, subs := subcommands(cmd)
	if len(names) == 0 {
		return lines
	}

	lines = append(lines, "# "+name+" subcommands")
	lines = append(lines, "set -g "+fishVar(in.function, path)+" "+strings.Join(names, " "))
	for i, sub := range names {
		lines = fishCommand(lines, in, sub, subs[sub], path)
		if i < len(names)-1 {
			lines = append(lines, "")
		}
	}
	return lines
}

// fishOption converts an option name to the matching complete switch.
func fishOption(name string) string {
	switch {
	case strings.HasPrefix(name, "--"):
		return "-l " + name[2:]
	case len(name) == 2 && name[0] == '-':
		return "-s " + name[1:]
	case strings.HasPrefix(name, "-"):
		return "-o " + name[1:]
	default:
		return "-l " + name
	}
}

// fishQuote single quotes s. Inside single quotes fish only interprets \\ and
// \'.
func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}

// fishVar returns the global variable listing the subcommands under path. It is
// prefixed with the completion function so that scripts of different programs
// do not collide.
func fishVar(function string, path []string) string {
	return invalidFishVarChars.ReplaceAllString(function+"_"+strings.Join(path, "_")+"_subcommands", "_")
}

func sortedFlags(flags []Flag) []Flag {
	sorted := append([]Flag(nil), flags...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}
