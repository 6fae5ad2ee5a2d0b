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
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/exp/maps"
)

var _ Command = (*cobraCommand)(nil)

// cobraCommand is a snapshot of a [cobra.Command] tree. Reading the flags of a
// live cobra command merges the parent flag sets into it, so the tree is read
// once when it is adapted and never touched afterwards.
type cobraCommand struct {
	flags    []Flag
	commands map[string]Command
	help     string
}

func adaptCobra(v any) (Command, error) {
	cmd, ok := v.(*cobra.Command)
	if !ok || cmd == nil {
		return nil, ErrNotSupported
	}
	return snapshotCobra(cmd), nil
}

// snapshotCobra copies the visible flags and commands of cmd and its
// descendants. Flags are the local and inherited persistent flags; pflag
// always names a flag by its long form, the shorthand is at most one letter.
// Hidden, deprecated and non-runnable commands are skipped, as is the
// generated help command.
func snapshotCobra(cmd *cobra.Command) *cobraCommand {
	var flags []Flag
	visit := func(f *pflag.Flag) {
		if f.Hidden || f.Deprecated != "" {
			return
		}
		flags = append(flags, Flag{Name: "--" + f.Name, Help: f.Usage})
	}
	cmd.LocalFlags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)

	subs := cmd.Commands()
	cmds := make(map[string]Command, len(subs))
	for _, sub := range subs {
		if !sub.IsAvailableCommand() {
			continue
		}
		cmds[sub.Name()] = snapshotCobra(sub)
	}

	help := cmd.Short
	if help == "" {
		help = cmd.Long
	}

	return &cobraCommand{
		flags:    uniqueFlags(flags),
		commands: cmds,
		help:     help,
	}
}

func (c *cobraCommand) Flags() []Flag {
	return append([]Flag(nil), c.flags...)
}

func (c *cobraCommand) Commands() map[string]Command {
	return maps.Clone(c.commands)
}

func (c *cobraCommand) Help() string {
	return c.help
}
