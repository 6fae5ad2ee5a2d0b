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
	"github.com/abcxyz/gencomplete/cli"
)

var _ Command = (*cliCommand)(nil)

// cliCommand adapts a command built with the [cli] SDK.
type cliCommand struct {
	cmd cli.Command
}

func adaptCLI(v any) (Command, error) {
	cmd, ok := v.(cli.Command)
	if !ok || cmd == nil {
		return nil, ErrNotSupported
	}
	return &cliCommand{cmd: cmd}, nil
}

// Flags returns the visible flags of every section. The cli SDK accepts both
// one and two leading dashes; the longest spelling is rendered with two, or
// one for single-letter names.
func (c *cliCommand) Flags() []Flag {
	set := c.cmd.Flags()
	if set == nil {
		return nil
	}

	var flags []Flag
	set.VisitFlags(func(f *cli.FlagInfo) {
		if f.Hidden {
			return
		}

		name := f.Name
		for _, a := range f.Aliases {
			if len(a) > len(name) {
				name = a
			}
		}
		flags = append(flags, Flag{Name: dashed(name), Help: f.Usage})
	})
	return uniqueFlags(flags)
}

// Commands instantiates the subcommands of a [cli.RootCommand]. Other commands
// are leaves.
func (c *cliCommand) Commands() map[string]Command {
	root, ok := c.cmd.(*cli.RootCommand)
	if !ok {
		return map[string]Command{}
	}

	cmds := make(map[string]Command, len(root.Commands))
	for name, factory := range root.Commands {
		if factory == nil {
			continue
		}

		sub := factory()
		if sub == nil || sub.Hidden() {
			continue
		}
		cmds[name] = &cliCommand{cmd: sub}
	}
	return cmds
}

func (c *cliCommand) Help() string {
	return c.cmd.Desc()
}

func dashed(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}
