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
	"github.com/abcxyz/gencomplete/manifest"
)

var _ Command = (*manifestCommand)(nil)

// manifestCommand adapts a declarative [manifest.Command].
type manifestCommand struct {
	cmd *manifest.Command
}

func adaptManifest(v any) (Command, error) {
	switch t := v.(type) {
	case *manifest.Program:
		if t != nil {
			return &manifestCommand{cmd: &t.Command}, nil
		}
	case *manifest.Command:
		if t != nil {
			return &manifestCommand{cmd: t}, nil
		}
	}
	return nil, ErrNotSupported
}

func (c *manifestCommand) Flags() []Flag {
	flags := make([]Flag, 0, len(c.cmd.Options))
	for _, o := range c.cmd.Options {
		if o == nil || o.Hidden {
			continue
		}
		flags = append(flags, Flag{Name: o.Primary(), Help: o.Help})
	}
	return uniqueFlags(flags)
}

func (c *manifestCommand) Commands() map[string]Command {
	cmds := make(map[string]Command, len(c.cmd.Commands))
	for name, sub := range c.cmd.Commands {
		if sub == nil {
			sub = &manifest.Command{}
		}
		if sub.Hidden {
			continue
		}
		cmds[name] = &manifestCommand{cmd: sub}
	}
	return cmds
}

func (c *manifestCommand) Help() string {
	return c.cmd.Help
}
