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

package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/abcxyz/gencomplete/cli"
	"github.com/abcxyz/gencomplete/completer"
	"github.com/abcxyz/gencomplete/internal/version"
)

var _ cli.Command = (*CompletionCommand)(nil)

// CompletionCommand prints the completion script of gencomplete itself.
type CompletionCommand struct {
	cli.BaseCommand

	// Root builds the command tree to complete.
	Root cli.CommandFactory

	scriptPath string
}

func (c *CompletionCommand) Desc() string {
	return "Print the completion script of gencomplete"
}

func (c *CompletionCommand) Help() string {
	return strings.Trim(`
Usage: {{ COMMAND }} [options] [SHELL]

  Print the completion script of gencomplete for SHELL (one of bash, zsh,
  fish, powershell). When SHELL is omitted, it is detected from the SHELL
  environment variable.

`+c.Flags().Help(), "\n")
}

func (c *CompletionCommand) Flags() *cli.FlagSet {
	set := c.NewFlagSet()

	f := set.NewSection("COMMAND OPTIONS")
	f.StringVar(&cli.StringVar{
		Name:    "script-path",
		Example: "/usr/local/bin/gencomplete",
		Target:  &c.scriptPath,
		Usage:   "Installed path of gencomplete. Defaults to the running executable.",
	})

	return set
}

func (c *CompletionCommand) Run(ctx context.Context, args []string) error {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	args = f.Args()
	if len(args) > 1 {
		return fmt.Errorf("expected at most 1 argument, got %q", args)
	}

	var shell string
	if len(args) == 1 {
		shell = args[0]
	}

	if c.Root == nil {
		return fmt.Errorf("no command tree to complete")
	}

	opts := []completer.Option{
		completer.WithProg(version.Name),
		completer.WithLookupEnv(c.LookupEnv),
	}
	if c.scriptPath != "" {
		opts = append(opts, completer.WithScriptPath(c.scriptPath))
	}

	comp, err := completer.New(c.Root(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create completer: %w", err)
	}

	out, err := comp.Render(ctx, shell)
	if err != nil {
		return fmt.Errorf("failed to render completion: %w", err)
	}

	fmt.Fprint(c.Stdout(), out)
	return nil
}
