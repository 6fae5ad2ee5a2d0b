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
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abcxyz/gencomplete/cli"
	"github.com/abcxyz/gencomplete/completer"
	"github.com/abcxyz/gencomplete/logging"
)

var _ cli.Command = (*RenderAllCommand)(nil)

// RenderAllCommand writes the completion scripts of a program for every
// supported shell into a directory.
type RenderAllCommand struct {
	cli.BaseCommand

	flags     renderFlags
	outputDir string
}

func (c *RenderAllCommand) Desc() string {
	return "Write completion scripts for all shells"
}

func (c *RenderAllCommand) Help() string {
	return strings.Trim(`
Usage: {{ COMMAND }} [options] FILE[:PROGRAM]

  Render the completion scripts of PROGRAM, declared in the manifest FILE, for
  every supported shell and write them to the output directory:

      NAME.bash    bash
      _NAME        zsh
      NAME.fish    fish
      NAME.ps1     powershell

`+c.Flags().Help(), "\n")
}

func (c *RenderAllCommand) Flags() *cli.FlagSet {
	set := c.NewFlagSet()
	c.flags.register(set)

	f := set.NewSection("OUTPUT OPTIONS")
	f.StringVar(&cli.StringVar{
		Name:    "output-dir",
		Aliases: []string{"o"},
		Example: "./completions",
		Target:  &c.outputDir,
		Usage:   "Directory to write the scripts to. It is created if missing.",
	})

	return set
}

func (c *RenderAllCommand) Run(ctx context.Context, args []string) error {
	logger := logging.FromContext(ctx)

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	args = f.Args()
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument, got %q", args)
	}

	cfg, err := loadConfig(ctx, c.LookupEnv, c.flags.config)
	if err != nil {
		return err
	}

	dir := c.outputDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	if dir == "" {
		return fmt.Errorf("-output-dir is required")
	}

	comp, prog, err := c.flags.completer(ctx, cfg, args[0], c.LookupEnv)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	name := filepath.Base(prog[0])
	paths := make([]string, len(completer.Shells))

	g, gctx := errgroup.WithContext(ctx)
	for i, sh := range completer.Shells {
		i, sh := i, sh

		g.Go(func() error {
			out, err := comp.Render(gctx, string(sh))
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", sh, err)
			}

			p := filepath.Join(dir, ScriptFileName(sh, name))
			if err := os.WriteFile(p, []byte(out), 0o644); err != nil { //nolint:gosec // Scripts are world readable
				return fmt.Errorf("failed to write %s: %w", p, err)
			}
			logger.Debugw("wrote completion script", "shell", sh, "path", p)

			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck // Already wrapped
	}

	for _, p := range paths {
		fmt.Fprintln(c.Stdout(), p)
	}
	return nil
}

// ScriptFileName returns the conventional file name of the completion script
// of program name for sh.
func ScriptFileName(sh completer.Shell, name string) string {
	switch sh {
	case completer.Bash:
		return name + ".bash"
	case completer.Zsh:
		return "_" + name
	case completer.Fish:
		return name + ".fish"
	case completer.PowerShell:
		return name + ".ps1"
	}
	return name + "." + string(sh)
}
