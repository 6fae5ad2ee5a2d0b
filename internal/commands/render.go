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
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/abcxyz/gencomplete/cli"
	"github.com/abcxyz/gencomplete/completer"
	"github.com/abcxyz/gencomplete/internal/version"
	"github.com/abcxyz/gencomplete/logging"
	"github.com/abcxyz/gencomplete/manifest"
)

var _ cli.Command = (*RenderCommand)(nil)

// RenderCommand prints the completion script of a manifest program.
type RenderCommand struct {
	cli.BaseCommand

	flags renderFlags
}

func (c *RenderCommand) Desc() string {
	return "Print the completion script of a program"
}

func (c *RenderCommand) Help() string {
	return strings.Trim(`
Usage: {{ COMMAND }} [options] FILE[:PROGRAM] [SHELL]

  Render the completion script of PROGRAM, declared in the manifest FILE, for
  SHELL (one of bash, zsh, fish, powershell). When SHELL is omitted, it is
  detected from the SHELL environment variable.

`+c.Flags().Help(), "\n")
}

func (c *RenderCommand) Flags() *cli.FlagSet {
	set := c.NewFlagSet()
	c.flags.register(set)
	return set
}

func (c *RenderCommand) Run(ctx context.Context, args []string) error {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	args = f.Args()
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("expected 1 or 2 arguments, got %q", args)
	}

	cfg, err := loadConfig(ctx, c.LookupEnv, c.flags.config)
	if err != nil {
		return err
	}

	shell := cfg.Shell
	if len(args) == 2 {
		shell = args[1]
	}

	comp, prog, err := c.flags.completer(ctx, cfg, args[0], c.LookupEnv)
	if err != nil {
		return err
	}

	out, err := comp.Render(ctx, shell)
	if err != nil {
		return fmt.Errorf("failed to render completion for %s: %w", prog[0], err)
	}

	fmt.Fprint(c.Stdout(), out)

	if isTerminal(c.Stdout()) {
		fmt.Fprintf(c.Stderr(), "\nSave the script where your shell loads completions from, "+
			"for example:\n\n  %s render %s bash > ~/.local/share/bash-completion/completions/%s\n",
			version.Name, args[0], filepath.Base(prog[0]))
	}
	return nil
}

// renderFlags are shared by render and render-all.
type renderFlags struct {
	config     string
	prog       []string
	scriptPath string
}

func (r *renderFlags) register(set *cli.FlagSet) {
	f := set.NewSection("COMMAND OPTIONS")

	f.StringVar(&cli.StringVar{
		Name:    "config",
		Example: "gencomplete.yaml",
		EnvVar:  envPrefix + "CONFIG",
		Target:  &r.config,
		Usage:   "Path to a YAML file with default option values.",
	})
	f.StringSliceVar(&cli.StringSliceVar{
		Name:    "prog",
		Example: "my-tool",
		Target:  &r.prog,
		Usage: "Program name to bind the completion to. Repeat for aliases. " +
			"Defaults to the program name and aliases from the manifest.",
	})
	f.StringVar(&cli.StringVar{
		Name:    "script-path",
		Example: "/usr/local/bin/my-tool",
		Target:  &r.scriptPath,
		Usage: "Installed path of the program, hashed into the completion " +
			"function name. Defaults to the program found in PATH.",
	})
}

// completer loads the program referenced by ref and builds its completer.
// Flags override cfg, which overrides values derived from the manifest.
func (r *renderFlags) completer(ctx context.Context, cfg *Config, ref string, lookupEnv cli.LookupEnvFunc) (*completer.Completer, []string, error) {
	logger := logging.FromContext(ctx)

	program, err := manifest.Load(ctx, ref)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck // Already descriptive
	}

	prog := r.prog
	if len(prog) == 0 {
		prog = cfg.Prog
	}
	if len(prog) == 0 {
		prog = program.Prog()
	}

	scriptPath := r.scriptPath
	if scriptPath == "" {
		scriptPath = cfg.ScriptPath
	}
	if scriptPath == "" {
		scriptPath = lookPath(prog[0])
	}

	logger.Debugw("building completer",
		"reference", ref,
		"prog", prog,
		"script_path", scriptPath)

	comp, err := completer.New(program,
		completer.WithProg(prog...),
		completer.WithScriptPath(scriptPath),
		completer.WithLookupEnv(lookupEnv))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create completer: %w", err)
	}
	return comp, prog, nil
}

// lookPath resolves name in PATH. When the program is not installed, name
// itself is used.
func lookPath(name string) string {
	p, err := exec.LookPath(name)
	if err != nil {
		return name
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return p
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
