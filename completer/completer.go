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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/abcxyz/gencomplete/internal/version"
	"github.com/abcxyz/gencomplete/logging"
	"github.com/abcxyz/gencomplete/sets"
	"github.com/abcxyz/gencomplete/slices"
)

// Completer renders completion scripts for one command tree.
type Completer struct {
	root       Command
	prog       []string
	scriptPath string
	lookupEnv  func(string) (string, bool)
}

// Option is an option to [New].
type Option func(c *Completer) *Completer

// WithProg sets the program names the completion is registered for. The first
// name is the canonical one. By default it is the basename of the running
// executable.
func WithProg(names ...string) Option {
	return func(c *Completer) *Completer {
		c.prog = append([]string(nil), names...)
		return c
	}
}

// WithScriptPath sets the path of the program, which is hashed into the
// completion function name. By default it is the resolved path of the running
// executable.
func WithScriptPath(p string) Option {
	return func(c *Completer) *Completer {
		c.scriptPath = p
		return c
	}
}

// WithLookupEnv sets the function used to read the SHELL environment variable.
// The default is [os.LookupEnv].
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(c *Completer) *Completer {
		c.lookupEnv = fn
		return c
	}
}

// New adapts cliObj and returns a completer for it. It returns a
// [*NotSupportedError] if cliObj is not a supported CLI object.
func New(cliObj any, opts ...Option) (*Completer, error) {
	root, err := Adapt(cliObj)
	if err != nil {
		return nil, err
	}

	c := &Completer{
		root:      root,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	if c.scriptPath == "" {
		p, err := executablePath()
		if err != nil {
			return nil, err
		}
		c.scriptPath = p
	}

	if len(c.prog) == 0 {
		c.prog = []string{filepath.Base(c.scriptPath)}
	}
	for i, name := range c.prog {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("program name at position %d is empty", i)
		}
	}

	return c, nil
}

// Prog returns the program names the completion is registered for.
func (c *Completer) Prog() []string {
	return append([]string(nil), c.prog...)
}

// Render renders the completion script for shell. When shell is empty, it is
// detected from the SHELL environment variable.
func (c *Completer) Render(ctx context.Context, shell string) (string, error) {
	logger := logging.FromContext(ctx)

	if shell == "" {
		detected, err := DetectShell(c.lookupEnv)
		if err != nil {
			return "", err
		}
		logger.Debugw("detected shell from environment", "shell", detected)
		shell = detected
	}

	sh, err := ParseShell(shell)
	if err != nil {
		return "", err
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return "", err
	}

	in := &renderInput{
		root:       c.root,
		prog:       c.prog,
		scriptName: c.prog[0],
		function:   FunctionName(c.prog[0], c.scriptPath),
	}

	slots := renderFuncs[sh](in)
	slots["script_name"] = in.scriptName
	slots["function"] = in.function
	slots["version"] = version.Version

	logger.Debugw("rendering completion script",
		"shell", sh,
		"function", in.function,
		"prog", c.prog)

	out, err := tmpl.Render(string(sh), slots)
	if err != nil {
		return "", fmt.Errorf("failed to render %s completion: %w", sh, err)
	}
	return out, nil
}

// renderInput is the state shared by all dialects for one render call.
type renderInput struct {
	root       Command
	prog       []string
	scriptName string
	function   string
}

// renderFunc builds the dialect specific template slots.
type renderFunc func(in *renderInput) map[string]string

var renderFuncs = map[Shell]renderFunc{
	Bash:       renderBash,
	Zsh:        renderZsh,
	Fish:       renderFish,
	PowerShell: renderPowerShell,
}

// subcommands returns the subcommands of cmd and their sorted names.
func subcommands(cmd Command) ([]string, map[string]Command) {
	cmds := cmd.Commands()
	names := maps.Keys(cmds)
	sort.Strings(names)
	return names, cmds
}

// flagNames returns the sorted, de-duplicated names of flags.
func flagNames(flags []Flag) []string {
	names := sets.Union(slices.Map(flags, flagName))
	sort.Strings(names)
	return names
}

// caseBlock renders a single case arm shared by the bash and zsh dialects.
func caseBlock(name, body string) string {
	return "            (" + name + ")\n" +
		"            " + body + "\n" +
		"            ;;"
}

func executablePath() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to find executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return resolved, nil
}
