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

// Package manifest describes command-line programs declaratively in YAML, so
// completion scripts can be generated for programs that are not written with a
// supported Go CLI framework.
//
// A manifest file holds one or more programs keyed by name:
//
//	programs:
//	  app:
//	    aliases: [app2]
//	    help: Manage files
//	    options:
//	      - name: --file
//	        aliases: [-f]
//	        help: File to write
//	    commands:
//	      list:
//	        help: List files
//	        options:
//	          - name: --all
//	            help: Include hidden files
//
// Programs are selected with a reference of the form "FILE[:PROGRAM]".
package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"

	"github.com/abcxyz/gencomplete/logging"
)

// File is the top-level manifest document.
type File struct {
	Programs map[string]*Program `yaml:"programs"`
}

// Program is a top-level command together with the names it is installed
// under.
type Program struct {
	Command `yaml:",inline"`

	// Name is populated from the key in [File.Programs].
	Name string `yaml:"-"`

	// Aliases are additional executable names for the program.
	Aliases []string `yaml:"aliases,omitempty"`
}

// Prog returns the program name followed by its aliases.
func (p *Program) Prog() []string {
	return append([]string{p.Name}, p.Aliases...)
}

// Command is a command or subcommand.
type Command struct {
	Help     string              `yaml:"help,omitempty"`
	Hidden   bool                `yaml:"hidden,omitempty"`
	Options  []*Option           `yaml:"options,omitempty"`
	Commands map[string]*Command `yaml:"commands,omitempty"`
}

// Option is a flag accepted by a command. Names include their leading dashes.
type Option struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
	Help    string   `yaml:"help,omitempty"`
	Hidden  bool     `yaml:"hidden,omitempty"`
}

// Primary returns the longest spelling of the option. The declared name wins
// ties.
func (o *Option) Primary() string {
	primary := o.Name
	for _, a := range o.Aliases {
		if len(a) > len(primary) {
			primary = a
		}
	}
	return primary
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.+-]*$`)

// Parse decodes and validates a manifest. Unknown fields are rejected.
func Parse(b []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every program and command in the file.
func (f *File) Validate() error {
	if len(f.Programs) == 0 {
		return fmt.Errorf("manifest defines no programs")
	}

	var merr error
	for _, name := range sortedKeys(f.Programs) {
		p := f.Programs[name]
		if p == nil {
			merr = errors.Join(merr, fmt.Errorf("program %q is empty", name))
			continue
		}
		p.Name = name

		if !nameRe.MatchString(name) {
			merr = errors.Join(merr, fmt.Errorf("program name %q is invalid", name))
		}
		for _, a := range p.Aliases {
			if !nameRe.MatchString(a) {
				merr = errors.Join(merr, fmt.Errorf("program %q: alias %q is invalid", name, a))
			}
		}
		merr = errors.Join(merr, p.Command.validate(name))
	}
	return merr
}

func (c *Command) validate(path string) error {
	var merr error

	seen := make(map[string]struct{}, len(c.Options))
	for i, o := range c.Options {
		if o == nil {
			merr = errors.Join(merr, fmt.Errorf("%s: option %d is empty", path, i))
			continue
		}

		for _, spelling := range append([]string{o.Name}, o.Aliases...) {
			if !strings.HasPrefix(spelling, "-") || !nameRe.MatchString(strings.TrimLeft(spelling, "-")) {
				merr = errors.Join(merr, fmt.Errorf("%s: option %q must start with a dash followed by a name", path, spelling))
				continue
			}
			if _, ok := seen[spelling]; ok {
				merr = errors.Join(merr, fmt.Errorf("%s: option %q is declared more than once", path, spelling))
			}
			seen[spelling] = struct{}{}
		}
	}

	for _, name := range sortedKeys(c.Commands) {
		sub := c.Commands[name]
		if !nameRe.MatchString(name) {
			merr = errors.Join(merr, fmt.Errorf("%s: command name %q is invalid", path, name))
		}
		if sub == nil {
			// "name:" with no body is a leaf command without options.
			c.Commands[name] = &Command{}
			continue
		}
		merr = errors.Join(merr, sub.validate(path+" "+name))
	}

	return merr
}

// Load resolves a "FILE[:PROGRAM]" reference. When PROGRAM is omitted, the
// file must define exactly one program.
func Load(ctx context.Context, ref string) (*Program, error) {
	r, err := ParseReference(ref)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, &ReferenceError{Reference: ref, Fragment: r.Path, Err: err}
	}

	f, err := Parse(b)
	if err != nil {
		return nil, &ReferenceError{Reference: ref, Fragment: r.Path, Err: err}
	}

	p, err := f.Lookup(r.Program)
	if err != nil {
		return nil, &ReferenceError{Reference: ref, Fragment: r.Program, Err: err}
	}

	logging.FromContext(ctx).Debugw("loaded manifest",
		"path", r.Path,
		"program", p.Name,
		"programs", len(f.Programs))

	return p, nil
}

// Lookup returns the named program. An empty name selects the only program in
// the file.
func (f *File) Lookup(name string) (*Program, error) {
	if name == "" {
		if len(f.Programs) != 1 {
			return nil, fmt.Errorf("file defines multiple programs (%s), select one with FILE:PROGRAM",
				strings.Join(sortedKeys(f.Programs), ", "))
		}
		for _, p := range f.Programs {
			return p, nil
		}
	}

	p, ok := f.Programs[name]
	if !ok {
		return nil, fmt.Errorf("failed to find program %q (available: %s)",
			name, strings.Join(sortedKeys(f.Programs), ", "))
	}
	return p, nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}
