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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/abcxyz/gencomplete/cli"
	"github.com/abcxyz/gencomplete/manifest"
	"github.com/abcxyz/gencomplete/testutil"
)

// tree is a comparable snapshot of a [Command].
type tree struct {
	Help     string
	Flags    []Flag
	Commands map[string]*tree
}

func snapshot(c Command) *tree {
	t := &tree{
		Help:     c.Help(),
		Flags:    c.Flags(),
		Commands: make(map[string]*tree),
	}
	for name, sub := range c.Commands() {
		t.Commands[name] = snapshot(sub)
	}
	return t
}

func testCobraCommand(tb testing.TB) *cobra.Command {
	tb.Helper()

	noop := func(*cobra.Command, []string) {}

	root := &cobra.Command{Use: "app", Long: "Manage files."}
	root.PersistentFlags().Bool("verbose", false, "Verbose output")
	root.Flags().StringP("file", "f", "", "File to write")

	list := &cobra.Command{Use: "list [DIR]", Short: "List files", Run: noop}
	list.Flags().BoolP("all", "a", false, "Include hidden files")
	list.Flags().Bool("old", false, "Old behavior")
	if err := list.Flags().MarkDeprecated("old", "use --all"); err != nil {
		tb.Fatal(err)
	}
	list.Flags().Bool("debug", false, "Debug listing")
	if err := list.Flags().MarkHidden("debug"); err != nil {
		tb.Fatal(err)
	}

	remote := &cobra.Command{Use: "remote", Short: "Manage remotes"}
	remote.AddCommand(&cobra.Command{Use: "add NAME URL", Short: "Add a remote", Run: noop})

	secret := &cobra.Command{Use: "secret", Short: "Hidden", Hidden: true, Run: noop}
	legacy := &cobra.Command{Use: "legacy", Short: "Legacy", Deprecated: "use list", Run: noop}
	group := &cobra.Command{Use: "group", Short: "Nothing runnable"}

	root.AddCommand(list, remote, secret, legacy, group)
	return root
}

type testCLICommand struct {
	cli.BaseCommand

	desc   string
	hidden bool

	all     bool
	exclude string
	debug   string
	limit   int
}

func (c *testCLICommand) Desc() string                        { return c.desc }
func (c *testCLICommand) Help() string                        { return "Usage: app list" }
func (c *testCLICommand) Hidden() bool                        { return c.hidden }
func (c *testCLICommand) Run(context.Context, []string) error { return nil }

func (c *testCLICommand) Flags() *cli.FlagSet {
	set := c.NewFlagSet()

	f := set.NewSection("OPTIONS")
	f.BoolVar(&cli.BoolVar{
		Name:    "all",
		Aliases: []string{"a"},
		Target:  &c.all,
		Usage:   "Include hidden files",
	})
	f.StringVar(&cli.StringVar{
		Name:    "x",
		Aliases: []string{"exclude"},
		Target:  &c.exclude,
		Usage:   "Pattern to exclude",
	})
	f.StringVar(&cli.StringVar{
		Name:   "debug",
		Target: &c.debug,
		Hidden: true,
	})

	f = set.NewSection("OUTPUT OPTIONS")
	f.IntVar(&cli.IntVar{
		Name:   "n",
		Target: &c.limit,
		Usage:  "Maximum entries",
	})

	return set
}

func TestAdapt(t *testing.T) {
	t.Parallel()

	rootFlags := []Flag{
		{Name: "--help", Help: "Print help for the command."},
		{Name: "--version", Help: "Print the version and exit."},
	}

	cases := []struct {
		name string
		obj  func(tb testing.TB) any
		exp  *tree
		err  string
	}{
		{
			name: "command",
			obj:  func(testing.TB) any { return appTree() },
			exp: &tree{
				Help:  "Manage files",
				Flags: []Flag{{Name: "--file", Help: "File to write"}},
				Commands: map[string]*tree{
					"list": {
						Help:  "List files",
						Flags: []Flag{{Name: "--all", Help: "Include hidden files"}},
					},
				},
			},
		},
		{
			name: "cobra",
			obj:  func(tb testing.TB) any { return testCobraCommand(tb) },
			exp: &tree{
				Help: "Manage files.",
				Flags: []Flag{
					{Name: "--file", Help: "File to write"},
					{Name: "--verbose", Help: "Verbose output"},
				},
				Commands: map[string]*tree{
					"list": {
						Help: "List files",
						Flags: []Flag{
							{Name: "--all", Help: "Include hidden files"},
							{Name: "--verbose", Help: "Verbose output"},
						},
					},
					"remote": {
						Help:  "Manage remotes",
						Flags: []Flag{{Name: "--verbose", Help: "Verbose output"}},
						Commands: map[string]*tree{
							"add": {
								Help:  "Add a remote",
								Flags: []Flag{{Name: "--verbose", Help: "Verbose output"}},
							},
						},
					},
				},
			},
		},
		{
			name: "cli",
			obj: func(testing.TB) any {
				return &cli.RootCommand{
					Name:        "app",
					Description: "Manage files",
					Commands: map[string]cli.CommandFactory{
						"list": func() cli.Command {
							return &testCLICommand{desc: "List files"}
						},
						"secret": func() cli.Command {
							return &testCLICommand{desc: "Hidden", hidden: true}
						},
						"nil": nil,
						"remote": func() cli.Command {
							return &cli.RootCommand{
								Name:        "remote",
								Description: "Manage remotes",
								Commands: map[string]cli.CommandFactory{
									"add": func() cli.Command {
										return &testCLICommand{desc: "Add a remote"}
									},
								},
							}
						},
					},
				}
			},
			exp: &tree{
				Help:  "Manage files",
				Flags: rootFlags,
				Commands: map[string]*tree{
					"list": {
						Help: "List files",
						Flags: []Flag{
							{Name: "--all", Help: "Include hidden files"},
							{Name: "--exclude", Help: "Pattern to exclude"},
							{Name: "-n", Help: "Maximum entries"},
						},
					},
					"remote": {
						Help:  "Manage remotes",
						Flags: rootFlags,
						Commands: map[string]*tree{
							"add": {
								Help: "Add a remote",
								Flags: []Flag{
									{Name: "--all", Help: "Include hidden files"},
									{Name: "--exclude", Help: "Pattern to exclude"},
									{Name: "-n", Help: "Maximum entries"},
								},
							},
						},
					},
				},
			},
		},
		{
			name: "manifest_program",
			obj: func(tb testing.TB) any {
				f, err := manifest.Parse([]byte(`
programs:
  app:
    help: Manage files
    options:
      - name: --file
        aliases: [-f]
        help: File to write
      - name: --trace
        hidden: true
    commands:
      list:
        help: List files
        options:
          - name: -a
            aliases: [--all]
            help: Include hidden files
      debug:
        hidden: true
      version:
`))
				if err != nil {
					tb.Fatal(err)
				}
				p, err := f.Lookup("app")
				if err != nil {
					tb.Fatal(err)
				}
				return p
			},
			exp: &tree{
				Help:  "Manage files",
				Flags: []Flag{{Name: "--file", Help: "File to write"}},
				Commands: map[string]*tree{
					"list": {
						Help:  "List files",
						Flags: []Flag{{Name: "--all", Help: "Include hidden files"}},
					},
					"version": {},
				},
			},
		},
		{
			name: "manifest_command",
			obj: func(testing.TB) any {
				return &manifest.Command{
					Help:    "Leaf",
					Options: []*manifest.Option{{Name: "--force", Help: "Overwrite"}},
				}
			},
			exp: &tree{
				Help:  "Leaf",
				Flags: []Flag{{Name: "--force", Help: "Overwrite"}},
			},
		},
		{
			name: "manifest_duplicate_options",
			obj: func(testing.TB) any {
				return &manifest.Command{
					Options: []*manifest.Option{
						{Name: "--force", Help: "Overwrite"},
						{Name: "--dry-run", Help: "Print only"},
						{Name: "--force", Help: "Overwrite again"},
					},
				}
			},
			exp: &tree{
				Flags: []Flag{
					{Name: "--force", Help: "Overwrite"},
					{Name: "--dry-run", Help: "Print only"},
				},
			},
		},
		{
			name: "unsupported",
			obj:  func(testing.TB) any { return 42 },
			err:  "CLI object type int is not supported yet",
		},
		{
			name: "nil",
			obj:  func(testing.TB) any { return nil },
			err:  "CLI object type <nil> is not supported yet",
		},
		{
			name: "nil_cobra",
			obj:  func(testing.TB) any { return (*cobra.Command)(nil) },
			err:  "CLI object type *cobra.Command is not supported yet",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Adapt(tc.obj(t))
			if tc.err != "" {
				if err == nil {
					t.Fatalf("expected error %q", tc.err)
				}
				if !errors.Is(err, ErrNotSupported) {
					t.Errorf("expected %v to match %v", err, ErrNotSupported)
				}
				var nse *NotSupportedError
				if !errors.As(err, &nse) {
					t.Errorf("expected %T to be a *NotSupportedError", err)
				}
				if diff := testutil.DiffContains(err.Error(), tc.err, "*cobra.Command", "cli.Command"); diff != "" {
					t.Error(diff)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tc.exp, snapshot(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("tree (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestUniqueFlags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		flags []Flag
		exp   []Flag
	}{
		{
			name: "nil",
			exp:  nil,
		},
		{
			name: "unique",
			flags: []Flag{
				{Name: "--file", Help: "File"},
				{Name: "-v", Help: "Verbose"},
			},
			exp: []Flag{
				{Name: "--file", Help: "File"},
				{Name: "-v", Help: "Verbose"},
			},
		},
		{
			name: "keeps_first",
			flags: []Flag{
				{Name: "--file", Help: "First"},
				{Name: "--all"},
				{Name: "--file", Help: "Second"},
				{Name: "--all", Help: "Later"},
				{Name: "--zone"},
			},
			exp: []Flag{
				{Name: "--file", Help: "First"},
				{Name: "--all"},
				{Name: "--zone"},
			},
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tc.exp, uniqueFlags(tc.flags)); diff != "" {
				t.Errorf("uniqueFlags (-want, +got):\n%s", diff)
			}
		})
	}
}
