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

package cli

import (
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewFlagSet(t *testing.T) {
	t.Parallel()

	fs := NewFlagSet()

	if got, want := fs.flagSet.ErrorHandling(), flag.ContinueOnError; got != want {
		t.Errorf("expected %q to be %q", got, want)
	}
	if got, want := fs.flagSet.Output(), io.Discard; got != want {
		t.Errorf("expected %q to be %q", got, want)
	}
}

func TestFlagSet_Help(t *testing.T) {
	t.Parallel()

	fs := NewFlagSet()

	sec1 := fs.NewSection("child1")
	sec1.BoolVar(&BoolVar{
		Name:   "my-bool",
		Usage:  "One usage.",
		Target: ptrTo(true),
	})
	sec1.IntVar(&IntVar{
		Name:   "my-int",
		Usage:  "One usage.",
		Hidden: true,
		Target: ptrTo(0),
	})

	sec2 := fs.NewSection("child2")
	sec2.StringVar(&StringVar{
		Name:    "two",
		Usage:   "Two usage.",
		Aliases: []string{"at", "t"},
		Example: "example",
		Default: "dflt",
		Target:  ptrTo(""),
	})

	help := fs.Help()
	if got, want := help, `-t, -at, -two="example"`; !strings.Contains(got, want) {
		t.Errorf("expected\n\n%s\n\nto include %q", got, want)
	}
	if got, want := help, `The default value is "dflt".`; !strings.Contains(got, want) {
		t.Errorf("expected\n\n%s\n\nto include %q", got, want)
	}
	if got, want := help, "my-int"; strings.Contains(got, want) {
		t.Errorf("expected\n\n%s\n\nto not include %q", got, want)
	}
}

func TestFlagSet_VisitFlags(t *testing.T) {
	t.Parallel()

	fs := NewFlagSet()

	sec1 := fs.NewSection("FIRST")
	sec1.StringVar(&StringVar{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "File to write.",
		Default: "out.txt",
		Target:  ptrTo(""),
	})

	sec2 := fs.NewSection("SECOND")
	sec2.BoolVar(&BoolVar{
		Name:   "all",
		Usage:  "Include hidden files.",
		Hidden: true,
		Target: ptrTo(false),
	})

	var got []*FlagInfo
	fs.VisitFlags(func(f *FlagInfo) {
		got = append(got, f)
	})

	want := []*FlagInfo{
		{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "File to write.",
		},
		{
			Name:   "all",
			Usage:  "Include hidden files.",
			Hidden: true,
			IsBool: true,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flags (-want, +got):\n%s", diff)
	}
}

func TestFlagSection_EnvVar(t *testing.T) {
	t.Parallel()

	var target string
	fs := NewFlagSet(WithLookupEnv(MapLookuper(map[string]string{
		"TEST_SHELL": "fish",
	})))
	fs.NewSection("").StringVar(&StringVar{
		Name:    "shell",
		Default: "bash",
		EnvVar:  "TEST_SHELL",
		Target:  &target,
	})

	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if got, want := target, "fish"; got != want {
		t.Errorf("expected %q to be %q", got, want)
	}
}

func TestFlagSection_StringSliceVar(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		def  []string
		exp  []string
	}{
		{
			name: "empty",
			args: []string{},
		},
		{
			name: "default",
			args: []string{},
			def:  []string{"one"},
			exp:  []string{"one"},
		},
		{
			name: "overrides_default",
			args: []string{"-test", "a"},
			def:  []string{"one", "two"},
			exp:  []string{"a"},
		},
		{
			name: "splits_commas",
			args: []string{"-test", "a, b, c,d"},
			def:  []string{"one", "two"},
			exp:  []string{"a", "b", "c", "d"},
		},
		{
			name: "repeated",
			args: []string{"-test", "a,b", "-test", "c"},
			exp:  []string{"a", "b", "c"},
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var target []string

			fs := NewFlagSet()
			s := fs.NewSection("")
			s.StringSliceVar(&StringSliceVar{
				Name:    "test",
				Default: tc.def,
				Target:  &target,
			})

			if err := fs.Parse(tc.args); err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tc.exp, target, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("diff (-want, +got):\n%s", diff)
			}
		})
	}
}

func ptrTo[T any](v T) *T {
	return &v
}
