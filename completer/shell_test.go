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
	"errors"
	"testing"

	"github.com/abcxyz/gencomplete/cli"
	"github.com/abcxyz/gencomplete/testutil"
)

func TestParseShell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		exp  Shell
		err  string
	}{
		{
			name: "bash",
			in:   "bash",
			exp:  Bash,
		},
		{
			name: "zsh",
			in:   "zsh",
			exp:  Zsh,
		},
		{
			name: "fish",
			in:   "fish",
			exp:  Fish,
		},
		{
			name: "powershell",
			in:   "powershell",
			exp:  PowerShell,
		},
		{
			name: "tcsh",
			in:   "tcsh",
			err:  `unknown shell "tcsh": must be one of bash, zsh, fish, powershell`,
		},
		{
			name: "case_sensitive",
			in:   "Bash",
			err:  `unknown shell "Bash"`,
		},
		{
			name: "empty",
			in:   "",
			err:  `unknown shell ""`,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseShell(tc.in)
			if diff := testutil.DiffErrString(err, tc.err); diff != "" {
				t.Fatal(diff)
			}
			if err != nil && !errors.Is(err, ErrUnknownShell) {
				t.Errorf("expected %v to be %v", err, ErrUnknownShell)
			}
			if got != tc.exp {
				t.Errorf("expected %q to be %q", got, tc.exp)
			}
		})
	}
}

func TestDetectShell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		env  map[string]string
		exp  string
		err  error
	}{
		{
			name: "path",
			env:  map[string]string{"SHELL": "/usr/bin/zsh"},
			exp:  "zsh",
		},
		{
			name: "bare",
			env:  map[string]string{"SHELL": "fish"},
			exp:  "fish",
		},
		{
			name: "unsupported_is_not_validated",
			env:  map[string]string{"SHELL": "/bin/tcsh"},
			exp:  "tcsh",
		},
		{
			name: "unset",
			env:  map[string]string{},
			err:  ErrShellUndetectable,
		},
		{
			name: "empty",
			env:  map[string]string{"SHELL": ""},
			err:  ErrShellUndetectable,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := DetectShell(cli.MapLookuper(tc.env))
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected error %v to be %v", err, tc.err)
			}
			if got != tc.exp {
				t.Errorf("expected %q to be %q", got, tc.exp)
			}
		})
	}
}
