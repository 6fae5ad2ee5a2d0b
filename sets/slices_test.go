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

package sets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		slices [][]string
		exp    []string
	}{
		{
			name:   "nil_slices",
			slices: nil,
			exp:    []string{},
		},
		{
			name: "empty_slices",
			slices: [][]string{
				{"--verbose"},
				nil,
				{"--file"},
				{},
			},
			exp: []string{"--verbose", "--file"},
		},
		{
			name: "one",
			slices: [][]string{
				{"--verbose", "--file"},
			},
			exp: []string{"--verbose", "--file"},
		},
		{
			name: "many",
			slices: [][]string{
				{"--verbose", "--file"},
				{"-h", "--all"},
			},
			exp: []string{"--verbose", "--file", "-h", "--all"},
		},
		{
			name: "duplicates_keep_first_position",
			slices: [][]string{
				{"--file", "--verbose", "--verbose", "--file"},
				{"--all", "--verbose"},
			},
			exp: []string{"--file", "--verbose", "--all"},
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var before [][]string
			for _, s := range tc.slices {
				before = append(before, append([]string(nil), s...))
			}

			got := Union(tc.slices...)
			if diff := cmp.Diff(tc.exp, got); diff != "" {
				t.Errorf("incorrect union (-want/+got):\n%s", diff)
			}

			if diff := cmp.Diff(before, tc.slices); diff != "" {
				t.Errorf("union modified input (-want/+got):\n%s", diff)
			}
		})
	}
}

func TestSubtract(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		s0     []string
		others [][]string
		exp    []string
	}{
		{
			name: "nil",
			exp:  []string{},
		},
		{
			name: "nothing_to_remove",
			s0:   []string{"bash", "zsh"},
			exp:  []string{"bash", "zsh"},
		},
		{
			name:   "removes_from_all",
			s0:     []string{"bash", "zsh", "fish", "powershell"},
			others: [][]string{{"zsh"}, {"powershell", "tcsh"}},
			exp:    []string{"bash", "fish"},
		},
		{
			name:   "keeps_surviving_duplicates",
			s0:     []string{"bash", "fish", "bash", "zsh"},
			others: [][]string{{"zsh"}},
			exp:    []string{"bash", "fish", "bash"},
		},
		{
			name:   "removes_all",
			s0:     []string{"bash", "bash"},
			others: [][]string{{"bash"}},
			exp:    []string{},
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			before := append([]string(nil), tc.s0...)

			got := Subtract(tc.s0, tc.others...)
			if diff := cmp.Diff(tc.exp, got); diff != "" {
				t.Errorf("incorrect subtraction (-want/+got):\n%s", diff)
			}

			if diff := cmp.Diff(before, tc.s0); diff != "" {
				t.Errorf("subtraction modified input (-want/+got):\n%s", diff)
			}
		})
	}
}
