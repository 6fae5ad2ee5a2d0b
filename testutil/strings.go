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

package testutil

import (
	"fmt"
	"strings"
)

// DiffContains returns an empty string if every one of wants is a substring of
// got. Otherwise it returns a message listing each missing substring along
// with the full output.
func DiffContains(got string, wants ...string) string {
	var missing []string
	for _, want := range wants {
		if !strings.Contains(got, want) {
			missing = append(missing, fmt.Sprintf("  %q", want))
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return fmt.Sprintf("output is missing:\n%s\n\nfull output:\n\n%s",
		strings.Join(missing, "\n"), got)
}

// DiffOrdered returns an empty string if all wants appear in got in the given
// order, each one after the end of the previous match.
func DiffOrdered(got string, wants ...string) string {
	rest := got
	for i, want := range wants {
		idx := strings.Index(rest, want)
		if idx < 0 {
			if i > 0 {
				return fmt.Sprintf("expected %q after %q in:\n\n%s", want, wants[i-1], got)
			}
			return fmt.Sprintf("expected %q in:\n\n%s", want, got)
		}
		rest = rest[idx+len(want):]
	}
	return ""
}
