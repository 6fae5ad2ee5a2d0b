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

package manifest

import (
	"fmt"
	"strings"
)

// Reference identifies a program inside a manifest file.
type Reference struct {
	Path    string
	Program string
}

// String implements [fmt.Stringer].
func (r *Reference) String() string {
	if r.Program == "" {
		return r.Path
	}
	return r.Path + ":" + r.Program
}

// ReferenceError is returned when a reference cannot be parsed or resolved.
// Fragment is the offending part of the reference.
type ReferenceError struct {
	Reference string
	Fragment  string
	Err       error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("invalid program reference %q at %q: %s", e.Reference, e.Fragment, e.Err)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// ParseReference parses "FILE[:PROGRAM]". Only the first colon separates the
// file from the program.
func ParseReference(s string) (*Reference, error) {
	path, program, found := strings.Cut(strings.TrimSpace(s), ":")
	if path == "" {
		return nil, &ReferenceError{
			Reference: s,
			Fragment:  s,
			Err: fmt.Errorf("a manifest file must be supplied, for example " +
				"\"app.yaml\" or \"app.yaml:app\""),
		}
	}

	if found {
		if program == "" {
			return nil, &ReferenceError{
				Reference: s,
				Fragment:  s,
				Err:       fmt.Errorf("program name after \":\" cannot be empty"),
			}
		}
		if !nameRe.MatchString(program) {
			return nil, &ReferenceError{
				Reference: s,
				Fragment:  program,
				Err:       fmt.Errorf("failed to parse program name"),
			}
		}
	}

	return &Reference{Path: path, Program: program}, nil
}
