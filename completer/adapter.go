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
	"fmt"

	"github.com/abcxyz/gencomplete/sets"
	"github.com/abcxyz/gencomplete/slices"
)

// ErrNotSupported is returned by an [AdapterFunc] that does not recognize the
// given value. [NotSupportedError] also matches it.
var ErrNotSupported = errors.New("cli object is not supported")

// NotSupportedError is returned when no adapter accepts a CLI object.
type NotSupportedError struct {
	// Type is the runtime type of the rejected object.
	Type string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("CLI object type %s is not supported yet, it must be one of "+
		"(*cobra.Command, cli.Command); declarative programs can be given as *manifest.Program",
		e.Type)
}

// Is reports whether target is [ErrNotSupported].
func (e *NotSupportedError) Is(target error) bool {
	return target == ErrNotSupported //nolint:errorlint // Sentinel comparison
}

// AdapterFunc adapts a CLI object into a [Command]. It returns an error
// wrapping [ErrNotSupported] when v is not a shape it understands.
type AdapterFunc func(v any) (Command, error)

// adapters is the ordered adapter chain. The first adapter that accepts a value
// wins.
var adapters = []AdapterFunc{
	adaptCommand,
	adaptCobra,
	adaptCLI,
	adaptManifest,
}

// Adapt runs the adapter chain over v.
func Adapt(v any) (Command, error) {
	for _, fn := range adapters {
		cmd, err := fn(v)
		if err == nil {
			return cmd, nil
		}
		if !errors.Is(err, ErrNotSupported) {
			return nil, err
		}
	}
	return nil, &NotSupportedError{Type: fmt.Sprintf("%T", v)}
}

// adaptCommand accepts values that already implement [Command].
func adaptCommand(v any) (Command, error) {
	if cmd, ok := v.(Command); ok && cmd != nil {
		return cmd, nil
	}
	return nil, ErrNotSupported
}

// uniqueFlags drops every flag whose name appeared earlier in flags.
func uniqueFlags(flags []Flag) []Flag {
	names := sets.Union(slices.Map(flags, flagName))
	if len(names) == len(flags) {
		return flags
	}

	// names holds first occurrences in order, so a flag is kept exactly when
	// it is the next name expected.
	unique := make([]Flag, 0, len(names))
	for _, f := range flags {
		if len(unique) < len(names) && f.Name == names[len(unique)] {
			unique = append(unique, f)
		}
	}
	return unique
}

func flagName(f Flag) string {
	return f.Name
}
