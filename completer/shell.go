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
	"path/filepath"
	"strings"

	"github.com/abcxyz/gencomplete/slices"
)

// Shell is a supported completion script dialect.
type Shell string

const (
	Bash       Shell = "bash"
	Zsh        Shell = "zsh"
	Fish       Shell = "fish"
	PowerShell Shell = "powershell"
)

// Shells lists every supported dialect in display order.
var Shells = []Shell{Bash, Zsh, Fish, PowerShell}

var (
	// ErrUnknownShell is returned when a requested shell is not one of [Shells].
	ErrUnknownShell = errors.New("unknown shell")

	// ErrShellUndetectable is returned when no shell was requested and the SHELL
	// environment variable is unset.
	ErrShellUndetectable = errors.New("could not read SHELL environment variable, pass the shell type explicitly")
)

// ParseShell validates s against the supported dialects.
func ParseShell(s string) (Shell, error) {
	for _, sh := range Shells {
		if string(sh) == s {
			return sh, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of %s", ErrUnknownShell, s, shellList())
}

// DetectShell returns the basename of the user's login shell, for example
// "zsh" for "/usr/bin/zsh". The result is not validated, pass it to
// [ParseShell].
func DetectShell(lookupEnv func(string) (string, bool)) (string, error) {
	v, ok := lookupEnv("SHELL")
	if !ok || v == "" {
		return "", ErrShellUndetectable
	}
	return filepath.Base(v), nil
}

func shellNames() []string {
	return slices.Map(Shells, func(sh Shell) string { return string(sh) })
}

func shellList() string {
	return strings.Join(shellNames(), ", ")
}
