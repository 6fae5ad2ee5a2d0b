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

// Package commands implements the gencomplete command tree.
package commands

import (
	"context"

	"github.com/abcxyz/gencomplete/cli"
	"github.com/abcxyz/gencomplete/internal/version"
)

// RootCommand returns the gencomplete entrypoint.
func RootCommand() cli.Command {
	return &cli.RootCommand{
		Name:        version.Name,
		Version:     version.HumanVersion,
		Description: "Generate shell completion scripts",
		Commands: map[string]cli.CommandFactory{
			"render": func() cli.Command {
				return &RenderCommand{}
			},
			"render-all": func() cli.Command {
				return &RenderAllCommand{}
			},
			"completion": func() cli.Command {
				return &CompletionCommand{Root: RootCommand}
			},
		},
	}
}

// Run executes the command tree with args, which do not include the binary
// name.
func Run(ctx context.Context, args []string) error {
	return RootCommand().Run(ctx, args) //nolint:wrapcheck // Want passthrough
}
