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

// Package cli defines an SDK for building small, consistent CLIs. All commands
// start with a [RootCommand] which can then accept one or more nested
// subcommands. Subcommands can also be [RootCommand], which creates nested CLIs
// (e.g. "my-tool do the-thing").
//
// Commands are instantiated lazily through [CommandFactory]. Most applications
// create a private function that returns the root command:
//
//	var rootCmd = func() cli.Command {
//	  return &cli.RootCommand{
//	    Name:    "my-tool",
//	    Version: "1.2.3",
//	    Commands: map[string]cli.CommandFactory{
//	      "eat": func() cli.Command {
//	        return &EatCommand{}
//	      },
//	    },
//	  }
//	}
//
// Every command describes its flags through a [FlagSet]. Flag sets carry the
// names, aliases, usage and visibility of each flag, which is what allows the
// command tree to be introspected, for example to generate shell completion
// scripts for the whole CLI.
package cli
