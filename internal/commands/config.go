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

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abcxyz/gencomplete/cfgloader"
	"github.com/abcxyz/gencomplete/cli"
	"github.com/abcxyz/gencomplete/completer"
)

// envPrefix is the prefix of every environment variable read by gencomplete.
const envPrefix = "GENCOMPLETE_"

// Config holds the defaults for the render commands. Flags take precedence.
type Config struct {
	Shell      string   `yaml:"shell,omitempty" env:"SHELL,overwrite"`
	Prog       []string `yaml:"prog,omitempty" env:"PROG,overwrite"`
	ScriptPath string   `yaml:"script_path,omitempty" env:"SCRIPT_PATH,overwrite"`
	OutputDir  string   `yaml:"output_dir,omitempty" env:"OUTPUT_DIR,overwrite"`
}

// SetDefault implements [cfgloader.Defaultable]. It trims surrounding
// whitespace from every value, lowercases the shell and cleans the output
// directory.
func (c *Config) SetDefault() {
	c.Shell = strings.ToLower(strings.TrimSpace(c.Shell))
	c.ScriptPath = strings.TrimSpace(c.ScriptPath)
	for i, p := range c.Prog {
		c.Prog[i] = strings.TrimSpace(p)
	}
	if dir := strings.TrimSpace(c.OutputDir); dir != "" {
		c.OutputDir = filepath.Clean(dir)
	} else {
		c.OutputDir = ""
	}
}

// Validate implements [cfgloader.Validatable].
func (c *Config) Validate() error {
	var merr error
	if c.Shell != "" {
		if _, err := completer.ParseShell(c.Shell); err != nil {
			merr = errors.Join(merr, err)
		}
	}
	for i, p := range c.Prog {
		if strings.TrimSpace(p) == "" {
			merr = errors.Join(merr, fmt.Errorf("prog[%d] is empty", i))
		}
	}
	return merr
}

// lookupFunc adapts a [cli.LookupEnvFunc] to an envconfig lookuper.
type lookupFunc cli.LookupEnvFunc

func (f lookupFunc) Lookup(key string) (string, bool) {
	return f(key)
}

// loadConfig reads the optional YAML file at path and applies GENCOMPLETE_
// environment overrides.
func loadConfig(ctx context.Context, lookupEnv cli.LookupEnvFunc, path string) (*Config, error) {
	opts := []cfgloader.Option{
		cfgloader.WithEnvPrefix(envPrefix),
		cfgloader.WithLookuper(lookupFunc(lookupEnv)),
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		opts = append(opts, cfgloader.WithYAML(b))
	}

	var cfg Config
	if err := cfgloader.Load(ctx, &cfg, opts...); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", path, err)
	}
	return &cfg, nil
}
