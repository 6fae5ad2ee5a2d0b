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

// Package renderer renders plain-text templates loaded from a filesystem
// ([fs.FS]). It is used to produce generated source such as shell scripts, so
// it uses [text/template] and never applies HTML escaping.
//
// Templates are parsed once when the renderer is created and are immutable
// afterwards, so a single renderer is safe for concurrent use. Most callers
// embed their templates:
//
//	//go:embed templates/*.tpl
//	var templatesFS embed.FS
//
//	r, err := renderer.New(ctx, templatesFS,
//	  renderer.WithDelims("<%", "%>"))
//
// Each file is registered under its base name without the extension, so
// "templates/bash.tpl" is rendered with:
//
//	out, err := r.Render("bash", data)
//
// Generated shell code is full of "$", "#" and "{" characters, so custom
// delimiters that never occur in the target language are recommended.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"
)

// Renderer is responsible for rendering text templates. This implementation
// caches templates and uses a pool of buffers.
type Renderer struct {
	// rendererPool is a pool of *bytes.Buffer, used as a rendering buffer to
	// prevent partial output being returned to callers.
	rendererPool *sync.Pool

	// templates is the parsed collection of templates. It is never modified
	// after New returns.
	templates *template.Template

	// fs is the underlying filesystem to read.
	fs fs.FS

	// extension is the file extension of templates to load, including the dot.
	extension string

	// leftDelim and rightDelim are the action delimiters. Empty values use the
	// text/template defaults.
	leftDelim, rightDelim string

	// missingKey is the text/template "missingkey" option.
	missingKey string
}

// Option is an interface for options to creating a renderer.
type Option func(*Renderer) *Renderer

// WithDelims sets the action delimiters used by all templates.
func WithDelims(left, right string) Option {
	return func(r *Renderer) *Renderer {
		r.leftDelim = left
		r.rightDelim = right
		return r
	}
}

// WithExtension sets the file extension of templates to load. The default is
// ".tpl".
func WithExtension(ext string) Option {
	return func(r *Renderer) *Renderer {
		r.extension = ext
		return r
	}
}

// WithMissingKey sets the text/template "missingkey" behavior ("default",
// "zero" or "error"). The default is "error", so a template referencing an
// undefined slot fails instead of emitting "<no value>" into generated code.
func WithMissingKey(v string) Option {
	return func(r *Renderer) *Renderer {
		r.missingKey = v
		return r
	}
}

// New creates a new renderer and parses every template in fsys.
func New(ctx context.Context, fsys fs.FS, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		rendererPool: &sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, 4096))
			},
		},
		fs:         fsys,
		extension:  ".tpl",
		missingKey: "error",
	}

	for _, opt := range opts {
		if opt != nil {
			r = opt(r)
		}
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	return r, nil
}

// Render executes the named template with data and returns the result. On
// error nothing is returned, never a partial rendering.
func (r *Renderer) Render(name string, data any) (string, error) {
	b, ok := r.rendererPool.Get().(*bytes.Buffer)
	if !ok || b == nil {
		b = new(bytes.Buffer)
	}
	b.Reset()
	defer r.rendererPool.Put(b)

	if err := r.executeTemplate(b, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return b.String(), nil
}

// Names returns the sorted names of all loaded templates.
func (r *Renderer) Names() []string {
	if r.templates == nil {
		return nil
	}

	names := make([]string, 0, 4)
	for _, t := range r.templates.Templates() {
		if n := t.Name(); n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// executeTemplate executes a single template with the provided data.
func (r *Renderer) executeTemplate(w io.Writer, name string, data any) error {
	if r.templates == nil {
		return fmt.Errorf("no templates are defined")
	}

	if r.templates.Lookup(name) == nil {
		return fmt.Errorf("template %q is not defined", name)
	}

	return r.templates.ExecuteTemplate(w, name, data) //nolint:wrapcheck // Wrapped by the caller
}

// loadTemplates loads all templates.
func (r *Renderer) loadTemplates() error {
	if r.fs == nil {
		return nil
	}

	tmpl := template.New("").
		Option("missingkey=" + r.missingKey).
		Delims(r.leftDelim, r.rightDelim)

	if err := loadTemplates(r.fs, tmpl, r.extension); err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	r.templates = tmpl
	return nil
}

func loadTemplates(fsys fs.FS, tmpl *template.Template, ext string) error {
	if err := fs.WalkDir(fsys, ".", func(pth string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(info.Name(), ext) {
			return nil
		}

		b, err := fs.ReadFile(fsys, pth)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", pth, err)
		}

		name := strings.TrimSuffix(path.Base(pth), ext)
		if tmpl.Lookup(name) != nil {
			return fmt.Errorf("duplicate template %q at %s", name, pth)
		}
		if _, err := tmpl.New(name).Parse(string(b)); err != nil {
			return fmt.Errorf("failed to parse %s: %w", pth, err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("failed to walk filesystem for templates: %w", err)
	}

	return nil
}
