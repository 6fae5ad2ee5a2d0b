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
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/abcxyz/gencomplete/renderer"
	"github.com/abcxyz/gencomplete/sets"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// loadTemplates parses the embedded dialect templates on first use. The result
// is shared by every [Completer].
var loadTemplates = sync.OnceValues(func() (*renderer.Renderer, error) {
	return newTemplates(templatesFS)
})

// newTemplates parses the dialect templates in fsys. Every supported shell must
// have a template.
func newTemplates(fsys fs.FS) (*renderer.Renderer, error) {
	r, err := renderer.New(context.Background(), fsys,
		renderer.WithExtension(".tpl"),
		renderer.WithDelims("<%", "%>"),
		renderer.WithMissingKey("error"))
	if err != nil {
		return nil, fmt.Errorf("failed to load completion templates: %w", err)
	}

	if missing := sets.Subtract(shellNames(), r.Names()); len(missing) > 0 {
		return nil, fmt.Errorf("missing completion templates for %s", strings.Join(missing, ", "))
	}
	return r, nil
}
