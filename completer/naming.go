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
	"crypto/md5" //nolint:gosec // Not used for security.
	"encoding/hex"
	"regexp"
	"strings"
)

var invalidFuncChars = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// FunctionName returns the name of the completion function registered for
// scriptName. The name embeds a digest of scriptPath so that two installs of
// the same program at different paths do not clobber each other.
func FunctionName(scriptName, scriptPath string) string {
	sum := md5.Sum([]byte(scriptPath)) //nolint:gosec // Not used for security.
	return "_" + sanitizeFuncName(scriptName) + "_" + hex.EncodeToString(sum[:])[:16] + "_complete"
}

// sanitizeFuncName maps dashes to underscores and drops anything else that is
// not a valid identifier character. Case is preserved.
func sanitizeFuncName(name string) string {
	return invalidFuncChars.ReplaceAllString(strings.ReplaceAll(name, "-", "_"), "")
}
