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
	"strings"
	"unicode/utf8"
)

// describeSpecials are escaped with a backslash inside a description.
const describeSpecials = "\"'#&;`|*?~<>^()[]{}$\\\nÿ"

// Describe formats value and an optional description as a double quoted
// "value:description" token understood by zsh's _describe. Colons in value are
// escaped so that only the first unescaped colon separates the two parts.
func Describe(value, description string) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(value, ":", `\:`))
	if description != "" {
		b.WriteByte(':')
		b.WriteString(strings.Trim(quoteArg(escapeSpecials(description)), `"`))
	}
	b.WriteByte('"')
	return b.String()
}

func escapeSpecials(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != utf8.RuneError && strings.ContainsRune(describeSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// quoteArg quotes a single argument using the Microsoft C runtime rules:
// arguments containing blanks are double quoted, backslashes are literal unless
// they precede a double quote, in which case they are doubled and the quote is
// escaped.
func quoteArg(s string) string {
	needQuote := s == "" || strings.ContainsAny(s, " \t")

	var b strings.Builder
	if needQuote {
		b.WriteByte('"')
	}

	slashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			slashes++
			continue
		case '"':
			b.WriteString(strings.Repeat(`\`, slashes*2))
			b.WriteString(`\"`)
		default:
			b.WriteString(strings.Repeat(`\`, slashes))
			b.WriteByte(c)
		}
		slashes = 0
	}
	b.WriteString(strings.Repeat(`\`, slashes))

	if needQuote {
		b.WriteString(strings.Repeat(`\`, slashes))
		b.WriteByte('"')
	}
	return b.String()
}
