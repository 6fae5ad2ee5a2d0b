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

//nolint:wrapcheck // These functions intentionally just wrap flag.Flag.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kr/text"
)

const maxLineLength = 80

// LookupEnvFunc is the signature of a function for looking up environment
// variables. It matches that of [os.LookupEnv].
type LookupEnvFunc = func(string) (string, bool)

// MapLookuper returns a LookupEnvFunc that reads from a map instead of the
// environment. This is mostly used for testing.
func MapLookuper(m map[string]string) LookupEnvFunc {
	return func(s string) (string, bool) {
		v, ok := m[s]
		return v, ok
	}
}

// FlagSet is the root flag set for creating and managing flag sections.
type FlagSet struct {
	flagSet   *flag.FlagSet
	sections  []*FlagSection
	lookupEnv LookupEnvFunc
}

// Option is an option to the flagset.
type Option func(fs *FlagSet) *FlagSet

// WithLookupEnv defines a custom function for looking up environment variables.
// A nil function is ignored.
func WithLookupEnv(fn LookupEnvFunc) Option {
	return func(fs *FlagSet) *FlagSet {
		if fn != nil {
			fs.lookupEnv = fn
		}
		return fs
	}
}

// NewFlagSet creates a new root flag set.
func NewFlagSet(opts ...Option) *FlagSet {
	f := flag.NewFlagSet("", flag.ContinueOnError)

	// Errors and usage are controlled by the writer.
	f.Usage = func() {}
	f.SetOutput(io.Discard)

	fs := &FlagSet{
		flagSet:   f,
		lookupEnv: os.LookupEnv,
	}

	for _, opt := range opts {
		fs = opt(fs)
	}

	return fs
}

// FlagSection represents a group section of flags. The flags are actually
// "flat" in memory, but maintain a structure for better help output and
// introspection.
type FlagSection struct {
	name  string
	flags []*FlagInfo

	// fields inherited from the parent
	flagSet   *flag.FlagSet
	lookupEnv LookupEnvFunc
}

// FlagInfo describes a single registered flag.
type FlagInfo struct {
	// Name is the primary name of the flag, without leading dashes.
	Name string

	// Aliases are alternate names, without leading dashes.
	Aliases []string

	// Usage is the usage text as written by the developer, without the computed
	// default and environment suffixes.
	Usage string

	// Hidden flags are accepted but not shown.
	Hidden bool

	// IsBool is true for flags that take no value.
	IsBool bool
}

// NewSection creates a new flag section. By convention, section names should be
// all capital letters (e.g. "MY SECTION"), but this is not strictly enforced.
func (f *FlagSet) NewSection(name string) *FlagSection {
	fs := &FlagSection{
		name:      name,
		flagSet:   f.flagSet,
		lookupEnv: f.lookupEnv,
	}
	f.sections = append(f.sections, fs)
	return fs
}

// Arg implements flag.FlagSet#Arg.
func (f *FlagSet) Arg(i int) string {
	return f.flagSet.Arg(i)
}

// Args implements flag.FlagSet#Args.
func (f *FlagSet) Args() []string {
	return f.flagSet.Args()
}

// Lookup implements flag.FlagSet#Lookup.
func (f *FlagSet) Lookup(name string) *flag.Flag {
	return f.flagSet.Lookup(name)
}

// Parse implements flag.FlagSet#Parse.
func (f *FlagSet) Parse(args []string) error {
	return f.flagSet.Parse(args)
}

// VisitFlags calls fn for every flag in every section, in the order sections
// and flags were declared. Hidden flags are included; callers decide whether to
// skip them.
func (f *FlagSet) VisitFlags(fn func(*FlagInfo)) {
	for _, sec := range f.sections {
		for _, info := range sec.flags {
			fn(info)
		}
	}
}

// Help returns formatted help output.
func (f *FlagSet) Help() string {
	var b strings.Builder

	for _, sec := range f.sections {
		flags := append([]*FlagInfo(nil), sec.flags...)
		sort.Slice(flags, func(i, j int) bool {
			return flags[i].Name < flags[j].Name
		})

		fmt.Fprint(&b, sec.name)
		fmt.Fprint(&b, "\n\n")

		for _, info := range flags {
			if info.Hidden {
				continue
			}

			sub := sec.flagSet.Lookup(info.Name)
			if sub == nil {
				panic("inconsistency between flag structure and help")
			}

			typ, ok := sub.Value.(Value)
			if !ok {
				panic(fmt.Sprintf("flag is incorrect type %T", sub.Value))
			}

			// Shortest spelling first.
			aliases := append([]string(nil), info.Aliases...)
			sort.SliceStable(aliases, func(i, j int) bool {
				return len(aliases[i]) < len(aliases[j])
			})
			all := make([]string, 0, len(aliases)+1)
			for _, v := range aliases {
				all = append(all, "-"+v)
			}
			all = append(all, "-"+info.Name)

			if info.IsBool {
				fmt.Fprintf(&b, "    %s\n", strings.Join(all, ", "))
			} else {
				fmt.Fprintf(&b, "    %s=%q\n", strings.Join(all, ", "), typ.Example())
			}

			fmt.Fprint(&b, wrapAtLengthWithPadding(sub.Usage, 8))
			fmt.Fprint(&b, "\n\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// LookupEnv is a convenience function for looking up an environment variable.
// By default, it is the same as [os.LookupEnv], but the lookup function can be
// overridden.
func (f *FlagSet) LookupEnv(k string) (string, bool) {
	return f.lookupEnv(k)
}

// Value is an extension of [flag.Value] which adds additional fields for
// setting examples and defining aliases. All flags with this package must
// satisfy this interface.
type Value interface {
	flag.Value

	// Get returns the value. Even though we know the concrete type with generics,
	// this returns [any] to match the standard library.
	Get() any

	// Example returns an example input for the flag. This only affects help
	// output.
	Example() string

	// IsBoolFlag returns true if the flag accepts no arguments, false otherwise.
	IsBoolFlag() bool
}

// ParserFunc is a function that parses a value into T, or returns an error.
type ParserFunc[T any] func(val string) (T, error)

// PrinterFunc is a function that pretty-prints T.
type PrinterFunc[T any] func(cur T) string

// SetterFunc is a function that sets *T to T.
type SetterFunc[T any] func(cur *T, val T)

// Var is the generic flag definition used by all typed helpers.
type Var[T any] struct {
	Name    string
	Aliases []string
	Usage   string
	Example string
	Default T
	Hidden  bool
	IsBool  bool
	EnvVar  string
	Target  *T

	// Parser and Printer are the generic functions for converting string values
	// to/from the target value. These are populated by the individual flag
	// helpers.
	Parser  ParserFunc[T]
	Printer PrinterFunc[T]

	// Setter defines the function that sets the variable into the target. If nil,
	// it overwrites the entire value of the Target.
	Setter SetterFunc[T]
}

// Flag is a lower-level API for creating a flag on a flag section. Callers
// should use this for defining new flags as it sets defaults and provides more
// granular usage details.
//
// It panics if any of the target, parser, or printer are nil.
func Flag[T any](f *FlagSection, i *Var[T]) {
	if i.Target == nil {
		panic("missing target")
	}
	if i.Parser == nil {
		panic("missing parser func")
	}
	if i.Printer == nil {
		panic("missing printer func")
	}

	setter := i.Setter
	if setter == nil {
		setter = func(cur *T, val T) { *cur = val }
	}

	initial := i.Default
	if i.EnvVar != "" {
		if v, ok := f.lookupEnv(i.EnvVar); ok {
			if t, err := i.Parser(v); err == nil {
				initial = t
			}
		}
	}
	*i.Target = initial

	example := i.Example
	if example == "" {
		example = fmt.Sprintf("%T", *new(T))
	}

	usage := i.Usage
	if v := i.Printer(i.Default); v != "" && !i.IsBool {
		usage += fmt.Sprintf(" The default value is %q.", v)
	}
	if v := i.EnvVar; v != "" {
		usage += fmt.Sprintf(" This option can also be specified with the %s "+
			"environment variable.", v)
	}

	fv := &flagValue[T]{
		target:  i.Target,
		isBool:  i.IsBool,
		example: example,
		parser:  i.Parser,
		printer: i.Printer,
		setter:  setter,
	}

	f.flags = append(f.flags, &FlagInfo{
		Name:    i.Name,
		Aliases: i.Aliases,
		Usage:   i.Usage,
		Hidden:  i.Hidden,
		IsBool:  i.IsBool,
	})
	f.flagSet.Var(fv, i.Name, usage)

	// Aliases share the value. Help output only reads the section metadata, so
	// they are never printed twice.
	for _, alias := range i.Aliases {
		f.flagSet.Var(fv, alias, "")
	}
}

var _ Value = (*flagValue[any])(nil)

type flagValue[T any] struct {
	target  *T
	isBool  bool
	example string

	parser  ParserFunc[T]
	printer PrinterFunc[T]
	setter  SetterFunc[T]
}

func (f *flagValue[T]) Set(s string) error {
	v, err := f.parser(s)
	if err != nil {
		return err
	}
	f.setter(f.target, v)
	return nil
}

func (f *flagValue[T]) Get() any         { return *f.target }
func (f *flagValue[T]) String() string   { return f.printer(*f.target) }
func (f *flagValue[T]) Example() string  { return f.example }
func (f *flagValue[T]) IsBoolFlag() bool { return f.isBool }

type BoolVar struct {
	Name    string
	Aliases []string
	Usage   string
	Default bool
	Hidden  bool
	EnvVar  string
	Target  *bool
}

// BoolVar creates a new boolean variable (true/false). By convention, the
// default value should always be false.
func (f *FlagSection) BoolVar(i *BoolVar) {
	Flag(f, &Var[bool]{
		Name:    i.Name,
		Aliases: i.Aliases,
		Usage:   i.Usage,
		IsBool:  true,
		Default: i.Default,
		Hidden:  i.Hidden,
		EnvVar:  i.EnvVar,
		Target:  i.Target,
		Parser:  strconv.ParseBool,
		Printer: strconv.FormatBool,
	})
}

type IntVar struct {
	Name    string
	Aliases []string
	Usage   string
	Example string
	Default int
	Hidden  bool
	EnvVar  string
	Target  *int
}

func (f *FlagSection) IntVar(i *IntVar) {
	parser := func(s string) (int, error) {
		v, err := strconv.ParseInt(s, 10, 64)
		return int(v), err
	}

	printer := func(v int) string {
		return strconv.FormatInt(int64(v), 10)
	}

	Flag(f, &Var[int]{
		Name:    i.Name,
		Aliases: i.Aliases,
		Usage:   i.Usage,
		Example: i.Example,
		Default: i.Default,
		Hidden:  i.Hidden,
		EnvVar:  i.EnvVar,
		Target:  i.Target,
		Parser:  parser,
		Printer: printer,
	})
}

type StringVar struct {
	Name    string
	Aliases []string
	Usage   string
	Example string
	Default string
	Hidden  bool
	EnvVar  string
	Target  *string
}

func (f *FlagSection) StringVar(i *StringVar) {
	parser := func(s string) (string, error) { return s, nil }
	printer := func(s string) string { return s }

	Flag(f, &Var[string]{
		Name:    i.Name,
		Aliases: i.Aliases,
		Usage:   i.Usage,
		Example: i.Example,
		Default: i.Default,
		Hidden:  i.Hidden,
		EnvVar:  i.EnvVar,
		Target:  i.Target,
		Parser:  parser,
		Printer: printer,
	})
}

type StringSliceVar struct {
	Name    string
	Aliases []string
	Usage   string
	Example string
	Default []string
	Hidden  bool
	EnvVar  string
	Target  *[]string
}

// StringSliceVar defines a repeatable string flag. Each occurrence appends to
// the target; the environment variable is split on commas.
func (f *FlagSection) StringSliceVar(i *StringSliceVar) {
	parser := func(s string) ([]string, error) {
		final := make([]string, 0)
		for _, part := range strings.Split(s, ",") {
			if v := strings.TrimSpace(part); v != "" {
				final = append(final, v)
			}
		}
		if len(final) == 0 {
			return nil, errors.New("value cannot be empty")
		}
		return final, nil
	}

	printer := func(s []string) string {
		return strings.Join(s, ",")
	}

	// The first explicit value replaces the default; later values append.
	var explicit bool
	setter := func(cur *[]string, val []string) {
		if !explicit {
			*cur = nil
		}
		*cur = append(*cur, val...)
	}

	Flag(f, &Var[[]string]{
		Name:    i.Name,
		Aliases: i.Aliases,
		Usage:   i.Usage,
		Example: i.Example,
		Default: i.Default,
		Hidden:  i.Hidden,
		EnvVar:  i.EnvVar,
		Target:  i.Target,
		Parser:  parser,
		Printer: printer,
		Setter: func(cur *[]string, val []string) {
			setter(cur, val)
			explicit = true
		},
	})
}

// wrapAtLengthWithPadding wraps the given text at the maxLineLength, taking
// into account any provided left padding.
func wrapAtLengthWithPadding(s string, pad int) string {
	wrapped := text.Wrap(s, maxLineLength-pad)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(lines, "\n")
}
