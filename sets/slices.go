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

// Package sets provides set operations over slices of comparable values.
package sets

// Union returns every element of the given slices once, in the order in which
// it first appears. It always returns an allocated slice, even when the union
// is empty, and it never modifies its inputs.
func Union[T comparable](slices ...[]T) []T {
	var alloc int
	for _, s := range slices {
		alloc += len(s)
	}

	final := make([]T, 0, alloc)
	seen := make(map[T]struct{}, alloc)
	for _, s := range slices {
		for _, v := range s {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			final = append(final, v)
		}
	}
	return final[:len(final):len(final)]
}

// Subtract returns the elements of s0 that are in none of the other slices, in
// their original order. Duplicates that survive the subtraction are kept. It
// always returns an allocated slice and never modifies its inputs.
func Subtract[T comparable](s0 []T, others ...[]T) []T {
	var alloc int
	for _, s := range others {
		alloc += len(s)
	}

	remove := make(map[T]struct{}, alloc)
	for _, s := range others {
		for _, v := range s {
			remove[v] = struct{}{}
		}
	}

	final := make([]T, 0, len(s0))
	for _, v := range s0 {
		if _, ok := remove[v]; !ok {
			final = append(final, v)
		}
	}
	return final
}
