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

// Package slices provides generic helpers over slices.
package slices

// Map returns a slice holding the result of mapper for every element of slice.
// A nil slice maps to nil.
func Map[T1, T2 any](slice []T1, mapper func(T1) T2) []T2 {
	if mapper == nil {
		panic("nil mapping function provided")
	}
	if slice == nil {
		return nil
	}

	result := make([]T2, len(slice))
	for i, v := range slice {
		result[i] = mapper(v)
	}
	return result
}
