// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package btree

import (
	"cmp"
	"fmt"
)

// Entry represents a single key-value pair in the tree.
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// String formats the entry as key:value.
func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v:%v", e.Key, e.Value)
}

type boundKind int

const (
	unbounded boundKind = iota
	included
	excluded
)

// Bound is one end of a key range.  The zero value is unbounded.
type Bound[K cmp.Ordered] struct {
	kind boundKind
	key  K
}

// Unbounded returns a bound that admits every key.
func Unbounded[K cmp.Ordered]() Bound[K] {
	return Bound[K]{}
}

// Included returns a bound that admits key itself.
func Included[K cmp.Ordered](key K) Bound[K] {
	return Bound[K]{kind: included, key: key}
}

// Excluded returns a bound that stops just short of key.
func Excluded[K cmp.Ordered](key K) Bound[K] {
	return Bound[K]{kind: excluded, key: key}
}

// IsUnbounded reports whether the bound admits every key.
func (b Bound[K]) IsUnbounded() bool {
	return b.kind == unbounded
}

// Key returns the bounding key and whether the bound includes it.  It returns
// (zeroValue, false) for an unbounded bound.
func (b Bound[K]) Key() (key K, inclusive bool) {
	return b.key, b.kind == included
}

// lowerAdmits tests whether key satisfies b used as a lower bound.
func (b Bound[K]) lowerAdmits(key K) bool {
	switch b.kind {
	case included:
		return !cmp.Less(key, b.key)
	case excluded:
		return cmp.Less(b.key, key)
	default:
		return true
	}
}

// upperAdmits tests whether key satisfies b used as an upper bound.
func (b Bound[K]) upperAdmits(key K) bool {
	switch b.kind {
	case included:
		return !cmp.Less(b.key, key)
	case excluded:
		return cmp.Less(key, b.key)
	default:
		return true
	}
}

// Contains tests whether key lies within [lo, hi] under the inclusivity of
// each bound.
func Contains[K cmp.Ordered](lo, hi Bound[K], key K) bool {
	return lo.lowerAdmits(key) && hi.upperAdmits(key)
}

func (b Bound[K]) String() string {
	switch b.kind {
	case included:
		return fmt.Sprintf("Included(%v)", b.key)
	case excluded:
		return fmt.Sprintf("Excluded(%v)", b.key)
	default:
		return "Unbounded"
	}
}
