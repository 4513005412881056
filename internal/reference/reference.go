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

// Package reference provides ordered maps from uint32 keys to uint32 values
// behind one interface, so that the B-tree can be checked and measured
// against independent implementations.
package reference

import (
	"github.com/9rum/simpletree/btree"
)

// Pair is a single key-value pair of a map.
type Pair struct {
	Key, Value uint32
}

// Map is an ordered map.  Implementations are not safe for concurrent use.
type Map interface {
	// Insert sets the value of key, adding key if it is absent.
	Insert(key, value uint32) error

	// Remove deletes key and returns the pair it held.  found is false if key
	// was absent.
	Remove(key uint32) (pair Pair, found bool, err error)

	// Get returns the pair held by key.
	Get(key uint32) (pair Pair, found bool, err error)

	// Scan calls fn for every pair within [lo, hi] in ascending key order,
	// until fn returns false.
	Scan(lo, hi btree.Bound[uint32], fn func(Pair) bool) error

	// Len returns the number of pairs in the map.
	Len() int

	// Clone returns an independent copy of the map.
	Clone() (Map, error)

	// Close releases the resources held by the map.
	Close() error
}

// Collect returns every pair of m within [lo, hi] in ascending key order.
func Collect(m Map, lo, hi btree.Bound[uint32]) (pairs []Pair, err error) {
	err = m.Scan(lo, hi, func(p Pair) bool {
		pairs = append(pairs, p)
		return true
	})
	return
}

// All returns every pair of m in ascending key order.
func All(m Map) ([]Pair, error) {
	return Collect(m, btree.Unbounded[uint32](), btree.Unbounded[uint32]())
}
