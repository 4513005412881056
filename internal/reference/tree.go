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

package reference

import "github.com/9rum/simpletree/btree"

// Tree adapts a B-tree to Map.
type Tree struct {
	tree *btree.Tree[uint32, uint32]
}

// NewTree creates an empty B-tree map whose non-root nodes hold at least
// minEntries entries.
func NewTree(minEntries int) *Tree {
	return &Tree{tree: btree.NewWithMinEntries[uint32, uint32](minEntries)}
}

// Unwrap returns the underlying tree.
func (t *Tree) Unwrap() *btree.Tree[uint32, uint32] {
	return t.tree
}

func (t *Tree) Insert(key, value uint32) error {
	t.tree.Insert(key, value)
	return nil
}

func (t *Tree) Remove(key uint32) (Pair, bool, error) {
	e, ok := t.tree.Remove(key)
	return Pair{Key: e.Key, Value: e.Value}, ok, nil
}

func (t *Tree) Get(key uint32) (Pair, bool, error) {
	e, ok := t.tree.Get(key)
	return Pair{Key: e.Key, Value: e.Value}, ok, nil
}

func (t *Tree) Scan(lo, hi btree.Bound[uint32], fn func(Pair) bool) error {
	t.tree.Ascend(lo, hi, func(e btree.Entry[uint32, uint32]) bool {
		return fn(Pair{Key: e.Key, Value: e.Value})
	})
	return nil
}

func (t *Tree) Len() int {
	return t.tree.Len()
}

func (t *Tree) Clone() (Map, error) {
	return &Tree{tree: t.tree.Clone()}, nil
}

func (t *Tree) Close() error {
	t.tree.Clear(false)
	return nil
}

// Verify checks the structural invariants of the underlying tree.
func (t *Tree) Verify() error {
	return t.tree.Verify()
}
