// Copyright 2014 Google Inc.
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

// Package btree implements an in-memory B-tree map from ordered keys to
// values.
//
// Each node holds a slice of entries and a (possibly nil) slice of children.
// A tree with minimum occupancy A keeps every non-root node between A and
// 2A+1 entries.  Insertion splits a full child before descending into it and
// deletion grows a minimal child before descending into it, so neither ever
// has to walk back up the tree.  Height grows only when the root is split and
// shrinks only when the root is emptied by a merge.
//
// Range iteration is lazy: an Iterator walks the tree with an explicit stack
// of frames, one entry per call to Next, and never allocates more frames than
// the tree is tall.
//
// A Tree is not safe for concurrent use.  An Iterator must not be advanced
// after the tree it came from has been modified.
package btree

import (
	"cmp"
	"iter"
)

// DefaultMinEntries is the minimum number of entries in a non-root node of a
// tree created with New.
const DefaultMinEntries = 11

// EntryIterator allows callers of Ascend to iterate in-order over portions of
// the tree.  When this function returns false, iteration will stop and Ascend
// will immediately return.
type EntryIterator[K cmp.Ordered, V any] func(e Entry[K, V]) bool

// New creates a new, empty B-tree with DefaultMinEntries.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return NewWithMinEntries[K, V](DefaultMinEntries)
}

// NewWithMinEntries creates a new B-tree whose non-root nodes hold between
// minEntries and 2*minEntries+1 entries.
//
// NewWithMinEntries(1), for example, will create a tree whose nodes contain
// 1-3 entries and 2-4 children.
func NewWithMinEntries[K cmp.Ordered, V any](minEntries int) *Tree[K, V] {
	if minEntries < 1 {
		panic("bad degree")
	}
	return &Tree[K, V]{
		min:  minEntries,
		free: newFreeList[K, V](DefaultFreeListSize),
	}
}

// Tree is a generic implementation of a B-tree.
//
// The zero value is an empty tree with DefaultMinEntries, ready to use.
type Tree[K cmp.Ordered, V any] struct {
	min    int
	length int
	root   *node[K, V]
	free   *freeList[K, V]
}

// MinEntries returns the minimum number of entries in a non-root node.
func (t *Tree[K, V]) MinEntries() int {
	if t.min == 0 {
		return DefaultMinEntries
	}
	return t.min
}

// MaxEntries returns the number of entries at which a node is split.
func (t *Tree[K, V]) MaxEntries() int {
	return t.MinEntries()*2 + 1
}

func (t *Tree[K, V]) freelist() *freeList[K, V] {
	if t.free == nil {
		t.free = newFreeList[K, V](DefaultFreeListSize)
	}
	return t.free
}

// Clone returns a deep copy of the tree.  The two trees share no nodes and
// may be modified independently.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	out := &Tree[K, V]{
		min:    t.min,
		length: t.length,
		free:   newFreeList[K, V](DefaultFreeListSize),
	}
	if t.root != nil {
		out.root = t.root.clone(out.free)
	}
	return out
}

// Insert adds the given key-value pair to the tree, overwriting the value of
// an existing entry with an equal key.
func (t *Tree[K, V]) Insert(key K, value V) {
	t.ReplaceOrInsert(key, value)
}

// ReplaceOrInsert adds the given key-value pair to the tree.  If an entry in
// the tree already has an equal key, its value is overwritten, the previous
// entry is returned, and the second return value is true.  Otherwise,
// (zeroValue, false).
func (t *Tree[K, V]) ReplaceOrInsert(key K, value V) (_ Entry[K, V], _ bool) {
	e := Entry[K, V]{Key: key, Value: value}
	if t.root == nil {
		t.root = t.freelist().newNode()
		t.root.entries = append(t.root.entries, e)
		t.length++
		return
	}
	if maxEntries := t.MaxEntries(); maxEntries <= len(t.root.entries) {
		e2, second := t.root.split(maxEntries / 2)
		oldroot := t.root
		t.root = t.freelist().newNode()
		t.root.entries = append(t.root.entries, e2)
		t.root.children = append(t.root.children, oldroot, second)
	}
	out, outb := t.root.insert(e, t.MaxEntries())
	if !outb {
		t.length++
	}
	return out, outb
}

// Remove removes the entry with the given key from the tree, returning it.
// If no such entry exists, returns (zeroValue, false).
func (t *Tree[K, V]) Remove(key K) (Entry[K, V], bool) {
	return t.remove(key, removeEntry)
}

// RemoveMin removes the smallest entry in the tree and returns it.
// If no such entry exists, returns (zeroValue, false).
func (t *Tree[K, V]) RemoveMin() (Entry[K, V], bool) {
	var zero K
	return t.remove(zero, removeMin)
}

// RemoveMax removes the largest entry in the tree and returns it.
// If no such entry exists, returns (zeroValue, false).
func (t *Tree[K, V]) RemoveMax() (Entry[K, V], bool) {
	var zero K
	return t.remove(zero, removeMax)
}

func (t *Tree[K, V]) remove(key K, typ toRemove) (_ Entry[K, V], _ bool) {
	if t.root == nil || len(t.root.entries) == 0 {
		return
	}
	out, outb := t.root.remove(key, t.MinEntries(), typ)
	if len(t.root.entries) == 0 && !t.root.leaf() {
		oldroot := t.root
		t.root = t.root.children[0]
		t.freelist().freeNode(oldroot)
	}
	if outb {
		t.length--
	}
	return out, outb
}

// Get looks for the given key in the tree, returning its entry.  It returns
// (zeroValue, false) if unable to find that key.
func (t *Tree[K, V]) Get(key K) (_ Entry[K, V], _ bool) {
	if t.root == nil {
		return
	}
	return t.root.get(key)
}

// Has returns true if the given key is in the tree.
func (t *Tree[K, V]) Has(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// Min returns the smallest entry in the tree, or (zeroValue, false) if the
// tree is empty.
func (t *Tree[K, V]) Min() (Entry[K, V], bool) {
	return min(t.root)
}

// Max returns the largest entry in the tree, or (zeroValue, false) if the
// tree is empty.
func (t *Tree[K, V]) Max() (Entry[K, V], bool) {
	return max(t.root)
}

// Len returns the number of entries currently in the tree.
func (t *Tree[K, V]) Len() int {
	return t.length
}

// Height returns the number of levels in the tree, zero for a tree that has
// never held an entry.
func (t *Tree[K, V]) Height() int {
	return t.root.height()
}

// Range returns a lazy iterator over the entries whose keys lie within the
// given bounds, in ascending key order.  Each call starts a fresh traversal.
func (t *Tree[K, V]) Range(lo, hi Bound[K]) *Iterator[K, V] {
	return newIterator(t.root, lo, hi)
}

// Ascend calls the iterator for every entry in the tree within the given
// bounds, until iterator returns false.
func (t *Tree[K, V]) Ascend(lo, hi Bound[K], iterator EntryIterator[K, V]) {
	it := t.Range(lo, hi)
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		if !iterator(e) {
			return
		}
	}
}

// All returns a sequence of every key-value pair in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.Ascend(Unbounded[K](), Unbounded[K](), func(e Entry[K, V]) bool {
			return yield(e.Key, e.Value)
		})
	}
}

// Clear removes all entries from the tree.  If addNodesToFreelist is true,
// t's nodes are added to its freelist as part of this call, until the freelist
// is full.  Otherwise, the root node is simply dereferenced and the subtree
// left to Go's normal GC processes.
func (t *Tree[K, V]) Clear(addNodesToFreelist bool) {
	if t.root != nil && addNodesToFreelist {
		t.root.reset(t.freelist())
	}
	t.root, t.length = nil, 0
}
