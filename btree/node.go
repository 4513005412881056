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

package btree

import (
	"cmp"
	"sort"
)

// DefaultFreeListSize is the number of released nodes a tree keeps for reuse.
const DefaultFreeListSize = 32

// freeList holds released nodes of a single tree.  It is not synchronized;
// a tree and its free list belong to one goroutine at a time.
type freeList[K cmp.Ordered, V any] struct {
	freelist children[K, V]
}

func newFreeList[K cmp.Ordered, V any](size int) *freeList[K, V] {
	return &freeList[K, V]{freelist: make(children[K, V], 0, size)}
}

func (f *freeList[K, V]) newNode() (n *node[K, V]) {
	index := len(f.freelist) - 1
	if index < 0 {
		return &node[K, V]{free: f}
	}
	n = f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	n.free = f
	return
}

// freeNode adds the given node to the list, returning true if it was added
// and false if it was discarded.
func (f *freeList[K, V]) freeNode(n *node[K, V]) (out bool) {
	n.entries.truncate(0)
	n.children.truncate(0)
	n.free = nil
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		out = true
	}
	return
}

// entries stores entries in a node.
type entries[K cmp.Ordered, V any] []Entry[K, V]

// insertAt inserts a value into the given index, pushing all subsequent values
// forward.
func (s *entries[K, V]) insertAt(index int, e Entry[K, V]) {
	var zero Entry[K, V]
	*s = append(*s, zero)
	if index < len(*s) {
		copy((*s)[index+1:], (*s)[index:])
	}
	(*s)[index] = e
}

// removeAt removes a value at a given index, pulling all subsequent values
// back.
func (s *entries[K, V]) removeAt(index int) Entry[K, V] {
	e := (*s)[index]
	copy((*s)[index:], (*s)[index+1:])
	var zero Entry[K, V]
	(*s)[len(*s)-1] = zero
	*s = (*s)[:len(*s)-1]
	return e
}

// pop removes and returns the last element in the list.
func (s *entries[K, V]) pop() (out Entry[K, V]) {
	index := len(*s) - 1
	out = (*s)[index]
	var zero Entry[K, V]
	(*s)[index] = zero
	*s = (*s)[:index]
	return
}

// truncate truncates this instance at index so that it contains only the
// first index entries. index must be less than or equal to length.
func (s *entries[K, V]) truncate(index int) {
	var toClear entries[K, V]
	*s, toClear = (*s)[:index], (*s)[index:]
	var zero Entry[K, V]
	for i := 0; i < len(toClear); i++ {
		toClear[i] = zero
	}
}

// find returns the index where the given key should be inserted into this
// list.  'found' is true if the key already exists in the list at the given
// index.
func (s entries[K, V]) find(key K) (index int, found bool) {
	i := sort.Search(len(s), func(i int) bool {
		return cmp.Less(key, s[i].Key)
	})
	if 0 < i && !cmp.Less(s[i-1].Key, key) {
		return i - 1, true
	}
	return i, false
}

// children stores child nodes in a node.
type children[K cmp.Ordered, V any] []*node[K, V]

// insertAt inserts a value into the given index, pushing all subsequent values
// forward.
func (c *children[K, V]) insertAt(index int, n *node[K, V]) {
	*c = append(*c, nil)
	if index < len(*c) {
		copy((*c)[index+1:], (*c)[index:])
	}
	(*c)[index] = n
}

// removeAt removes a value at a given index, pulling all subsequent values
// back.
func (c *children[K, V]) removeAt(index int) *node[K, V] {
	n := (*c)[index]
	copy((*c)[index:], (*c)[index+1:])
	(*c)[len(*c)-1] = nil
	*c = (*c)[:len(*c)-1]
	return n
}

// pop removes and returns the last element in the list.
func (c *children[K, V]) pop() (out *node[K, V]) {
	index := len(*c) - 1
	out = (*c)[index]
	(*c)[index] = nil
	*c = (*c)[:index]
	return
}

// truncate truncates this instance at index so that it contains only the
// first index children. index must be less than or equal to length.
func (c *children[K, V]) truncate(index int) {
	var toClear children[K, V]
	*c, toClear = (*c)[:index], (*c)[index:]
	for i := 0; i < len(toClear); i++ {
		toClear[i] = nil
	}
}

// node is a single node in a tree.
//
// It must at all times maintain the invariant that either
//   - len(children) == 0, len(entries) unconstrained
//   - len(children) == len(entries) + 1
type node[K cmp.Ordered, V any] struct {
	entries  entries[K, V]
	children children[K, V]
	free     *freeList[K, V]
}

func (n *node[K, V]) leaf() bool {
	return len(n.children) == 0
}

// split splits the given node at the given index.  The current node shrinks,
// and this function returns the entry that existed at that index and a new node
// containing all entries/children after it.
func (n *node[K, V]) split(i int) (Entry[K, V], *node[K, V]) {
	e := n.entries[i]
	next := n.free.newNode()
	next.entries = append(next.entries, n.entries[i+1:]...)
	n.entries.truncate(i)
	if !n.leaf() {
		next.children = append(next.children, n.children[i+1:]...)
		n.children.truncate(i + 1)
	}
	return e, next
}

// maybeSplitChild checks if a child should be split, and if so splits it.
// Returns whether or not a split occurred.
func (n *node[K, V]) maybeSplitChild(i, maxEntries int) bool {
	if len(n.children[i].entries) < maxEntries {
		return false
	}
	first := n.children[i]
	e, second := first.split(maxEntries / 2)
	n.entries.insertAt(i, e)
	n.children.insertAt(i+1, second)
	return true
}

// insert inserts an entry into the subtree rooted at this node, making sure
// no nodes in the subtree exceed maxEntries entries.  Should an entry with an
// equal key be found, its value is overwritten and the previous entry
// returned.
func (n *node[K, V]) insert(e Entry[K, V], maxEntries int) (_ Entry[K, V], _ bool) {
	i, found := n.entries.find(e.Key)
	if found {
		out := n.entries[i]
		n.entries[i].Value = e.Value
		return out, true
	}
	if n.leaf() {
		n.entries.insertAt(i, e)
		return
	}
	if n.maybeSplitChild(i, maxEntries) {
		inTree := n.entries[i]
		switch {
		case cmp.Less(e.Key, inTree.Key):
			// no change, we want first split node
		case cmp.Less(inTree.Key, e.Key):
			i++ // we want second split node
		default:
			n.entries[i].Value = e.Value
			return inTree, true
		}
	}
	return n.children[i].insert(e, maxEntries)
}

// get finds the given key in the subtree and returns its entry.
func (n *node[K, V]) get(key K) (_ Entry[K, V], _ bool) {
	for {
		i, found := n.entries.find(key)
		if found {
			return n.entries[i], true
		}
		if n.leaf() {
			return
		}
		n = n.children[i]
	}
}

// min returns the first entry in the subtree.
func min[K cmp.Ordered, V any](n *node[K, V]) (_ Entry[K, V], found bool) {
	if n == nil {
		return
	}
	for !n.leaf() {
		n = n.children[0]
	}
	if len(n.entries) == 0 {
		return
	}
	return n.entries[0], true
}

// max returns the last entry in the subtree.
func max[K cmp.Ordered, V any](n *node[K, V]) (_ Entry[K, V], found bool) {
	if n == nil {
		return
	}
	for !n.leaf() {
		n = n.children[len(n.children)-1]
	}
	if len(n.entries) == 0 {
		return
	}
	return n.entries[len(n.entries)-1], true
}

// clone returns a deep copy of the subtree whose nodes come from f.
func (n *node[K, V]) clone(f *freeList[K, V]) *node[K, V] {
	out := f.newNode()
	out.entries = append(out.entries, n.entries...)
	for _, child := range n.children {
		out.children = append(out.children, child.clone(f))
	}
	return out
}

// toRemove details what entry to remove in a node.remove call.
type toRemove int

const (
	removeEntry toRemove = iota // removes the entry with the given key
	removeMin                   // removes smallest entry in the subtree
	removeMax                   // removes largest entry in the subtree
)

// remove removes an entry from the subtree rooted at this node.
func (n *node[K, V]) remove(key K, minEntries int, typ toRemove) (_ Entry[K, V], _ bool) {
	var (
		i     int
		found bool
	)
	switch typ {
	case removeMax:
		if n.leaf() {
			return n.entries.pop(), true
		}
		i = len(n.entries)
	case removeMin:
		if n.leaf() {
			return n.entries.removeAt(0), true
		}
		i = 0
	case removeEntry:
		i, found = n.entries.find(key)
		if n.leaf() {
			if found {
				return n.entries.removeAt(i), true
			}
			return
		}
	default:
		panic("invalid type")
	}
	// If we get to here, we have children.
	if len(n.children[i].entries) <= minEntries {
		return n.growChildAndRemove(i, key, minEntries, typ)
	}
	child := n.children[i]
	// Either we had enough entries to begin with, or we've done some
	// merging/stealing, because we've got enough now and we're ready to return
	// stuff.
	if found {
		// The entry sits at index 'i' as a separator.  Its in-order predecessor
		// is the rightmost leaf entry of child 'i', which can give one up since
		// it holds more than minEntries.
		out := n.entries[i]
		var zero K
		n.entries[i], _ = child.remove(zero, minEntries, removeMax)
		return out, true
	}
	// Final recursive call.  Once we're here, we know that the entry isn't in
	// this node and that the child is big enough to remove from.
	return child.remove(key, minEntries, typ)
}

// growChildAndRemove grows child 'i' to make sure it's possible to remove an
// entry from it while keeping it at minEntries, then calls remove to actually
// remove it.
//
// Whether the key sits in this node or below it, the child is first given
// more than minEntries entries by one of:
//
//	a) left sibling has an entry to spare
//	b) right sibling has an entry to spare
//	c) we must merge
//
// We then simply redo our remove call, and the second time the child is big
// enough to descend into.
func (n *node[K, V]) growChildAndRemove(i int, key K, minEntries int, typ toRemove) (Entry[K, V], bool) {
	if len(n.children) < 2 {
		panic("btree: rebalance without a sibling")
	}
	if 0 < i && minEntries < len(n.children[i-1].entries) {
		// Steal from left child
		child := n.children[i]
		stealFrom := n.children[i-1]
		stolen := stealFrom.entries.pop()
		child.entries.insertAt(0, n.entries[i-1])
		n.entries[i-1] = stolen
		if !stealFrom.leaf() {
			child.children.insertAt(0, stealFrom.children.pop())
		}
	} else if i < len(n.entries) && minEntries < len(n.children[i+1].entries) {
		// steal from right child
		child := n.children[i]
		stealFrom := n.children[i+1]
		stolen := stealFrom.entries.removeAt(0)
		child.entries = append(child.entries, n.entries[i])
		n.entries[i] = stolen
		if !stealFrom.leaf() {
			child.children = append(child.children, stealFrom.children.removeAt(0))
		}
	} else {
		if len(n.entries) <= i {
			i--
		}
		child := n.children[i]
		// merge with right child
		mergeEntry := n.entries.removeAt(i)
		mergeChild := n.children.removeAt(i + 1)
		child.entries = append(child.entries, mergeEntry)
		child.entries = append(child.entries, mergeChild.entries...)
		child.children = append(child.children, mergeChild.children...)
		n.free.freeNode(mergeChild)
	}
	return n.remove(key, minEntries, typ)
}

// height returns the number of levels in the subtree.
func (n *node[K, V]) height() (h int) {
	for ; n != nil; h++ {
		if n.leaf() {
			return h + 1
		}
		n = n.children[0]
	}
	return
}

// reset returns a subtree to the freelist.  It breaks out immediately if the
// freelist is full, since the only benefit of iterating is to fill that
// freelist up.  Returns true if parent reset call should continue.
func (n *node[K, V]) reset(f *freeList[K, V]) bool {
	for _, child := range n.children {
		if !child.reset(f) {
			return false
		}
	}
	return f.freeNode(n)
}
