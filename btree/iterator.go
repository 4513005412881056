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

import "cmp"

// frame is a pending step of a range traversal: resume node n at entry i,
// and once n is exhausted, yield after if it is set.
type frame[K cmp.Ordered, V any] struct {
	n     *node[K, V]
	i     int
	after *Entry[K, V]
}

// Iterator yields the entries of a tree within a pair of bounds in ascending
// key order.  It holds references into the tree and sees the tree as it is
// when Next is called.
type Iterator[K cmp.Ordered, V any] struct {
	lo, hi Bound[K]
	stack  []frame[K, V]
}

func newIterator[K cmp.Ordered, V any](root *node[K, V], lo, hi Bound[K]) *Iterator[K, V] {
	it := &Iterator[K, V]{lo: lo, hi: hi}
	if root != nil {
		// Each level holds at most one continuation frame, plus the frame
		// being descended into.
		it.stack = make([]frame[K, V], 0, root.height()+1)
		it.stack = append(it.stack, frame[K, V]{n: root})
	}
	return it
}

// Next returns the next entry in the range.  It returns (zeroValue, false)
// once the range is exhausted, and keeps doing so on later calls.
func (it *Iterator[K, V]) Next() (_ Entry[K, V], _ bool) {
	for 0 < len(it.stack) {
		f := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		n, i := f.n, f.i
		for i < len(n.entries) && !it.lo.lowerAdmits(n.entries[i].Key) {
			i++
		}

		if !n.leaf() {
			if i < len(n.entries) && it.hi.upperAdmits(n.entries[i].Key) {
				it.stack = append(it.stack,
					frame[K, V]{n: n, i: i + 1, after: f.after},
					frame[K, V]{n: n.children[i], after: &n.entries[i]})
			} else {
				it.stack = append(it.stack, frame[K, V]{n: n.children[i], after: f.after})
			}
			continue
		}

		if i < len(n.entries) {
			e := n.entries[i]
			if !it.hi.upperAdmits(e.Key) {
				// everything still on the stack is larger
				it.stack = it.stack[:0]
				return
			}
			it.stack = append(it.stack, frame[K, V]{n: n, i: i + 1, after: f.after})
			return e, true
		}
		if f.after != nil {
			return *f.after, true
		}
	}
	return
}

// Collect drains the iterator into a slice.
func (it *Iterator[K, V]) Collect() (out []Entry[K, V]) {
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		out = append(out, e)
	}
	return
}
