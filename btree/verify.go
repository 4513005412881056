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

// Verify checks the structural invariants of the tree: strictly ascending
// keys across the whole tree, one more child than entries in every internal
// node, occupancy within [MinEntries, MaxEntries] for every non-root node,
// all leaves at the same depth and an entry count equal to Len.  It returns
// a description of the first violation found.
func (t *Tree[K, V]) Verify() error {
	if t.root == nil {
		if t.length != 0 {
			return fmt.Errorf("btree: nil root with length %d", t.length)
		}
		return nil
	}
	v := verifier[K, V]{min: t.MinEntries(), max: t.MaxEntries(), leafDepth: -1}
	if err := v.visit(t.root, 0, Unbounded[K](), Unbounded[K]()); err != nil {
		return err
	}
	if v.count != t.length {
		return fmt.Errorf("btree: counted %d entries, length is %d", v.count, t.length)
	}
	return nil
}

type verifier[K cmp.Ordered, V any] struct {
	min, max  int
	leafDepth int
	count     int
}

func (v *verifier[K, V]) visit(n *node[K, V], depth int, lo, hi Bound[K]) error {
	if len(n.entries) > v.max {
		return fmt.Errorf("btree: node at depth %d holds %d entries, more than %d", depth, len(n.entries), v.max)
	}
	if depth > 0 && len(n.entries) < v.min {
		return fmt.Errorf("btree: node at depth %d holds %d entries, fewer than %d", depth, len(n.entries), v.min)
	}
	for i, e := range n.entries {
		if !Contains(lo, hi, e.Key) {
			return fmt.Errorf("btree: key %v at depth %d outside (%v, %v)", e.Key, depth, lo, hi)
		}
		if 0 < i && !cmp.Less(n.entries[i-1].Key, e.Key) {
			return fmt.Errorf("btree: keys %v and %v at depth %d out of order", n.entries[i-1].Key, e.Key, depth)
		}
	}
	v.count += len(n.entries)
	if n.leaf() {
		if v.leafDepth < 0 {
			v.leafDepth = depth
		} else if v.leafDepth != depth {
			return fmt.Errorf("btree: leaves at depths %d and %d", v.leafDepth, depth)
		}
		return nil
	}
	if len(n.children) != len(n.entries)+1 {
		return fmt.Errorf("btree: node at depth %d has %d entries and %d children", depth, len(n.entries), len(n.children))
	}
	for i, child := range n.children {
		clo, chi := lo, hi
		if 0 < i {
			clo = Excluded(n.entries[i-1].Key)
		}
		if i < len(n.entries) {
			chi = Excluded(n.entries[i].Key)
		}
		if err := v.visit(child, depth+1, clo, chi); err != nil {
			return err
		}
	}
	return nil
}
