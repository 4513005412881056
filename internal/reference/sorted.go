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

import (
	"cmp"
	"slices"

	"github.com/9rum/simpletree/btree"
)

// Sorted is a map kept as a sorted slice of pairs.
type Sorted struct {
	pairs []Pair
}

// NewSorted creates an empty sorted slice map.
func NewSorted() *Sorted {
	return &Sorted{}
}

func (s *Sorted) find(key uint32) (int, bool) {
	return slices.BinarySearchFunc(s.pairs, key, func(p Pair, key uint32) int {
		return cmp.Compare(p.Key, key)
	})
}

func (s *Sorted) Insert(key, value uint32) error {
	i, found := s.find(key)
	if found {
		s.pairs[i].Value = value
		return nil
	}
	s.pairs = slices.Insert(s.pairs, i, Pair{Key: key, Value: value})
	return nil
}

func (s *Sorted) Remove(key uint32) (Pair, bool, error) {
	i, found := s.find(key)
	if !found {
		return Pair{}, false, nil
	}
	p := s.pairs[i]
	s.pairs = slices.Delete(s.pairs, i, i+1)
	return p, true, nil
}

func (s *Sorted) Get(key uint32) (Pair, bool, error) {
	i, found := s.find(key)
	if !found {
		return Pair{}, false, nil
	}
	return s.pairs[i], true, nil
}

func (s *Sorted) Scan(lo, hi btree.Bound[uint32], fn func(Pair) bool) error {
	i := 0
	if key, inclusive := lo.Key(); !lo.IsUnbounded() {
		var found bool
		i, found = s.find(key)
		if found && !inclusive {
			i++
		}
	}
	for ; i < len(s.pairs); i++ {
		if !btree.Contains(btree.Unbounded[uint32](), hi, s.pairs[i].Key) {
			return nil
		}
		if !fn(s.pairs[i]) {
			return nil
		}
	}
	return nil
}

func (s *Sorted) Len() int {
	return len(s.pairs)
}

func (s *Sorted) Clone() (Map, error) {
	return &Sorted{pairs: slices.Clone(s.pairs)}, nil
}

func (s *Sorted) Close() error {
	s.pairs = nil
	return nil
}
