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

package data

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/9rum/simpletree/btree"
)

// Kind identifies an operation on an ordered map.
type Kind int

const (
	Insert Kind = iota
	Remove
	Get
	Range
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Remove:
		return "remove"
	case Get:
		return "get"
	case Range:
		return "range"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is a single operation of a workload.  Lo and Hi are only meaningful for
// Range; Value only for Insert.
type Op struct {
	Kind   Kind
	Key    uint32
	Value  uint32
	Lo, Hi btree.Bound[uint32]
}

func (o Op) String() string {
	switch o.Kind {
	case Insert:
		return fmt.Sprintf("insert(%d, %d)", o.Key, o.Value)
	case Range:
		return fmt.Sprintf("range(%v, %v)", o.Lo, o.Hi)
	default:
		return fmt.Sprintf("%v(%d)", o.Kind, o.Key)
	}
}

// Mix holds the relative weights of each kind of operation.
type Mix struct {
	Insert, Remove, Get, Range int
}

// DefaultMix favours inserts slightly so that the map grows while it churns.
var DefaultMix = Mix{Insert: 4, Remove: 3, Get: 2, Range: 1}

func (m Mix) total() int {
	return m.Insert + m.Remove + m.Get + m.Range
}

// Ops returns n random operations over keys in [0, space).  Range widths are
// at most a sixteenth of the key space, and each bound is independently
// unbounded, inclusive or exclusive.
func Ops(rng *rand.Rand, n int, space uint32, mix Mix) []Op {
	total := mix.total()
	if total <= 0 {
		panic("empty operation mix")
	}
	if space == 0 {
		panic("empty key space")
	}
	ops := make([]Op, 0, n)
	for len(ops) < cap(ops) {
		op := Op{Key: draw(rng, space)}
		switch choice := rng.Intn(total); {
		case choice < mix.Insert:
			op.Kind, op.Value = Insert, rng.Uint32()
		case choice < mix.Insert+mix.Remove:
			op.Kind = Remove
		case choice < mix.Insert+mix.Remove+mix.Get:
			op.Kind = Get
		default:
			op.Kind = Range
			width := space/16 + 1
			op.Lo = bound(rng, op.Key)
			hi := op.Key + draw(rng, width)
			if hi < op.Key {
				hi = math.MaxUint32
			}
			op.Hi = bound(rng, hi)
		}
		ops = append(ops, op)
	}
	return ops
}

// bound returns a random kind of bound around key.
func bound(rng *rand.Rand, key uint32) btree.Bound[uint32] {
	switch rng.Intn(5) {
	case 0:
		return btree.Unbounded[uint32]()
	case 1, 2:
		return btree.Included(key)
	default:
		return btree.Excluded(key)
	}
}
