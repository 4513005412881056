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
	"math/rand"
	"sort"
	"testing"

	"github.com/9rum/simpletree/btree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	keys := Distinct(rng, 1000, 1000)
	require.Len(t, keys, 1000)
	sorted := append([]uint32(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	assert.Equal(t, Sequential(1000, 0, 1), sorted)
	assert.Panics(t, func() { Distinct(rng, 10, 5) })
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, key := range Random(rng, 500, 7) {
		assert.Less(t, key, uint32(7))
	}
	assert.Len(t, Random(rng, 10, 0), 10)
}

func TestSequential(t *testing.T) {
	assert.Equal(t, []uint32{10, 20, 30, 40}, Sequential(4, 10, 10))
	assert.Empty(t, Sequential(0, 10, 10))
}

func TestShuffle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	keys := Sequential(100, 0, 1)
	shuffled := Shuffle(rng, keys)
	assert.Equal(t, Sequential(100, 0, 1), keys, "input must not change")
	assert.ElementsMatch(t, keys, shuffled)
}

func TestOps(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	ops := Ops(rng, 10000, 256, DefaultMix)
	require.Len(t, ops, 10000)
	counts := make(map[Kind]int)
	for _, op := range ops {
		counts[op.Kind]++
		assert.Less(t, op.Key, uint32(256))
	}
	for _, kind := range []Kind{Insert, Remove, Get, Range} {
		assert.Positive(t, counts[kind], kind.String())
	}
	assert.Greater(t, counts[Insert], counts[Range])

	only := Ops(rng, 100, 10, Mix{Get: 1})
	for _, op := range only {
		assert.Equal(t, Get, op.Kind)
	}
	assert.Panics(t, func() { Ops(rng, 1, 10, Mix{}) })
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "insert(1, 2)", Op{Kind: Insert, Key: 1, Value: 2}.String())
	assert.Equal(t, "remove(3)", Op{Kind: Remove, Key: 3}.String())
	assert.Equal(t, "range(Included(1), Excluded(5))", Op{Kind: Range, Lo: btree.Included[uint32](1), Hi: btree.Excluded[uint32](5)}.String())
}
