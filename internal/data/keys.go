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

// Package data generates the key sets and operation sequences that drive
// the correctness check and the benchmarks.  Every generator takes its own
// random source so that a run can be replayed from its seed.
package data

import "math/rand"

// Random returns n keys drawn uniformly from [0, space).  Keys may repeat.
func Random(rng *rand.Rand, n int, space uint32) []uint32 {
	keys := make([]uint32, 0, n)
	for len(keys) < cap(keys) {
		keys = append(keys, draw(rng, space))
	}
	return keys
}

// Distinct returns n distinct keys drawn uniformly from [0, space) in random
// order.  It panics if space holds fewer than n keys.
func Distinct(rng *rand.Rand, n int, space uint32) []uint32 {
	if space != 0 && uint64(space) < uint64(n) {
		panic("key space too small")
	}
	seen := make(map[uint32]struct{}, n)
	keys := make([]uint32, 0, n)
	for len(keys) < cap(keys) {
		key := draw(rng, space)
		if _, found := seen[key]; found {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// Sequential returns n keys starting at from, step apart.
func Sequential(n int, from, step uint32) []uint32 {
	keys := make([]uint32, 0, n)
	for key := from; len(keys) < cap(keys); key += step {
		keys = append(keys, key)
	}
	return keys
}

// Shuffle returns a shuffled copy of keys.
func Shuffle(rng *rand.Rand, keys []uint32) []uint32 {
	out := make([]uint32, len(keys))
	copy(out, keys)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// draw picks a key in [0, space); a zero space stands for the whole uint32
// range.
func draw(rng *rand.Rand, space uint32) uint32 {
	if space == 0 {
		return rng.Uint32()
	}
	return uint32(rng.Int63n(int64(space)))
}
