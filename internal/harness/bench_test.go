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

package harness

import (
	"testing"

	"github.com/9rum/simpletree/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBench(t *testing.T) {
	cfg := BenchConfig{
		InsertSizes: []int{100, 200},
		RangeSizes:  []int{10},
		RemoveSizes: []int{300},
		Prefill:     500,
		RemoveKeys:  50,
		Rounds:      2,
		Seed:        1,
	}
	impls := []Impl{
		{Name: "simpletree", New: func() (reference.Map, error) { return reference.NewTree(2), nil }},
		{Name: "sorted", New: func() (reference.Map, error) { return reference.NewSorted(), nil }},
		{Name: "pebble", New: func() (reference.Map, error) { return reference.OpenPebble() }},
	}
	var seen []Result
	results, err := Bench(impls, cfg, func(r Result) { seen = append(seen, r) })
	require.NoError(t, err)
	require.Len(t, results, 3*4)
	assert.Equal(t, results, seen)

	assert.Equal(t, Result{Group: GroupInsert, Impl: "simpletree", Size: 100}, Result{Group: results[0].Group, Impl: results[0].Impl, Size: results[0].Size})
	assert.Equal(t, GroupRange, results[2].Group)
	assert.Equal(t, GroupRemove, results[3].Group)
	assert.Equal(t, "pebble", results[11].Impl)
	for _, r := range results {
		assert.Positive(t, r.NsPerOp, r.String())
	}
}

func TestDefaultBenchConfig(t *testing.T) {
	cfg := DefaultBenchConfig()
	assert.Equal(t, []int{1000, 2000, 3000, 5000, 10000}, cfg.InsertSizes)
	assert.Equal(t, []int{10000, 20000, 30000, 50000}, cfg.RemoveSizes)
	assert.Equal(t, 1000, cfg.RemoveKeys)
}
