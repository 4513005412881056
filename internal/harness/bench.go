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
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/9rum/simpletree/btree"
	"github.com/9rum/simpletree/internal/data"
	"github.com/9rum/simpletree/internal/reference"
)

// Benchmark groups.
const (
	GroupInsert = "insert"
	GroupRange  = "range"
	GroupRemove = "remove"
)

// BenchConfig parameterizes the benchmark groups.
type BenchConfig struct {
	// InsertSizes are the numbers of random keys inserted into a fresh map.
	InsertSizes []int

	// RangeSizes are the numbers of ranges scanned over a map of Prefill
	// keys.  Range i covers [10i, 10i+1000).
	RangeSizes []int

	// RemoveSizes are the numbers of keys held by the map that RemoveKeys
	// of them are removed from.
	RemoveSizes []int

	// Prefill is the number of keys of the map scanned by the range group.
	Prefill int

	// RemoveKeys is the number of keys removed per round of the remove group.
	RemoveKeys int

	// Rounds is the number of times each measurement is repeated.
	Rounds int

	// Seed seeds the key generator.
	Seed int64
}

// DefaultBenchConfig returns the sizes of the full benchmark suite.
func DefaultBenchConfig() BenchConfig {
	return BenchConfig{
		InsertSizes: []int{1000, 2000, 3000, 5000, 10000},
		RangeSizes:  []int{1000, 2000, 3000, 5000, 10000},
		RemoveSizes: []int{10000, 20000, 30000, 50000},
		Prefill:     100000,
		RemoveKeys:  1000,
		Rounds:      10,
		Seed:        1,
	}
}

// Impl names a map implementation under benchmark.
type Impl struct {
	Name string
	New  func() (reference.Map, error)
}

// Result is the mean cost of one operation of a group for one implementation
// at one size.
type Result struct {
	Group   string
	Impl    string
	Size    int
	NsPerOp float64
}

func (r Result) String() string {
	return fmt.Sprintf("%s/%s/%d: %.1f ns/op", r.Group, r.Impl, r.Size, r.NsPerOp)
}

// Bench runs every group for every implementation and returns the results in
// order.  progress, if not nil, is called with each result as it is measured.
func Bench(impls []Impl, cfg BenchConfig, progress func(Result)) ([]Result, error) {
	b := &bencher{cfg: cfg, progress: progress}
	for _, impl := range impls {
		for _, size := range cfg.InsertSizes {
			if err := b.run(GroupInsert, impl, size, b.insert); err != nil {
				return b.results, err
			}
		}
		for _, size := range cfg.RangeSizes {
			if err := b.run(GroupRange, impl, size, b.scan); err != nil {
				return b.results, err
			}
		}
		for _, size := range cfg.RemoveSizes {
			if err := b.run(GroupRemove, impl, size, b.remove); err != nil {
				return b.results, err
			}
		}
	}
	return b.results, nil
}

type bencher struct {
	cfg      BenchConfig
	progress func(Result)
	results  []Result
}

// measure times one round of a group and returns the elapsed time and the
// number of operations it covers.
type measure func(impl Impl, size int, rng *rand.Rand) (time.Duration, int, error)

func (b *bencher) run(group string, impl Impl, size int, m measure) error {
	rng := rand.New(rand.NewSource(b.cfg.Seed))
	rounds := max(b.cfg.Rounds, 1)
	var (
		total time.Duration
		ops   int
	)
	for round := 0; round < rounds; round++ {
		elapsed, n, err := m(impl, size, rng)
		if err != nil {
			return fmt.Errorf("harness: %s/%s/%d: %w", group, impl.Name, size, err)
		}
		total += elapsed
		ops += n
	}
	res := Result{Group: group, Impl: impl.Name, Size: size}
	if 0 < ops {
		res.NsPerOp = float64(total.Nanoseconds()) / float64(ops)
	}
	b.results = append(b.results, res)
	if b.progress != nil {
		b.progress(res)
	}
	return nil
}

// open creates a map of impl holding keys.
func open(impl Impl, keys []uint32) (reference.Map, error) {
	m, err := impl.New()
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		if err := m.Insert(key, key); err != nil {
			m.Close()
			return nil, err
		}
	}
	return m, nil
}

// insert times size random inserts into a fresh map.
func (b *bencher) insert(impl Impl, size int, rng *rand.Rand) (_ time.Duration, _ int, err error) {
	keys := data.Random(rng, size, 0)
	m, err := impl.New()
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if cerr := m.Close(); err == nil {
			err = cerr
		}
	}()
	runtime.GC()
	start := time.Now()
	for _, key := range keys {
		if err := m.Insert(key, key); err != nil {
			return 0, 0, err
		}
	}
	return time.Since(start), size, nil
}

// scan times size ranges over a map of Prefill keys, summing the keys seen.
func (b *bencher) scan(impl Impl, size int, rng *rand.Rand) (_ time.Duration, _ int, err error) {
	// Keys are spread over the span the ranges cover so that every range
	// sees some of them.
	space := uint32(10*size + 1000)
	m, err := open(impl, data.Random(rng, b.cfg.Prefill, space))
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if cerr := m.Close(); err == nil {
			err = cerr
		}
	}()
	var sum uint64
	runtime.GC()
	start := time.Now()
	for i := 0; i < size; i++ {
		lo, hi := uint32(10*i), uint32(10*i+1000)
		err := m.Scan(btree.Included(lo), btree.Excluded(hi), func(p reference.Pair) bool {
			sum += uint64(p.Key)
			return true
		})
		if err != nil {
			return 0, 0, err
		}
	}
	elapsed := time.Since(start)
	runtime.KeepAlive(sum)
	return elapsed, size, nil
}

// remove times the removal of RemoveKeys present keys from a clone of a map
// holding size keys.  Cloning is not timed.
func (b *bencher) remove(impl Impl, size int, rng *rand.Rand) (_ time.Duration, _ int, err error) {
	keys := data.Distinct(rng, size, 0)
	base, err := open(impl, keys)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if cerr := base.Close(); err == nil {
			err = cerr
		}
	}()
	m, err := base.Clone()
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if cerr := m.Close(); err == nil {
			err = cerr
		}
	}()
	victims := data.Shuffle(rng, keys)[:min(b.cfg.RemoveKeys, len(keys))]
	runtime.GC()
	start := time.Now()
	for _, key := range victims {
		if _, _, err := m.Remove(key); err != nil {
			return 0, 0, err
		}
	}
	return time.Since(start), len(victims), nil
}
