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
	"fmt"
	"reflect"
	"testing"
)

// bounds returns every kind of bound around key.
func bounds(key int) []Bound[int] {
	return []Bound[int]{Unbounded[int](), Included(key), Excluded(key)}
}

// filter returns the entries of want within [lo, hi].
func filter(want []Entry[int, int], lo, hi Bound[int]) (out []Entry[int, int]) {
	for _, e := range want {
		if Contains(lo, hi, e.Key) {
			out = append(out, e)
		}
	}
	return
}

func TestRange(t *testing.T) {
	for _, min := range []int{1, 2, DefaultMinEntries} {
		t.Run(fmt.Sprintf("min=%d", min), func(t *testing.T) {
			tr := NewWithMinEntries[int, int](min)
			var want []Entry[int, int]
			// even keys only, so odd bounds fall between entries
			for _, e := range perm(300) {
				tr.Insert(2*e.Key, e.Key)
			}
			for i := 0; i < 300; i++ {
				want = append(want, Entry[int, int]{Key: 2 * i, Value: i})
			}
			for i := 0; i < 200; i++ {
				a, b := rng.Intn(620)-10, rng.Intn(620)-10
				if b < a {
					a, b = b, a
				}
				for _, lo := range bounds(a) {
					for _, hi := range bounds(b) {
						got := tr.Range(lo, hi).Collect()
						if exp := filter(want, lo, hi); !reflect.DeepEqual(got, exp) {
							t.Fatalf("range(%v, %v):\n got: %v\nwant: %v", lo, hi, got, exp)
						}
					}
				}
			}
			if got := all(tr); !reflect.DeepEqual(got, want) {
				t.Fatalf("full range:\n got: %v\nwant: %v", got, want)
			}
		})
	}
}

func TestRangeEmpty(t *testing.T) {
	var tr Tree[int, int]
	if e, ok := tr.Range(Unbounded[int](), Unbounded[int]()).Next(); ok {
		t.Fatalf("empty tree yielded %v", e)
	}
	for _, e := range perm(100) {
		tr.Insert(e.Key, e.Value)
	}
	cases := []struct {
		lo, hi Bound[int]
	}{
		{Included(60), Included(40)},
		{Excluded(50), Excluded(51)},
		{Included(50), Excluded(50)},
		{Excluded(99), Unbounded[int]()},
		{Unbounded[int](), Excluded(0)},
		{Included(1000), Unbounded[int]()},
	}
	for _, c := range cases {
		if got := tr.Range(c.lo, c.hi).Collect(); 0 < len(got) {
			t.Fatalf("range(%v, %v): got %v", c.lo, c.hi, got)
		}
	}
	it := tr.Range(Included(50), Included(50))
	if e, ok := it.Next(); !ok || e.Key != 50 {
		t.Fatalf("range(50, 50): got (%v, %v)", e, ok)
	}
	for i := 0; i < 3; i++ {
		if e, ok := it.Next(); ok {
			t.Fatalf("exhausted iterator yielded %v", e)
		}
	}
}

func TestRangeStackBound(t *testing.T) {
	tr := NewWithMinEntries[int, int](1)
	for _, e := range perm(5000) {
		tr.Insert(e.Key, e.Value)
	}
	limit := tr.Height() + 1
	it := tr.Range(Unbounded[int](), Unbounded[int]())
	for n := 0; ; n++ {
		if limit < len(it.stack) {
			t.Fatalf("stack grew to %d frames for height %d", len(it.stack), tr.Height())
		}
		e, ok := it.Next()
		if !ok {
			if n != 5000 {
				t.Fatalf("yielded %d entries, want 5000", n)
			}
			break
		}
		if e.Key != n {
			t.Fatalf("entry %d: got %v", n, e)
		}
	}
	if cap(it.stack) != limit {
		t.Fatalf("stack reallocated to capacity %d, want %d", cap(it.stack), limit)
	}
}

func TestRangeRestartable(t *testing.T) {
	tr := NewWithMinEntries[int, int](2)
	for _, e := range perm(100) {
		tr.Insert(e.Key, e.Value)
	}
	lo, hi := Included(10), Excluded(90)
	first := tr.Range(lo, hi)
	for i := 0; i < 5; i++ {
		first.Next()
	}
	if got, want := tr.Range(lo, hi).Collect(), rang(100)[10:90]; !reflect.DeepEqual(got, want) {
		t.Fatalf("second range:\n got: %v\nwant: %v", got, want)
	}
	if got, want := first.Collect(), rang(100)[15:90]; !reflect.DeepEqual(got, want) {
		t.Fatalf("resumed range:\n got: %v\nwant: %v", got, want)
	}
	if got, want := all(tr), rang(100); !reflect.DeepEqual(got, want) {
		t.Fatalf("range mutated tree:\n got: %v\nwant: %v", got, want)
	}
}

func TestAscend(t *testing.T) {
	tr := NewWithMinEntries[int, int](2)
	for _, e := range perm(100) {
		tr.Insert(e.Key, e.Value)
	}
	var got []Entry[int, int]
	tr.Ascend(Included(40), Excluded(60), func(e Entry[int, int]) bool {
		got = append(got, e)
		return true
	})
	if want := rang(100)[40:60]; !reflect.DeepEqual(got, want) {
		t.Fatalf("ascend:\n got: %v\nwant: %v", got, want)
	}
	got = got[:0]
	tr.Ascend(Included(40), Excluded(60), func(e Entry[int, int]) bool {
		if 50 < e.Key {
			return false
		}
		got = append(got, e)
		return true
	})
	if want := rang(100)[40:51]; !reflect.DeepEqual(got, want) {
		t.Fatalf("ascend:\n got: %v\nwant: %v", got, want)
	}
}

func TestAll(t *testing.T) {
	tr := NewWithMinEntries[int, int](3)
	for _, e := range perm(1000) {
		tr.Insert(e.Key, -e.Value)
	}
	n := 0
	for k, v := range tr.All() {
		if k != n || v != -n {
			t.Fatalf("pair %d: got (%d, %d)", n, k, v)
		}
		if n++; n == 500 {
			break
		}
	}
	if n != 500 {
		t.Fatalf("break after %d pairs", n)
	}
}

func BenchmarkRange(b *testing.B) {
	const size = 100000
	tr := New[uint32, struct{}]()
	for _, e := range perm(size) {
		tr.Insert(uint32(e.Key), struct{}{})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := uint32(i%size) * 10 % size
		var sum uint32
		for it := tr.Range(Included(from), Excluded(from+1000)); ; {
			e, ok := it.Next()
			if !ok {
				break
			}
			sum += e.Key
		}
		_ = sum
	}
}
