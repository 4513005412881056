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

import "testing"

const benchmarkTreeSize = 10000

func BenchmarkInsert(b *testing.B) {
	b.StopTimer()
	insertP := perm(benchmarkTreeSize)
	b.StartTimer()
	i := 0
	for i < b.N {
		tr := New[int, int]()
		for _, e := range insertP {
			tr.Insert(e.Key, e.Value)
			i++
			if b.N <= i {
				return
			}
		}
	}
}

func BenchmarkRemoveInsert(b *testing.B) {
	b.StopTimer()
	insertP := perm(benchmarkTreeSize)
	tr := New[int, int]()
	for _, e := range insertP {
		tr.Insert(e.Key, e.Value)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		e := insertP[i%benchmarkTreeSize]
		tr.Remove(e.Key)
		tr.Insert(e.Key, e.Value)
	}
}

func BenchmarkRemove(b *testing.B) {
	b.StopTimer()
	insertP := perm(benchmarkTreeSize)
	removeP := perm(benchmarkTreeSize)
	tr := New[int, int]()
	for _, e := range insertP {
		tr.Insert(e.Key, e.Value)
	}
	b.StartTimer()
	i := 0
	for i < b.N {
		b.StopTimer()
		clone := tr.Clone()
		b.StartTimer()
		for _, e := range removeP {
			clone.Remove(e.Key)
			i++
			if b.N <= i {
				return
			}
		}
		if 0 < clone.Len() {
			panic(clone.Len())
		}
	}
}

func BenchmarkGet(b *testing.B) {
	b.StopTimer()
	insertP := perm(benchmarkTreeSize)
	getP := perm(benchmarkTreeSize)
	tr := New[int, int]()
	for _, e := range insertP {
		tr.Insert(e.Key, e.Value)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tr.Get(getP[i%benchmarkTreeSize].Key)
	}
}

func BenchmarkClone(b *testing.B) {
	b.StopTimer()
	tr := New[int, int]()
	for _, e := range perm(benchmarkTreeSize) {
		tr.Insert(e.Key, e.Value)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tr.Clone()
	}
}
