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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/9rum/simpletree/btree"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// Pebble is a map kept in a pebble LSM on an in-memory filesystem.
type Pebble struct {
	db     *pebble.DB
	length int
}

// OpenPebble opens an empty pebble map.  Nothing is written to disk.
func OpenPebble() (*Pebble, error) {
	db, err := pebble.Open("reference", &pebble.Options{
		FS: vfs.NewMem(),
	})
	if err != nil {
		return nil, fmt.Errorf("reference: open pebble: %w", err)
	}
	return &Pebble{db: db}, nil
}

// encode encodes a uint32 as a big-endian 4-byte slice, which sorts the same
// way as the integer.
func encode(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func decode(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("reference: unexpected length %d", len(b))
	}
	return binary.BigEndian.Uint32(b), nil
}

func (p *Pebble) Insert(key, value uint32) error {
	_, found, err := p.Get(key)
	if err != nil {
		return err
	}
	if err := p.db.Set(encode(key), encode(value), pebble.NoSync); err != nil {
		return fmt.Errorf("reference: set %d: %w", key, err)
	}
	if !found {
		p.length++
	}
	return nil
}

func (p *Pebble) Remove(key uint32) (Pair, bool, error) {
	pair, found, err := p.Get(key)
	if err != nil || !found {
		return pair, found, err
	}
	if err := p.db.Delete(encode(key), pebble.NoSync); err != nil {
		return Pair{}, false, fmt.Errorf("reference: delete %d: %w", key, err)
	}
	p.length--
	return pair, true, nil
}

func (p *Pebble) Get(key uint32) (Pair, bool, error) {
	val, closer, err := p.db.Get(encode(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return Pair{}, false, nil
	}
	if err != nil {
		return Pair{}, false, fmt.Errorf("reference: get %d: %w", key, err)
	}
	// val is only valid until closer.Close()
	value, err := decode(val)
	closer.Close()
	if err != nil {
		return Pair{}, false, err
	}
	return Pair{Key: key, Value: value}, true, nil
}

// iterOptions translates a pair of bounds into pebble's inclusive lower and
// exclusive upper bound.  empty is true when no key can satisfy the bounds.
func iterOptions(lo, hi btree.Bound[uint32]) (opts *pebble.IterOptions, empty bool) {
	opts = &pebble.IterOptions{}
	if key, inclusive := lo.Key(); !lo.IsUnbounded() {
		if !inclusive {
			if key == math.MaxUint32 {
				return nil, true
			}
			key++
		}
		opts.LowerBound = encode(key)
	}
	if key, inclusive := hi.Key(); !hi.IsUnbounded() {
		if inclusive && key != math.MaxUint32 {
			opts.UpperBound = encode(key + 1)
		} else if !inclusive {
			if key == 0 {
				return nil, true
			}
			opts.UpperBound = encode(key)
		}
	}
	if opts.LowerBound != nil && opts.UpperBound != nil && bytes.Compare(opts.LowerBound, opts.UpperBound) >= 0 {
		return nil, true
	}
	return opts, false
}

func (p *Pebble) Scan(lo, hi btree.Bound[uint32], fn func(Pair) bool) (err error) {
	opts, empty := iterOptions(lo, hi)
	if empty {
		return nil
	}
	iter, err := p.db.NewIter(opts)
	if err != nil {
		return fmt.Errorf("reference: scan: %w", err)
	}
	defer func() {
		if cerr := iter.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("reference: scan: %w", cerr)
		}
	}()
	for valid := iter.First(); valid; valid = iter.Next() {
		key, err := decode(iter.Key())
		if err != nil {
			return err
		}
		value, err := decode(iter.Value())
		if err != nil {
			return err
		}
		if !fn(Pair{Key: key, Value: value}) {
			return nil
		}
	}
	return nil
}

func (p *Pebble) Len() int {
	return p.length
}

// Clone copies every pair into a fresh in-memory pebble map in one batch.
func (p *Pebble) Clone() (Map, error) {
	out, err := OpenPebble()
	if err != nil {
		return nil, err
	}
	batch := out.db.NewBatch()
	defer batch.Close()
	var setErr error
	err = p.Scan(btree.Unbounded[uint32](), btree.Unbounded[uint32](), func(pair Pair) bool {
		setErr = batch.Set(encode(pair.Key), encode(pair.Value), nil)
		return setErr == nil
	})
	if err == nil {
		err = setErr
	}
	if err == nil {
		err = batch.Commit(pebble.NoSync)
	}
	if err != nil {
		out.Close()
		return nil, fmt.Errorf("reference: clone: %w", err)
	}
	out.length = p.length
	return out, nil
}

func (p *Pebble) Close() error {
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("reference: close pebble: %w", err)
	}
	return nil
}
