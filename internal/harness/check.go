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

// Package harness drives ordered maps through randomized workloads, either
// checking one against another or timing several side by side.
package harness

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/9rum/simpletree/internal/data"
	"github.com/9rum/simpletree/internal/reference"
)

// Config parameterizes a correctness check.
type Config struct {
	// Ops is the number of random operations to run.
	Ops int

	// KeySpace bounds the keys to [0, KeySpace).  A small key space makes
	// removes and upserts hit present keys often.
	KeySpace uint32

	// Seed seeds the operation generator.
	Seed int64

	// Mix weighs each kind of operation.
	Mix data.Mix

	// VerifyEvery compares the full contents of both maps, and verifies the
	// subject's structure if it can, after every VerifyEvery operations.
	// Zero only compares at the end.
	VerifyEvery int
}

// DefaultConfig returns the configuration of a moderate check.
func DefaultConfig() Config {
	return Config{
		Ops:         100000,
		KeySpace:    4096,
		Seed:        1,
		Mix:         data.DefaultMix,
		VerifyEvery: 1000,
	}
}

// MismatchError reports the first operation at which a subject diverged from
// the reference.
type MismatchError struct {
	Step int
	Op   data.Op
	Want string
	Got  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("step %d: %v: want %s, got %s", e.Step, e.Op, e.Want, e.Got)
}

// verifier is implemented by maps that can check their own structure.
type verifier interface {
	Verify() error
}

// Check runs the same random operations on subject and ref and returns a
// *MismatchError for the first result on which they disagree.  Errors
// returned by either map are returned wrapped.
func Check(subject, ref reference.Map, cfg Config) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	ops := data.Ops(rng, cfg.Ops, cfg.KeySpace, cfg.Mix)
	for step, op := range ops {
		want, err := apply(ref, op)
		if err != nil {
			return fmt.Errorf("harness: reference: step %d: %w", step, err)
		}
		got, err := apply(subject, op)
		if err != nil {
			return fmt.Errorf("harness: subject: step %d: %w", step, err)
		}
		if want != got {
			return &MismatchError{Step: step, Op: op, Want: want, Got: got}
		}
		if cfg.VerifyEvery > 0 && (step+1)%cfg.VerifyEvery == 0 {
			if err := compare(subject, ref, step, op); err != nil {
				return err
			}
		}
	}
	var last data.Op
	if 0 < len(ops) {
		last = ops[len(ops)-1]
	}
	return compare(subject, ref, len(ops)-1, last)
}

// apply runs op on m and renders its result.
func apply(m reference.Map, op data.Op) (string, error) {
	switch op.Kind {
	case data.Insert:
		return "", m.Insert(op.Key, op.Value)
	case data.Remove:
		pair, found, err := m.Remove(op.Key)
		return result(pair, found), err
	case data.Get:
		pair, found, err := m.Get(op.Key)
		return result(pair, found), err
	case data.Range:
		pairs, err := reference.Collect(m, op.Lo, op.Hi)
		return fmt.Sprint(pairs), err
	default:
		panic("invalid type")
	}
}

func result(pair reference.Pair, found bool) string {
	if !found {
		return "absent"
	}
	return fmt.Sprint(pair)
}

// compare checks that subject and ref hold the same pairs, and that subject
// is structurally sound.
func compare(subject, ref reference.Map, step int, op data.Op) error {
	want, err := reference.All(ref)
	if err != nil {
		return fmt.Errorf("harness: reference: step %d: %w", step, err)
	}
	got, err := reference.All(subject)
	if err != nil {
		return fmt.Errorf("harness: subject: step %d: %w", step, err)
	}
	if !slices.Equal(want, got) {
		return &MismatchError{Step: step, Op: op, Want: describe(want), Got: describe(got)}
	}
	if subject.Len() != ref.Len() {
		return &MismatchError{Step: step, Op: op, Want: fmt.Sprintf("len %d", ref.Len()), Got: fmt.Sprintf("len %d", subject.Len())}
	}
	if v, ok := subject.(verifier); ok {
		if err := v.Verify(); err != nil {
			return fmt.Errorf("harness: step %d: %w", step, err)
		}
	}
	return nil
}

// describe summarizes a full map so that a mismatch stays readable.
func describe(pairs []reference.Pair) string {
	if len(pairs) <= 8 {
		return fmt.Sprint(pairs)
	}
	return fmt.Sprintf("%d pairs %v..%v", len(pairs), pairs[:4], pairs[len(pairs)-4:])
}
