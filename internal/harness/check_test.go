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
	"errors"
	"testing"

	"github.com/9rum/simpletree/btree"
	"github.com/9rum/simpletree/internal/data"
	"github.com/9rum/simpletree/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	return Config{
		Ops:         5000,
		KeySpace:    256,
		Seed:        3,
		Mix:         data.DefaultMix,
		VerifyEvery: 250,
	}
}

func TestCheckTree(t *testing.T) {
	for _, minEntries := range []int{1, 2, btree.DefaultMinEntries} {
		subject, ref := reference.NewTree(minEntries), reference.NewSorted()
		assert.NoError(t, Check(subject, ref, smallConfig()), "min entries %d", minEntries)
	}
}

func TestCheckPebble(t *testing.T) {
	ref, err := reference.OpenPebble()
	require.NoError(t, err)
	defer ref.Close()
	cfg := smallConfig()
	cfg.Ops = 1000
	assert.NoError(t, Check(reference.NewTree(2), ref, cfg))
}

// lossy drops every insert of an even key.
type lossy struct {
	reference.Map
}

func (l lossy) Insert(key, value uint32) error {
	if key%2 == 0 {
		return nil
	}
	return l.Map.Insert(key, value)
}

func TestCheckMismatch(t *testing.T) {
	err := Check(lossy{reference.NewSorted()}, reference.NewSorted(), smallConfig())
	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch), "got %v", err)
	assert.NotEqual(t, mismatch.Want, mismatch.Got)
	assert.Contains(t, err.Error(), "step")
}

// failing returns an error from every lookup.
type failing struct {
	reference.Map
}

var errLookup = errors.New("lookup failed")

func (failing) Get(uint32) (reference.Pair, bool, error) {
	return reference.Pair{}, false, errLookup
}

func TestCheckError(t *testing.T) {
	cfg := smallConfig()
	cfg.Mix = data.Mix{Get: 1}
	err := Check(failing{reference.NewSorted()}, reference.NewSorted(), cfg)
	assert.ErrorIs(t, err, errLookup)
}

func TestCheckNoOps(t *testing.T) {
	cfg := smallConfig()
	cfg.Ops = 0
	assert.NoError(t, Check(reference.NewTree(1), reference.NewSorted(), cfg))
}
