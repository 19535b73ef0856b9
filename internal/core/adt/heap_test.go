// Copyright 2025 The Slip Authors
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

package adt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// live returns the objects currently on the heap list, head first.
func live(h *Heap) []Object {
	var a []Object
	for obj := h.head; obj != nil; obj = obj.hdr().next {
		a = append(a, obj)
	}
	return a
}

func TestNewHeap(t *testing.T) {
	h := NewHeap(0)
	assert.Equal(t, DefaultObjectLimit, h.Limit())

	// The nil singleton is the only allocation and is pinned.
	require.Equal(t, 1, h.Live())
	h.Collect()
	assert.Equal(t, 1, h.Live())
	assert.Same(t, h.Nil(), live(h)[0])
}

func TestAllocThreadsHeapList(t *testing.T) {
	h := NewHeap(100)
	a, err := h.AllocAtom([]byte("a"))
	require.NoError(t, err)
	c, err := h.AllocCons(a, h.Nil())
	require.NoError(t, err)

	require.Equal(t, 3, h.Live())
	objs := live(h)
	assert.Same(t, c, objs[0])
	assert.Same(t, a, objs[1])
	assert.Same(t, h.Nil(), objs[2])
}

func TestCollectReclaimsUnrooted(t *testing.T) {
	h := NewHeap(100)

	var keep Object
	a, err := h.AllocAtom([]byte("keep"))
	require.NoError(t, err)
	keep = a
	h.PushRoot(&keep)
	defer h.PopRoot()

	for i := 0; i < 10; i++ {
		_, err := h.AllocCons(h.Nil(), h.Nil())
		require.NoError(t, err)
	}
	require.Equal(t, 12, h.Live())

	h.Collect()

	// Only the singleton and the rooted atom survive.
	require.Equal(t, 2, h.Live())
	assert.Contains(t, live(h), keep)
}

func TestCollectKeepsReachableChain(t *testing.T) {
	h := NewHeap(100)

	var list Object = h.Nil()
	h.PushRoot(&list)
	defer h.PopRoot()
	for i := 0; i < 10; i++ {
		cell, err := h.AllocCons(h.Nil(), list)
		require.NoError(t, err)
		list = cell
	}

	h.Collect()
	assert.Equal(t, 11, h.Live())
}

func TestCollectClearsMarks(t *testing.T) {
	h := NewHeap(100)
	var v Object
	c, err := h.AllocCons(h.Nil(), h.Nil())
	require.NoError(t, err)
	v = c
	h.PushRoot(&v)
	defer h.PopRoot()

	h.Collect()
	for _, obj := range live(h) {
		assert.False(t, obj.hdr().marked)
		if c, ok := obj.(*Cons); ok {
			assert.False(t, c.tailNext)
		}
	}
}

func TestLimitTriggersCollection(t *testing.T) {
	h := NewHeap(16)

	// All garbage: allocation keeps succeeding because each collection
	// frees the previous cells.
	for i := 0; i < 100; i++ {
		_, err := h.AllocCons(h.Nil(), h.Nil())
		require.NoError(t, err)
	}
	s := h.Stats()
	assert.Greater(t, s.Collections, int64(0))
	assert.Greater(t, s.Frees, int64(0))
}

func TestLimitExceeded(t *testing.T) {
	h := NewHeap(16)

	var list Object = h.Nil()
	h.PushRoot(&list)
	defer h.PopRoot()

	var err error
	for i := 0; i < 16; i++ {
		var cell *Cons
		cell, err = h.AllocCons(h.Nil(), list)
		if err != nil {
			break
		}
		list = cell
	}
	require.Error(t, err)
	assert.ErrorContains(t, err, "object limit exceeded")
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ResourceError, code)

	// Dropping the root makes the chain collectable again.
	h.PopRoot()
	var keep Object = h.Nil()
	h.PushRoot(&keep)
	_, err = h.AllocCons(h.Nil(), h.Nil())
	assert.NoError(t, err)
}

func TestAtomDisposeReleasesBuffer(t *testing.T) {
	h := NewHeap(100)
	a, err := h.AllocAtom([]byte("transient"))
	require.NoError(t, err)

	h.Collect()
	assert.Nil(t, a.Bytes())
	assert.Equal(t, 1, h.Live())
}

func TestStatsCounters(t *testing.T) {
	h := NewHeap(100)
	for i := 0; i < 5; i++ {
		_, err := h.AllocAtom([]byte("x"))
		require.NoError(t, err)
	}
	h.Collect()

	s := h.Stats()
	assert.Equal(t, int64(6), s.Allocs) // includes the singleton
	assert.Equal(t, int64(5), s.Frees)
	assert.Equal(t, int64(1), s.Live)
	assert.Equal(t, int64(6), s.MaxLive)
	assert.Equal(t, int64(1), s.Collections)
	assert.Equal(t, int64(1), s.Leaks())
}
