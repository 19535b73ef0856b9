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

func TestOperandStack(t *testing.T) {
	h := NewHeap(100)
	c := NewOpContext(h)
	defer c.Release()

	a := mustAtom(t, h, "a")
	b := mustAtom(t, h, "b")
	require.NoError(t, c.PushOperand(a))
	require.NoError(t, c.PushOperand(b))

	v, err := c.PopOperand()
	require.NoError(t, err)
	assert.Same(t, b, v)
	v, err = c.PopOperand()
	require.NoError(t, err)
	assert.Same(t, a, v)

	_, err = c.PopOperand()
	require.Error(t, err)
	assert.ErrorContains(t, err, "pop: stack underflow")
}

func TestOperandStackRootsValues(t *testing.T) {
	h := NewHeap(100)
	c := NewOpContext(h)
	defer c.Release()

	a := mustAtom(t, h, "kept")
	require.NoError(t, c.PushOperand(a))

	h.Collect()

	// The pushed operand and its stack cell survive; a popped value is
	// garbage once nothing else refers to it.
	v, err := c.PopOperand()
	require.NoError(t, err)
	assert.Same(t, a, v)
	assert.Equal(t, "kept", v.(*Atom).String())

	h.Collect()
	assert.Equal(t, 1, h.Live())
}

func TestContStack(t *testing.T) {
	h := NewHeap(100)
	c := NewOpContext(h)
	defer c.Release()

	_, ok, err := c.PopCont()
	require.NoError(t, err)
	assert.False(t, ok)

	f, err := h.AllocFunc(nil, h.Nil())
	require.NoError(t, err)
	require.NoError(t, c.PushCont(f))

	g, ok, err := c.PopCont()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, f, g)
}

func TestContStackRejectsNonFunction(t *testing.T) {
	h := NewHeap(100)
	c := NewOpContext(h)
	defer c.Release()

	// Corrupt the continuation stack by hand: the machine only ever
	// queues functions, so a stray atom is a type error.
	cell, err := h.AllocCons(mustAtom(t, h, "oops"), c.cont)
	require.NoError(t, err)
	c.cont = cell

	_, _, err = c.PopCont()
	require.Error(t, err)
	assert.ErrorContains(t, err, "apply: not a function")
}
