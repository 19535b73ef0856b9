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

import "github.com/sliplang/slip/errors"

// An OpContext is the mutable machine state of one evaluation: the operand
// stack and the continuation stack. Both stacks are chains of Cons cells on
// the heap, headed by cells that are registered as collection roots for the
// lifetime of the context, so the collector walks pending continuations and
// intermediate results like any other live data.
//
// Continuations execute in LIFO order; the operands a continuation consumes
// are the ones pushed most recently.
type OpContext struct {
	heap *Heap

	operand Object
	cont    Object
}

// NewOpContext creates a machine context on the given heap and registers
// its stacks as collection roots. Release must be called to drop them, in
// reverse order of any roots pushed since.
func NewOpContext(h *Heap) *OpContext {
	c := &OpContext{heap: h, operand: h.Nil(), cont: h.Nil()}
	h.PushRoot(&c.operand)
	h.PushRoot(&c.cont)
	return c
}

// Release unregisters the context's stack roots. The context must not be
// used afterwards.
func (c *OpContext) Release() {
	c.heap.PopRoot()
	c.heap.PopRoot()
}

// Heap returns the heap this context allocates on.
func (c *OpContext) Heap() *Heap { return c.heap }

// Nil returns the heap's nil singleton.
func (c *OpContext) Nil() *Nil { return c.heap.Nil() }

// PushOperand pushes v onto the operand stack.
func (c *OpContext) PushOperand(v Object) errors.Error {
	cell, err := c.heap.AllocCons(v, c.operand)
	if err != nil {
		return err
	}
	c.operand = cell
	return nil
}

// PopOperand pops the top of the operand stack. The returned value is not
// rooted; the caller must root it before any allocation that should not
// reclaim it.
func (c *OpContext) PopOperand() (Object, errors.Error) {
	cell, ok := c.operand.(*Cons)
	if !ok {
		return nil, Errf(TypeError, "pop: stack underflow")
	}
	v := cell.Head
	c.operand = cell.Tail
	return v, nil
}

// PushCont queues f on the continuation stack.
func (c *OpContext) PushCont(f *Func) errors.Error {
	cell, err := c.heap.AllocCons(f, c.cont)
	if err != nil {
		return err
	}
	c.cont = cell
	return nil
}

// PopCont removes and returns the most recently queued continuation. It
// returns ok == false when the continuation stack is empty. Like
// PopOperand, the result is not rooted.
func (c *OpContext) PopCont() (f *Func, ok bool, _ errors.Error) {
	cell, isCons := c.cont.(*Cons)
	if !isCons {
		return nil, false, nil
	}
	f, isFunc := cell.Head.(*Func)
	if !isFunc {
		return nil, false, Errf(TypeError, "apply: not a function")
	}
	c.cont = cell.Tail
	return f, true, nil
}
