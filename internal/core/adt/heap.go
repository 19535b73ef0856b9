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
	"github.com/gammazero/deque"

	"github.com/sliplang/slip/errors"
)

// DefaultObjectLimit is the default soft limit on the number of live
// objects. Reaching it triggers a collection; it is a policy knob only and
// correctness does not depend on its value.
const DefaultObjectLimit = 10000

// A Heap owns every object of one interpreter instance. All allocations are
// threaded on a single list headed at head; count tracks the list length.
//
// A Heap is not safe for concurrent use.
type Heap struct {
	head  Object
	count int
	limit int

	// roots holds the addresses of object-typed slots whose values, and
	// everything reachable from them, must survive collection. It is used
	// strictly as a LIFO.
	roots deque.Deque[*Object]

	nilObj Object

	stats Stats
}

// NewHeap creates an empty heap with the given object limit and allocates
// its nil singleton. A limit of 0 selects DefaultObjectLimit.
func NewHeap(limit int) *Heap {
	if limit <= 0 {
		limit = DefaultObjectLimit
	}
	h := &Heap{limit: limit}

	// The singleton is linked like any other object but pinned by a
	// permanent root, so it is always marked.
	n := &Nil{}
	h.link(n)
	h.nilObj = n
	h.PushRoot(&h.nilObj)
	return h
}

// Nil returns the heap's nil singleton.
func (h *Heap) Nil() *Nil { return h.nilObj.(*Nil) }

// Live reports the number of objects currently on the heap list.
func (h *Heap) Live() int { return h.count }

// Limit reports the heap's object limit.
func (h *Heap) Limit() int { return h.limit }

// Stats returns a copy of the heap's allocation counters.
func (h *Heap) Stats() Stats {
	s := h.stats
	s.Live = int64(h.count)
	return s
}

// PushRoot registers the address of an object-typed slot as a collection
// root. The slot's current value must be on the heap list, and must remain
// so for as long as the root is registered. Roots must be popped in the
// reverse order of their registration.
func (h *Heap) PushRoot(cell *Object) { h.roots.PushBack(cell) }

// PopRoot removes the most recently registered root.
func (h *Heap) PopRoot() { h.roots.PopBack() }

func (h *Heap) link(obj Object) {
	obj.hdr().next = h.head
	h.head = obj
	h.count++
	h.stats.Allocs++
	if int64(h.count) > h.stats.MaxLive {
		h.stats.MaxLive = int64(h.count)
	}
}

// reserve makes room for one allocation, collecting if the heap is at its
// limit. It fails if the survivors alone still fill the heap.
func (h *Heap) reserve() errors.Error {
	if h.count < h.limit {
		return nil
	}
	h.Collect()
	if h.count >= h.limit {
		return Errf(ResourceError, "allocate: object limit exceeded (%d live objects)", h.count)
	}
	return nil
}

// AllocCons allocates a pair cell. The arguments are rooted for the
// duration of the call.
func (h *Heap) AllocCons(head, tail Object) (*Cons, errors.Error) {
	h.PushRoot(&head)
	h.PushRoot(&tail)
	err := h.reserve()
	h.PopRoot()
	h.PopRoot()
	if err != nil {
		return nil, err
	}
	x := &Cons{Head: head, Tail: tail}
	h.link(x)
	return x, nil
}

// AllocAtom allocates an atom taking ownership of text. The caller must not
// retain the buffer.
func (h *Heap) AllocAtom(text []byte) (*Atom, errors.Error) {
	if err := h.reserve(); err != nil {
		return nil, err
	}
	x := &Atom{text: text}
	h.link(x)
	return x, nil
}

// AllocFunc allocates a function object wrapping the native routine apply
// with the given payload. The payload is rooted for the duration of the
// call.
func (h *Heap) AllocFunc(apply Applier, data Object) (*Func, errors.Error) {
	h.PushRoot(&data)
	err := h.reserve()
	h.PopRoot()
	if err != nil {
		return nil, err
	}
	x := &Func{apply: apply, Data: data}
	h.link(x)
	return x, nil
}

// Collect runs a full mark-sweep cycle: it marks everything reachable from
// the registered roots, most recent first, and then disposes of every
// unmarked object.
func (h *Heap) Collect() {
	for i := h.roots.Len() - 1; i >= 0; i-- {
		h.markFrom(*h.roots.At(i))
	}
	h.sweep()
	h.stats.Collections++
}
