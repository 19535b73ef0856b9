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
	"bytes"

	"github.com/sliplang/slip/errors"
)

// A header is embedded in every heap object. It threads the object on the
// heap's allocation list and carries the mark bit, which is owned by the
// collector.
type header struct {
	next   Object
	marked bool
}

func (h *header) hdr() *header { return h }

// An Object is a heap-allocated slip value. The method set doubles as the
// class table of the collector: startMark, markNext and dispose are the
// three operations the mark and sweep phases dispatch on.
//
// The traversal contract is as follows. startMark is called exactly once
// per collection when the collector first visits a node, after setting its
// mark bit. If the node has children, it stores parent in its first child
// slot, remembers which slot is reversed, and returns that child with
// ok == true; a leaf returns ok == false and leaves all state untouched.
// markNext is called on a node in reversed shape each time control returns
// from one of its children. It either rotates the reversed slot to the next
// child and returns (child, node, true), or, once all children are done,
// restores the node to its normal shape and returns (node, parent, false)
// with the parent link recovered from the last reversed slot.
type Object interface {
	hdr() *header

	// Kind reports the class of the object.
	Kind() Kind

	startMark(parent Object) (child Object, ok bool)
	markNext(child Object) (obj, parent Object, advanced bool)

	// dispose releases resources owned by the object. It is called by the
	// sweep phase right after the object is unlinked from the heap list.
	dispose()
}

// Nil is the empty value. Each Heap has a single pinned instance whose
// address doubles as the canonical empty operand and continuation stack.
type Nil struct {
	header
}

func (*Nil) Kind() Kind { return NilKind }

func (*Nil) startMark(Object) (Object, bool) { return nil, false }

func (*Nil) markNext(Object) (Object, Object, bool) {
	panic("adt: markNext on nil")
}

func (*Nil) dispose() {}

// An Atom is a leaf wrapping an immutable byte buffer. The atom exclusively
// owns the buffer; buffers are never shared between atoms.
type Atom struct {
	header
	text []byte
}

func (*Atom) Kind() Kind { return AtomKind }

// Bytes returns the atom's contents. The result must not be modified.
func (x *Atom) Bytes() []byte { return x.text }

func (x *Atom) String() string { return string(x.text) }

// Equal reports whether two atoms have the same contents.
func (x *Atom) Equal(y *Atom) bool { return bytes.Equal(x.text, y.text) }

func (*Atom) startMark(Object) (Object, bool) { return nil, false }

func (*Atom) markNext(Object) (Object, Object, bool) {
	panic("adt: markNext on atom")
}

func (x *Atom) dispose() { x.text = nil }

// A Cons is a pair cell. It represents both program structure, where
// (f a) parses to Cons{f, a}, and the spines of the operand and
// continuation stacks and of environments.
type Cons struct {
	header
	Head Object
	Tail Object

	// tailNext is only meaningful while the cell is in reversed shape:
	// it records that Head currently holds the parent link and that the
	// traversal still owes a visit to Tail. It is false whenever no
	// collection is in progress.
	tailNext bool
}

func (*Cons) Kind() Kind { return ConsKind }

func (x *Cons) startMark(parent Object) (Object, bool) {
	child := x.Head
	x.Head = parent
	x.tailNext = true
	return child, true
}

func (x *Cons) markNext(child Object) (Object, Object, bool) {
	if x.tailNext {
		// Rotate the parent link from Head to Tail and descend into the
		// old Tail.
		parent := x.Head
		x.Head = child
		next := x.Tail
		x.Tail = parent
		x.tailNext = false
		return next, x, true
	}
	parent := x.Tail
	x.Tail = child
	return x, parent, false
}

func (*Cons) dispose() {}

// An Applier is the native routine invoked when a Func is applied. It runs
// with the machine context and the Func's data payload.
type Applier func(c *OpContext, data Object) errors.Error

// A Func wraps a native apply routine together with a single data payload.
// Built-in routines carry Nil or bookkeeping data; user closures carry the
// captured environments and the parameter/body tree. Funcs also serve as
// the continuations queued on the continuation stack.
type Func struct {
	header
	apply Applier

	// Data is the payload child. It is the only outgoing reference of a
	// Func and is traversed by the collector.
	Data Object
}

func (*Func) Kind() Kind { return FuncKind }

// Apply invokes the native routine with the Func's payload.
func (x *Func) Apply(c *OpContext) errors.Error { return x.apply(c, x.Data) }

func (x *Func) startMark(parent Object) (Object, bool) {
	child := x.Data
	x.Data = parent
	return child, true
}

func (x *Func) markNext(child Object) (Object, Object, bool) {
	parent := x.Data
	x.Data = child
	return x, parent, false
}

func (*Func) dispose() {}
