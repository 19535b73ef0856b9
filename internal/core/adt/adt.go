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

// Package adt defines the heap representation of slip values and the
// machinery that manages their lifetime.
//
// Every value is an Object allocated on a Heap. The heap threads all live
// objects on a single list and reclaims unreachable ones with a precise,
// in-place mark-sweep collector. The mark phase uses the Schorr-Waite
// pointer-reversal algorithm: instead of keeping an auxiliary stack, it
// temporarily rotates one child slot of each node under traversal into a
// link back to the node's parent. The per-class startMark and markNext
// methods jointly implement a child iterator over the heterogeneous node
// layouts; see mark.go for the driving loop.
//
// The collector is precise: it traverses exactly the objects reachable from
// the registered root cells. Any object-typed local that must survive an
// allocation has to be registered with Heap.PushRoot for the duration. The
// allocation functions root their own object arguments, so a caller only
// needs explicit roots for values it holds across separate allocations.
package adt

// A Kind reports the class of an Object.
type Kind uint8

const (
	// NilKind is the class of the heap's nil singleton.
	NilKind Kind = iota

	// ConsKind is the class of pair cells.
	ConsKind

	// AtomKind is the class of symbol leaves.
	AtomKind

	// FuncKind is the class of applicable objects, both built-in routines
	// and user closures.
	FuncKind
)

func (k Kind) String() string {
	switch k {
	case NilKind:
		return "nil"
	case ConsKind:
		return "cons"
	case AtomKind:
		return "atom"
	case FuncKind:
		return "function"
	}
	return "unknown"
}
