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

package runtime

import "github.com/sliplang/slip/internal/core/adt"

// A Runtime maintains the shared state of one interpreter instance. Nothing
// is process-global: separate Runtimes own separate heaps and may coexist.
type Runtime struct {
	heap *adt.Heap
}

// New creates a new Runtime with the default object limit.
func New() *Runtime {
	return NewWithLimit(adt.DefaultObjectLimit)
}

// NewWithLimit creates a new Runtime whose heap holds at most limit
// objects.
func NewWithLimit(limit int) *Runtime {
	return &Runtime{heap: adt.NewHeap(limit)}
}

// Heap returns the runtime's object heap.
func (r *Runtime) Heap() *adt.Heap { return r.heap }
