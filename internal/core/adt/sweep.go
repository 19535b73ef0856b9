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

// sweep walks the heap list once, clearing the mark bit of every surviving
// object and unlinking and disposing of every unmarked one. Unreachable
// objects are unlinked before dispose runs, so the list never contains a
// disposed object.
func (h *Heap) sweep() {
	var prev Object
	for obj := h.head; obj != nil; {
		hd := obj.hdr()
		next := hd.next
		if hd.marked {
			hd.marked = false
			prev = obj
		} else {
			if prev == nil {
				h.head = next
			} else {
				prev.hdr().next = next
			}
			hd.next = nil
			obj.dispose()
			h.count--
			h.stats.Frees++
		}
		obj = next
	}
}
