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

// markFrom marks every object reachable from root using Schorr-Waite
// pointer reversal. The traversal keeps no auxiliary storage: the path from
// root to the current object is encoded in reversed child slots, with
// cursor naming the node whose slot currently points back up the spine.
//
// The loop alternates between two phases. The advance phase claims obj by
// setting its mark bit and descends into its first child, rotating the
// parent link into the vacated slot. When obj is already marked, or has no
// children, the retreat phase returns control to cursor, which either
// rotates to its next child or restores itself to normal shape and retreats
// further. A nil cursor means the spine is fully unwound and root's
// subgraph is marked, with every node restored.
//
// Cycles terminate the traversal naturally: a reference back into the spine
// points at a marked node and is never descended into. Total work is
// O(V+E) over the reachable subgraph.
func (h *Heap) markFrom(root Object) {
	obj := root
	var cursor Object
	for {
		if !obj.hdr().marked {
			obj.hdr().marked = true
			if child, ok := obj.startMark(cursor); ok {
				cursor = obj
				obj = child
				continue
			}
		}
		for {
			if cursor == nil {
				return
			}
			var advanced bool
			obj, cursor, advanced = cursor.markNext(obj)
			if advanced {
				break
			}
		}
	}
}
