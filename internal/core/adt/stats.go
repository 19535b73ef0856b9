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

import "fmt"

// Stats holds counters of the heap's allocation and collection activity.
type Stats struct {
	Allocs      int64
	Frees       int64
	Collections int64

	// Live is the number of objects on the heap list at the time the
	// snapshot was taken; MaxLive is the high-water mark.
	Live    int64
	MaxLive int64
}

func (s *Stats) Leaks() int64 { return s.Allocs - s.Frees }

func (s *Stats) String() string {
	return fmt.Sprintf(
		"Allocs: %5d\nFrees:  %5d\nLive:   %5d (max %d)\nGCs:    %5d",
		s.Allocs, s.Frees, s.Live, s.MaxLive, s.Collections)
}
