// Copyright 2025 reclens Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package base

// Index manages the map between sparse IDs and dense indices. A sparse ID is
// a user ID or item ID as found in the rating feed. The dense index is the
// internal user index or item index optimized for faster parameter access
// and less memory usage.
type Index struct {
	Numbers map[int]int32 // sparse ID -> dense index
	Ids     []int         // dense index -> sparse ID
}

// NotId represents an ID that doesn't exist.
const NotId = int32(-1)

// NewMapIndex creates an Index.
func NewMapIndex() *Index {
	idx := new(Index)
	idx.Numbers = make(map[int]int32)
	idx.Ids = make([]int, 0)
	return idx
}

// Len returns the number of indexed IDs.
func (idx *Index) Len() int32 {
	if idx == nil {
		return 0
	}
	return int32(len(idx.Ids))
}

// Add adds a new ID to the indexer.
func (idx *Index) Add(id int) {
	if _, exist := idx.Numbers[id]; !exist {
		idx.Numbers[id] = int32(len(idx.Ids))
		idx.Ids = append(idx.Ids, id)
	}
}

// ToNumber converts a sparse ID to a dense index.
func (idx *Index) ToNumber(id int) int32 {
	if denseId, exist := idx.Numbers[id]; exist {
		return denseId
	}
	return NotId
}

// ToId converts a dense index to a sparse ID.
func (idx *Index) ToId(index int32) int {
	return idx.Ids[index]
}

// GetIds returns all IDs in the current index.
func (idx *Index) GetIds() []int {
	return idx.Ids
}
