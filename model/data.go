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

package model

import (
	"github.com/juju/errors"
	"github.com/reclens/reclens/base"
	"gonum.org/v1/gonum/stat"
)

// DataSet is the in-memory store of observed ratings. Ratings are indexed by
// user and by item for fast row and column enumeration. There is at most one
// rating per (user, item) pair: ingesting a duplicate overwrites the earlier
// value in place, so enumeration order stays stable.
//
// The store is mutated by Ingest only. Models hold read-only references to a
// DataSet during and after training.
type DataSet struct {
	UserIndex *base.Index
	ItemIndex *base.Index
	// ratings in insertion order, parallel slices
	Users   []int32
	Items   []int32
	Ratings []float64
	// adjacency: dense user/item index -> positions in the rating slices
	UserRatings [][]int
	ItemRatings [][]int
	// (user index, item index) -> position, for overwrite
	positions map[int64]int
	// valid rating interval, inclusive
	minRating float64
	maxRating float64
}

// NewDataSet creates an empty rating store with the valid rating interval
// [minRating, maxRating].
func NewDataSet(minRating, maxRating float64) *DataSet {
	set := new(DataSet)
	set.UserIndex = base.NewMapIndex()
	set.ItemIndex = base.NewMapIndex()
	set.UserRatings = make([][]int, 0)
	set.ItemRatings = make([][]int, 0)
	set.positions = make(map[int64]int)
	set.minRating = minRating
	set.maxRating = maxRating
	return set
}

// RatingRange returns the valid rating interval of the store.
func (set *DataSet) RatingRange() (float64, float64) {
	return set.minRating, set.maxRating
}

func ratingKey(userIndex, itemIndex int32) int64 {
	return int64(userIndex)<<32 | int64(itemIndex)
}

// Ingest inserts a rating, overwriting any earlier rating for the same
// (user, item) pair. Returns ErrInvalidRating if the value falls outside the
// configured interval; boundary values are accepted.
func (set *DataSet) Ingest(userId, itemId int, rating float64) error {
	if rating < set.minRating || rating > set.maxRating {
		return errors.WithType(errors.Errorf(
			"rating %v for user %v and item %v outside [%v, %v]",
			rating, userId, itemId, set.minRating, set.maxRating), ErrInvalidRating)
	}
	set.UserIndex.Add(userId)
	set.ItemIndex.Add(itemId)
	userIndex := set.UserIndex.ToNumber(userId)
	itemIndex := set.ItemIndex.ToNumber(itemId)
	for int(userIndex) >= len(set.UserRatings) {
		set.UserRatings = append(set.UserRatings, make([]int, 0))
	}
	for int(itemIndex) >= len(set.ItemRatings) {
		set.ItemRatings = append(set.ItemRatings, make([]int, 0))
	}
	if pos, exist := set.positions[ratingKey(userIndex, itemIndex)]; exist {
		set.Ratings[pos] = rating
		return nil
	}
	pos := len(set.Ratings)
	set.Users = append(set.Users, userIndex)
	set.Items = append(set.Items, itemIndex)
	set.Ratings = append(set.Ratings, rating)
	set.UserRatings[userIndex] = append(set.UserRatings[userIndex], pos)
	set.ItemRatings[itemIndex] = append(set.ItemRatings[itemIndex], pos)
	set.positions[ratingKey(userIndex, itemIndex)] = pos
	return nil
}

// Count returns the number of stored ratings.
func (set *DataSet) Count() int {
	if set == nil {
		return 0
	}
	return len(set.Ratings)
}

// UserCount returns the number of distinct users.
func (set *DataSet) UserCount() int {
	return int(set.UserIndex.Len())
}

// ItemCount returns the number of distinct items.
func (set *DataSet) ItemCount() int {
	return int(set.ItemIndex.Len())
}

// Get returns the i-th rating with sparse IDs.
func (set *DataSet) Get(i int) (userId, itemId int, rating float64) {
	return set.UserIndex.ToId(set.Users[i]), set.ItemIndex.ToId(set.Items[i]), set.Ratings[i]
}

// GetIndex returns the i-th rating with dense indices.
func (set *DataSet) GetIndex(i int) (userIndex, itemIndex int32, rating float64) {
	return set.Users[i], set.Items[i], set.Ratings[i]
}

// GlobalMean returns the mean of all stored ratings, zero for an empty store.
func (set *DataSet) GlobalMean() float64 {
	if set.Count() == 0 {
		return 0
	}
	return stat.Mean(set.Ratings, nil)
}

// ForEach enumerates every stored rating. The order is unspecified but
// stable across repeated calls while the store is unmodified.
func (set *DataSet) ForEach(f func(userId, itemId int, rating float64)) {
	for i := range set.Ratings {
		userId, itemId, rating := set.Get(i)
		f(userId, itemId, rating)
	}
}

// RatingsForUser enumerates the ratings of a user. Unknown users yield an
// empty enumeration.
func (set *DataSet) RatingsForUser(userId int, f func(itemId int, rating float64)) {
	userIndex := set.UserIndex.ToNumber(userId)
	if userIndex == base.NotId {
		return
	}
	for _, pos := range set.UserRatings[userIndex] {
		f(set.ItemIndex.ToId(set.Items[pos]), set.Ratings[pos])
	}
}

// RatingsForItem enumerates the ratings of an item. Unknown items yield an
// empty enumeration.
func (set *DataSet) RatingsForItem(itemId int, f func(userId int, rating float64)) {
	itemIndex := set.ItemIndex.ToNumber(itemId)
	if itemIndex == base.NotId {
		return
	}
	for _, pos := range set.ItemRatings[itemIndex] {
		f(set.UserIndex.ToId(set.Users[pos]), set.Ratings[pos])
	}
}

// SubSet creates a new store from the ratings at the given positions.
func (set *DataSet) SubSet(indices []int) *DataSet {
	subset := NewDataSet(set.minRating, set.maxRating)
	for _, i := range indices {
		userId, itemId, rating := set.Get(i)
		// stored ratings are already validated
		_ = subset.Ingest(userId, itemId, rating)
	}
	return subset
}

// SplitRatio splits the store into a training set and a test set. The split
// is deterministic for a fixed seed.
func (set *DataSet) SplitRatio(testRatio float64, seed int64) (trainSet, testSet *DataSet) {
	rng := base.NewRandomGenerator(seed)
	perm := rng.Perm(set.Count())
	testSize := int(float64(set.Count()) * testRatio)
	testSet = set.SubSet(perm[:testSize])
	trainSet = set.SubSet(perm[testSize:])
	return
}
