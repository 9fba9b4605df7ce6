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
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toyDataSet returns the six-rating example used across model tests.
func toyDataSet(t *testing.T) *DataSet {
	set := NewDataSet(1, 5)
	for _, triple := range []struct {
		userId, itemId int
		rating         float64
	}{
		{1, 11, 5}, {1, 12, 1},
		{2, 11, 4}, {2, 13, 5},
		{3, 12, 5}, {3, 13, 1},
	} {
		require.NoError(t, set.Ingest(triple.userId, triple.itemId, triple.rating))
	}
	return set
}

func TestDataSet_Ingest(t *testing.T) {
	set := NewDataSet(1, 5)
	// boundary values are accepted
	assert.NoError(t, set.Ingest(1, 11, 1))
	assert.NoError(t, set.Ingest(1, 12, 5))
	// values outside the scale are rejected
	assert.ErrorIs(t, set.Ingest(1, 13, 0), ErrInvalidRating)
	assert.ErrorIs(t, set.Ingest(1, 13, 6), ErrInvalidRating)
	assert.Equal(t, 2, set.Count())
	assert.Equal(t, 1, set.UserCount())
	assert.Equal(t, 2, set.ItemCount())
}

func TestDataSet_Overwrite(t *testing.T) {
	set := NewDataSet(1, 5)
	assert.NoError(t, set.Ingest(1, 11, 3))
	assert.NoError(t, set.Ingest(2, 11, 4))
	assert.NoError(t, set.Ingest(1, 11, 5))
	// size unchanged, stored value equals the second ingestion
	assert.Equal(t, 2, set.Count())
	_, _, rating := set.Get(0)
	assert.Equal(t, 5.0, rating)
	// enumeration order is stable across repeated calls
	first := make([]int, 0)
	set.ForEach(func(userId, itemId int, rating float64) {
		first = append(first, userId)
	})
	second := make([]int, 0)
	set.ForEach(func(userId, itemId int, rating float64) {
		second = append(second, userId)
	})
	assert.Equal(t, first, second)
	assert.Equal(t, []int{1, 2}, first)
}

func TestDataSet_RatingsForUser(t *testing.T) {
	set := toyDataSet(t)
	items := make(map[int]float64)
	set.RatingsForUser(1, func(itemId int, rating float64) {
		items[itemId] = rating
	})
	assert.Equal(t, map[int]float64{11: 5, 12: 1}, items)
	// unknown users yield an empty enumeration
	set.RatingsForUser(42, func(itemId int, rating float64) {
		t.Fatal("unexpected rating for unknown user")
	})
}

func TestDataSet_RatingsForItem(t *testing.T) {
	set := toyDataSet(t)
	users := make(map[int]float64)
	set.RatingsForItem(11, func(userId int, rating float64) {
		users[userId] = rating
	})
	assert.Equal(t, map[int]float64{1: 5, 2: 4}, users)
	set.RatingsForItem(42, func(userId int, rating float64) {
		t.Fatal("unexpected rating for unknown item")
	})
}

func TestDataSet_GlobalMean(t *testing.T) {
	set := toyDataSet(t)
	assert.InDelta(t, 3.5, set.GlobalMean(), 1e-9)
	assert.Zero(t, NewDataSet(1, 5).GlobalMean())
}

func TestDataSet_SplitRatio(t *testing.T) {
	set := toyDataSet(t)
	trainSet, testSet := set.SplitRatio(0.5, 0)
	assert.Equal(t, 3, trainSet.Count())
	assert.Equal(t, 3, testSet.Count())
	// deterministic for a fixed seed
	trainSet2, testSet2 := set.SplitRatio(0.5, 0)
	assert.Equal(t, trainSet.Ratings, trainSet2.Ratings)
	assert.Equal(t, testSet.Ratings, testSet2.Ratings)
}

func TestDataSet_ErrorMessage(t *testing.T) {
	set := NewDataSet(1, 5)
	err := set.Ingest(1, 11, 5.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRating))
	assert.Contains(t, err.Error(), "5.5")
}
