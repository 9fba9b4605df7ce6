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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_ExcludesRated(t *testing.T) {
	set := toyDataSet(t)
	svd := NewSVD(Params{NFactors: 2, NEpochs: 50, Lr: 0.01, Reg: 0.02, RandomState: 42})
	_, err := svd.Fit(set, nil, NewFitConfig().SetVerbose(0))
	require.NoError(t, err)
	// user 1 rated items 11 and 12; only 13 is left
	recommendations, err := Recommend(svd, set, 1, []int{11, 12, 13}, 3)
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	assert.Equal(t, 13, recommendations[0].ItemId)
	assert.False(t, math.IsNaN(recommendations[0].Score))
	assert.False(t, math.IsInf(recommendations[0].Score, 0))
	// the property holds for every user
	for _, userId := range set.UserIndex.GetIds() {
		recommendations, err := Recommend(svd, set, userId, set.ItemIndex.GetIds(), 3)
		require.NoError(t, err)
		for _, recommendation := range recommendations {
			set.RatingsForUser(userId, func(itemId int, _ float64) {
				assert.NotEqual(t, itemId, recommendation.ItemId)
			})
		}
	}
}

func TestRecommend_SingleCandidate(t *testing.T) {
	set := toyDataSet(t)
	svd := NewSVD(Params{NFactors: 2, NEpochs: 50, Lr: 0.01, Reg: 0.02, RandomState: 42})
	_, err := svd.Fit(set, nil, NewFitConfig().SetVerbose(0))
	require.NoError(t, err)
	recommendations, err := Recommend(svd, set, 1, []int{13}, 1)
	require.NoError(t, err)
	require.Len(t, recommendations, 1)
	assert.Equal(t, 13, recommendations[0].ItemId)
}

func TestRecommend_TieBreak(t *testing.T) {
	set := toyDataSet(t)
	// a constant predictor makes every candidate tie: ascending item ID wins
	recommendations, err := Recommend(constPredictor(3), set, 42, []int{30, 10, 20, 10}, 2)
	require.NoError(t, err)
	require.Len(t, recommendations, 2)
	assert.Equal(t, 10, recommendations[0].ItemId)
	assert.Equal(t, 20, recommendations[1].ItemId)
}

func TestRecommend_IncludeRated(t *testing.T) {
	set := toyDataSet(t)
	recommendations, err := Recommend(constPredictor(3), set, 1, []int{11, 12, 13}, 10,
		WithExcludeRated(false))
	require.NoError(t, err)
	assert.Len(t, recommendations, 3)
}

func TestRecommend_StrictUser(t *testing.T) {
	set := toyDataSet(t)
	_, err := Recommend(constPredictor(3), set, 42, []int{11}, 1, WithStrictUser(true))
	assert.ErrorIs(t, err, ErrUnknownUser)
	// default mode falls back to cold-start scoring
	recommendations, err := Recommend(constPredictor(3), set, 42, []int{11}, 1)
	require.NoError(t, err)
	assert.Len(t, recommendations, 1)
}

func TestRecommend_TopN(t *testing.T) {
	set := toyDataSet(t)
	recommendations, err := Recommend(constPredictor(3), set, 42, []int{10, 20, 30}, 0)
	require.NoError(t, err)
	assert.Empty(t, recommendations)
}
