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
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/reclens/reclens/base"
)

// Recommendation is a scored item.
type Recommendation struct {
	ItemId int
	Score  float64
}

type recommendOptions struct {
	excludeRated bool
	strictUser   bool
}

// RecommendOption configures Recommend.
type RecommendOption func(*recommendOptions)

// WithExcludeRated controls whether items already rated by the user are
// removed from the candidates. Enabled by default.
func WithExcludeRated(exclude bool) RecommendOption {
	return func(opts *recommendOptions) {
		opts.excludeRated = exclude
	}
}

// WithStrictUser makes Recommend fail with ErrUnknownUser for users absent
// from the store instead of falling back to cold-start scoring.
func WithStrictUser(strict bool) RecommendOption {
	return func(opts *recommendOptions) {
		opts.strictUser = strict
	}
}

// Recommend scores the candidate items for a user with the given predictor
// and returns the top n. Items the user has already rated in the store are
// excluded unless disabled. The ranking is deterministic: descending score,
// ties broken by ascending item ID. Duplicate candidates are scored once.
func Recommend(p Predictor, store *DataSet, userId int, candidates []int, n int,
	options ...RecommendOption) ([]Recommendation, error) {
	opts := recommendOptions{excludeRated: true}
	for _, option := range options {
		option(&opts)
	}
	if opts.strictUser && store.UserIndex.ToNumber(userId) == base.NotId {
		return nil, errors.WithType(errors.Errorf(
			"no ratings for user %v", userId), ErrUnknownUser)
	}
	rated := mapset.NewThreadUnsafeSet[int]()
	if opts.excludeRated {
		store.RatingsForUser(userId, func(itemId int, _ float64) {
			rated.Add(itemId)
		})
	}
	seen := mapset.NewThreadUnsafeSet[int]()
	recommendations := make([]Recommendation, 0, len(candidates))
	for _, itemId := range candidates {
		if rated.Contains(itemId) || !seen.Add(itemId) {
			continue
		}
		recommendations = append(recommendations, Recommendation{
			ItemId: itemId,
			Score:  p.Predict(userId, itemId),
		})
	}
	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].ItemId < recommendations[j].ItemId
	})
	if n >= 0 && len(recommendations) > n {
		recommendations = recommendations[:n]
	}
	return recommendations, nil
}
