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
	"github.com/reclens/reclens/base"
)

// Splitter splits a data set into pairs of train sets and test sets. Splits
// are deterministic for a fixed seed.
type Splitter func(set *DataSet, seed int64) (trainSets, testSets []*DataSet)

// NewKFoldSplitter creates a k-fold splitter.
func NewKFoldSplitter(k int) Splitter {
	return func(set *DataSet, seed int64) ([]*DataSet, []*DataSet) {
		trainSets := make([]*DataSet, k)
		testSets := make([]*DataSet, k)
		rng := base.NewRandomGenerator(seed)
		perm := rng.Perm(set.Count())
		foldSize := set.Count() / k
		begin, end := 0, 0
		for i := 0; i < k; i++ {
			end += foldSize
			if i < set.Count()%k {
				end++
			}
			testSets[i] = set.SubSet(perm[begin:end])
			trainIndex := make([]int, 0, set.Count()-(end-begin))
			trainIndex = append(trainIndex, perm[:begin]...)
			trainIndex = append(trainIndex, perm[end:]...)
			trainSets[i] = set.SubSet(trainIndex)
			begin = end
		}
		return trainSets, testSets
	}
}

// NewRatioSplitter creates a repeated shuffled hold-out splitter.
func NewRatioSplitter(repeat int, testRatio float64) Splitter {
	return func(set *DataSet, seed int64) ([]*DataSet, []*DataSet) {
		trainSets := make([]*DataSet, repeat)
		testSets := make([]*DataSet, repeat)
		for i := 0; i < repeat; i++ {
			trainSets[i], testSets[i] = set.SplitRatio(testRatio, seed+int64(i))
		}
		return trainSets, testSets
	}
}
