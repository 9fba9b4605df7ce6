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

	"github.com/stretchr/testify/assert"
)

func TestKFoldSplitter(t *testing.T) {
	set := syntheticDataSet(t, 10, 7, 2, 0)
	splitter := NewKFoldSplitter(5)
	trainSets, testSets := splitter(set, 0)
	assert.Len(t, trainSets, 5)
	assert.Len(t, testSets, 5)
	total := 0
	for i := range trainSets {
		assert.Equal(t, set.Count(), trainSets[i].Count()+testSets[i].Count())
		total += testSets[i].Count()
	}
	// folds partition the data set
	assert.Equal(t, set.Count(), total)
}

func TestRatioSplitter(t *testing.T) {
	set := syntheticDataSet(t, 10, 7, 2, 0)
	splitter := NewRatioSplitter(3, 0.2)
	trainSets, testSets := splitter(set, 0)
	assert.Len(t, trainSets, 3)
	assert.Len(t, testSets, 3)
	testSize := int(float64(set.Count()) * 0.2)
	for i := range trainSets {
		assert.Equal(t, testSize, testSets[i].Count())
		assert.Equal(t, set.Count()-testSize, trainSets[i].Count())
	}
}
