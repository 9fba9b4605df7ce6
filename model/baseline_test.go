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

func TestBaseLine_Fit(t *testing.T) {
	set := toyDataSet(t)
	baseLine := NewBaseLine(Params{NEpochs: 200, RandomState: 42})
	score, err := baseLine.Fit(set, nil, NewFitConfig().SetVerbose(0))
	require.NoError(t, err)
	// beats the constant global-mean predictor
	constantRMSE := 0.0
	set.ForEach(func(_, _ int, rating float64) {
		diff := rating - set.GlobalMean()
		constantRMSE += diff * diff
	})
	constantRMSE = math.Sqrt(constantRMSE / float64(set.Count()))
	assert.Less(t, score.RMSE, constantRMSE)
}

func TestBaseLine_ColdStart(t *testing.T) {
	set := toyDataSet(t)
	baseLine := NewBaseLine(Params{NEpochs: 50, RandomState: 42})
	_, err := baseLine.Fit(set, nil, NewFitConfig().SetVerbose(0))
	require.NoError(t, err)
	assert.Equal(t, baseLine.GlobalMean, baseLine.Predict(42, 1042))
}

func TestBaseLine_EmptyDataSet(t *testing.T) {
	baseLine := NewBaseLine(nil)
	_, err := baseLine.Fit(NewDataSet(1, 5), nil, nil)
	assert.ErrorIs(t, err, ErrEmptyDataSet)
}
