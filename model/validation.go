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
	"time"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/stat"
)

// CrossValidateResult contains the scores of one evaluator across folds.
type CrossValidateResult struct {
	TestScore []float64
	FitTime   []time.Duration
}

// MeanAndMargin returns the mean and the margin of cross validation scores.
func (result CrossValidateResult) MeanAndMargin() (float64, float64) {
	mean := stat.Mean(result.TestScore, nil)
	margin := 0.0
	for _, score := range result.TestScore {
		if temp := math.Abs(score - mean); temp > margin {
			margin = temp
		}
	}
	return mean, margin
}

// CrossValidate evaluates a model by cross validation. The model is refit
// wholesale on every fold. Results are returned per evaluator, in the order
// the evaluators were given.
func CrossValidate(m Model, set *DataSet, splitter Splitter, seed int64,
	config *FitConfig, evaluators ...Evaluator) ([]CrossValidateResult, error) {
	trainSets, testSets := splitter(set, seed)
	results := make([]CrossValidateResult, len(evaluators))
	for i := range results {
		results[i].TestScore = make([]float64, len(trainSets))
		results[i].FitTime = make([]time.Duration, len(trainSets))
	}
	for fold := range trainSets {
		start := time.Now()
		if _, err := m.Fit(trainSets[fold], nil, config); err != nil {
			return nil, errors.Annotatef(err, "fold %d", fold)
		}
		fitTime := time.Since(start)
		for i, evaluator := range evaluators {
			results[i].TestScore[fold] = evaluator(m, testSets[fold])
			results[i].FitTime[fold] = fitTime
		}
	}
	return results, nil
}
