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
)

// Evaluator evaluates the performance of a predictor on a test set.
type Evaluator func(p Predictor, testSet *DataSet) float64

// RMSE is the root mean square error.
func RMSE(p Predictor, testSet *DataSet) float64 {
	sum := 0.0
	testSet.ForEach(func(userId, itemId int, rating float64) {
		diff := p.Predict(userId, itemId) - rating
		sum += diff * diff
	})
	return math.Sqrt(sum / float64(testSet.Count()))
}

// MAE is the mean absolute error.
func MAE(p Predictor, testSet *DataSet) float64 {
	sum := 0.0
	testSet.ForEach(func(userId, itemId int, rating float64) {
		sum += math.Abs(p.Predict(userId, itemId) - rating)
	})
	return sum / float64(testSet.Count())
}
