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

	"github.com/juju/errors"
	"github.com/reclens/reclens/base"
	"github.com/reclens/reclens/base/log"
	"go.uber.org/zap"
)

// BaseLine predicts the baseline estimate for a given user and item:
//
//	\hat{r}_{ui} = b_{ui} = μ + b_u + b_i
//
// It is the bias-only reference point for the factor models: any latent
// factor configuration that cannot beat it is not learning taste at all.
// If user u is unknown, the bias b_u is assumed to be zero. The same applies
// to item i with b_i.
type BaseLine struct {
	BaseModel
	UserBias   []float64 // b_u
	ItemBias   []float64 // b_i
	GlobalMean float64   // mu
	UserIndex  *base.Index
	ItemIndex  *base.Index
	reg        float64
	lr         float64
	nEpochs    int
}

// NewBaseLine creates a BaseLine model. Params:
//
//	Reg     - The regularization parameter of the cost function that is
//	          optimized. Default is 0.02.
//	Lr      - The learning rate of SGD. Default is 0.005.
//	NEpochs - The number of iterations of the SGD procedure. Default is 20.
func NewBaseLine(params Params) *BaseLine {
	baseLine := new(BaseLine)
	baseLine.SetParams(params)
	return baseLine
}

// SetParams sets hyper-parameters of the BaseLine model.
func (baseLine *BaseLine) SetParams(params Params) {
	baseLine.BaseModel.SetParams(params)
	baseLine.reg = baseLine.Params.GetFloat64(Reg, 0.02)
	baseLine.lr = baseLine.Params.GetFloat64(Lr, 0.005)
	baseLine.nEpochs = baseLine.Params.GetInt(NEpochs, 20)
}

// Predict returns the baseline estimate for a user and an item.
func (baseLine *BaseLine) Predict(userId, itemId int) float64 {
	userIndex := baseLine.UserIndex.ToNumber(userId)
	itemIndex := baseLine.ItemIndex.ToNumber(itemId)
	return baseLine.internalPredict(userIndex, itemIndex)
}

func (baseLine *BaseLine) internalPredict(userIndex, itemIndex int32) float64 {
	ret := baseLine.GlobalMean
	if userIndex != base.NotId {
		ret += baseLine.UserBias[userIndex]
	}
	if itemIndex != base.NotId {
		ret += baseLine.ItemBias[itemIndex]
	}
	return ret
}

// Fit the BaseLine model.
func (baseLine *BaseLine) Fit(trainSet, validateSet *DataSet, config *FitConfig) (Score, error) {
	config = config.LoadDefaultIfNil()
	if trainSet.Count() == 0 {
		return Score{}, errors.WithType(errors.New("no ratings to fit"), ErrEmptyDataSet)
	}
	log.Logger().Info("fit baseline",
		zap.Int("train_set_size", trainSet.Count()),
		zap.Int("validate_set_size", validateSet.Count()),
		zap.Any("params", baseLine.GetParams()))
	// Initialize parameters
	baseLine.UserIndex = trainSet.UserIndex
	baseLine.ItemIndex = trainSet.ItemIndex
	baseLine.GlobalMean = trainSet.GlobalMean()
	baseLine.UserBias = make([]float64, trainSet.UserCount())
	baseLine.ItemBias = make([]float64, trainSet.ItemCount())
	// Stochastic gradient descent
	for epoch := 1; epoch <= baseLine.nEpochs; epoch++ {
		perm := baseLine.GetRandomGenerator().Perm(trainSet.Count())
		for _, i := range perm {
			userIndex, itemIndex, rating := trainSet.GetIndex(i)
			upGrad := rating - baseLine.internalPredict(userIndex, itemIndex)
			baseLine.UserBias[userIndex] += baseLine.lr * (upGrad - baseLine.reg*baseLine.UserBias[userIndex])
			baseLine.ItemBias[itemIndex] += baseLine.lr * (upGrad - baseLine.reg*baseLine.ItemBias[itemIndex])
		}
		trainRMSE := RMSE(baseLine, trainSet)
		if math.IsNaN(trainRMSE) || math.IsInf(trainRMSE, 0) {
			return Score{}, errors.WithType(errors.Errorf(
				"non-finite RMSE after epoch %d", epoch), ErrDivergence)
		}
		epochRMSE := trainRMSE
		if validateSet.Count() > 0 {
			epochRMSE = RMSE(baseLine, validateSet)
		}
		if config.OnEpoch != nil && !config.OnEpoch(epoch, epochRMSE) {
			log.Logger().Info("early stop fit baseline", zap.Int("epoch", epoch))
			break
		}
	}
	evalSet := trainSet
	if validateSet.Count() > 0 {
		evalSet = validateSet
	}
	return Score{RMSE: RMSE(baseLine, evalSet), MAE: MAE(baseLine, evalSet)}, nil
}
