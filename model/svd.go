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
	"gonum.org/v1/gonum/floats"
)

// SVD is the matrix factorization algorithm popularized by Simon Funk during
// the Netflix Prize. The prediction \hat{r}_{ui} is set as:
//
//	\hat{r}_{ui} = μ + b_u + b_i + q_i^T p_u
//
// where μ is the mean of observed ratings, fixed at training start. Unlike a
// raw truncated SVD of the filled rating matrix, the model is fit only on
// observed entries by stochastic gradient descent, which is the sound
// treatment of sparse partially-observed matrices. If user u is unknown, the
// bias b_u and the factors p_u are assumed to be zero. The same applies to
// item i with b_i and q_i.
type SVD struct {
	BaseModel
	// Model parameters
	UserFactor [][]float64 // p_u
	ItemFactor [][]float64 // q_i
	UserBias   []float64   // b_u
	ItemBias   []float64   // b_i
	GlobalMean float64     // mu
	UserIndex  *base.Index
	ItemIndex  *base.Index
	// Hyper parameters
	useBias    bool
	nFactors   int
	nEpochs    int
	lr         float64
	reg        float64
	initMean   float64
	initStdDev float64
}

// NewSVD creates an SVD model. Params:
//
//	UseBias    - Use user/item bias terms. Default is true.
//	Reg        - The regularization parameter of the cost function that is
//	             optimized. Default is 0.02.
//	Lr         - The learning rate of SGD. Default is 0.005.
//	NFactors   - The number of latent factors. Default is 100.
//	NEpochs    - The number of iterations of the SGD procedure. Default is 20.
//	InitMean   - The mean of initial random latent factors. Default is 0.
//	InitStdDev - The standard deviation of initial random latent factors.
//	             Default is 0.1.
func NewSVD(params Params) *SVD {
	svd := new(SVD)
	svd.SetParams(params)
	return svd
}

// SetParams sets hyper-parameters of the SVD model.
func (svd *SVD) SetParams(params Params) {
	svd.BaseModel.SetParams(params)
	svd.useBias = svd.Params.GetBool(UseBias, true)
	svd.nFactors = svd.Params.GetInt(NFactors, 100)
	svd.nEpochs = svd.Params.GetInt(NEpochs, 20)
	svd.lr = svd.Params.GetFloat64(Lr, 0.005)
	svd.reg = svd.Params.GetFloat64(Reg, 0.02)
	svd.initMean = svd.Params.GetFloat64(InitMean, 0)
	svd.initStdDev = svd.Params.GetFloat64(InitStdDev, 0.1)
}

// Predict returns the estimated rating given by a user to an item. Unknown
// users and items degrade to the global mean plus whichever bias is known.
func (svd *SVD) Predict(userId, itemId int) float64 {
	userIndex := svd.UserIndex.ToNumber(userId)
	itemIndex := svd.ItemIndex.ToNumber(itemId)
	return svd.internalPredict(userIndex, itemIndex)
}

// PredictStrict behaves like Predict but returns ErrUnknownEntity when the
// user or the item was not seen during training, for callers that need to
// tell cold start apart from a real prediction.
func (svd *SVD) PredictStrict(userId, itemId int) (float64, error) {
	userIndex := svd.UserIndex.ToNumber(userId)
	itemIndex := svd.ItemIndex.ToNumber(itemId)
	if userIndex == base.NotId || itemIndex == base.NotId {
		return 0, errors.WithType(errors.Errorf(
			"no prediction for user %v and item %v", userId, itemId), ErrUnknownEntity)
	}
	return svd.internalPredict(userIndex, itemIndex), nil
}

func (svd *SVD) internalPredict(userIndex, itemIndex int32) float64 {
	ret := svd.GlobalMean
	// + b_u
	if userIndex != base.NotId {
		ret += svd.UserBias[userIndex]
	}
	// + b_i
	if itemIndex != base.NotId {
		ret += svd.ItemBias[itemIndex]
	}
	// + q_i^T p_u
	if userIndex != base.NotId && itemIndex != base.NotId {
		ret += floats.Dot(svd.UserFactor[userIndex], svd.ItemFactor[itemIndex])
	}
	return ret
}

// Fit the SVD model. Observed ratings are visited in a freshly shuffled
// order every epoch. Training runs for the configured number of epochs
// unless the epoch hook stops it early, and aborts with ErrDivergence when
// the training RMSE becomes non-finite.
func (svd *SVD) Fit(trainSet, validateSet *DataSet, config *FitConfig) (Score, error) {
	config = config.LoadDefaultIfNil()
	if trainSet.Count() == 0 {
		return Score{}, errors.WithType(errors.New("no ratings to fit"), ErrEmptyDataSet)
	}
	log.Logger().Info("fit svd",
		zap.Int("train_set_size", trainSet.Count()),
		zap.Int("validate_set_size", validateSet.Count()),
		zap.Any("params", svd.GetParams()))
	// Initialize parameters
	svd.UserIndex = trainSet.UserIndex
	svd.ItemIndex = trainSet.ItemIndex
	svd.GlobalMean = trainSet.GlobalMean()
	svd.UserBias = make([]float64, trainSet.UserCount())
	svd.ItemBias = make([]float64, trainSet.ItemCount())
	svd.UserFactor = svd.GetRandomGenerator().NormalMatrix(
		trainSet.UserCount(), svd.nFactors, svd.initMean, svd.initStdDev)
	svd.ItemFactor = svd.GetRandomGenerator().NormalMatrix(
		trainSet.ItemCount(), svd.nFactors, svd.initMean, svd.initStdDev)
	// Create buffers for pre-update factors
	oldUserFactor := make([]float64, svd.nFactors)
	oldItemFactor := make([]float64, svd.nFactors)
	// Stochastic gradient descent
	for epoch := 1; epoch <= svd.nEpochs; epoch++ {
		perm := svd.GetRandomGenerator().Perm(trainSet.Count())
		for _, i := range perm {
			userIndex, itemIndex, rating := trainSet.GetIndex(i)
			// Compute error: e_{ui} = r - \hat{r}
			upGrad := rating - svd.internalPredict(userIndex, itemIndex)
			if svd.useBias {
				// Update user bias: b_u <- b_u + \gamma (e_{ui} - \lambda b_u)
				svd.UserBias[userIndex] += svd.lr * (upGrad - svd.reg*svd.UserBias[userIndex])
				// Update item bias: b_i <- b_i + \gamma (e_{ui} - \lambda b_i)
				svd.ItemBias[itemIndex] += svd.lr * (upGrad - svd.reg*svd.ItemBias[itemIndex])
			}
			// Both factor updates must read the pre-update opposite vector.
			copy(oldUserFactor, svd.UserFactor[userIndex])
			copy(oldItemFactor, svd.ItemFactor[itemIndex])
			// Update user latent factor: p_u <- p_u + \gamma (e_{ui} q_i - \lambda p_u)
			floats.AddScaled(svd.UserFactor[userIndex], svd.lr*upGrad, oldItemFactor)
			floats.AddScaled(svd.UserFactor[userIndex], -svd.lr*svd.reg, oldUserFactor)
			// Update item latent factor: q_i <- q_i + \gamma (e_{ui} p_u - \lambda q_i)
			floats.AddScaled(svd.ItemFactor[itemIndex], svd.lr*upGrad, oldUserFactor)
			floats.AddScaled(svd.ItemFactor[itemIndex], -svd.lr*svd.reg, oldItemFactor)
		}
		// Loss sanity check
		trainRMSE := RMSE(svd, trainSet)
		if math.IsNaN(trainRMSE) || math.IsInf(trainRMSE, 0) {
			return Score{}, errors.WithType(errors.Errorf(
				"non-finite RMSE after epoch %d", epoch), ErrDivergence)
		}
		epochRMSE := trainRMSE
		if validateSet.Count() > 0 {
			epochRMSE = RMSE(svd, validateSet)
		}
		if config.Verbose > 0 && (epoch%config.Verbose == 0 || epoch == svd.nEpochs) {
			log.Logger().Debug("fit svd",
				zap.Int("epoch", epoch),
				zap.Int("n_epochs", svd.nEpochs),
				zap.Float64("rmse", epochRMSE))
		}
		if config.OnEpoch != nil && !config.OnEpoch(epoch, epochRMSE) {
			log.Logger().Info("early stop fit svd", zap.Int("epoch", epoch))
			break
		}
	}
	evalSet := trainSet
	if validateSet.Count() > 0 {
		evalSet = validateSet
	}
	score := Score{RMSE: RMSE(svd, evalSet), MAE: MAE(svd, evalSet)}
	log.Logger().Info("fit svd complete",
		zap.Float64("rmse", score.RMSE),
		zap.Float64("mae", score.MAE))
	return score, nil
}
