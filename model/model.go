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

// Predictor scores a single (user, item) pair. Unknown users or items
// degrade to a bias-only estimate instead of failing.
type Predictor interface {
	// Predict the rating given by a user (userId) to an item (itemId).
	Predict(userId, itemId int) float64
}

// Model is the interface for rating prediction models. A model is fit
// wholesale: retraining replaces every learned parameter.
type Model interface {
	Predictor
	// SetParams sets hyper-parameters.
	SetParams(params Params)
	// GetParams returns hyper-parameters.
	GetParams() Params
	// Fit a model with a train set. The validation set may be nil.
	Fit(trainSet, validateSet *DataSet, config *FitConfig) (Score, error)
}

// Score is the evaluation of a fitted model on the validation set, or on the
// training set when no validation set was supplied.
type Score struct {
	RMSE float64
	MAE  float64
}

// EpochHook observes training at epoch boundaries. The reported RMSE is the
// validation RMSE when a validation set was supplied, the training RMSE
// otherwise. Returning false stops training after the current epoch.
type EpochHook func(epoch int, rmse float64) bool

// FitConfig holds runtime options of model fitting.
type FitConfig struct {
	Verbose int       // epochs between progress logs
	OnEpoch EpochHook // epoch-boundary hook, may be nil
}

// NewFitConfig creates a default fit config.
func NewFitConfig() *FitConfig {
	return &FitConfig{Verbose: 10}
}

// SetVerbose sets the number of epochs between progress logs.
func (config *FitConfig) SetVerbose(verbose int) *FitConfig {
	config.Verbose = verbose
	return config
}

// SetOnEpoch sets the epoch-boundary hook.
func (config *FitConfig) SetOnEpoch(hook EpochHook) *FitConfig {
	config.OnEpoch = hook
	return config
}

// LoadDefaultIfNil returns a default config if the receiver is nil.
func (config *FitConfig) LoadDefaultIfNil() *FitConfig {
	if config == nil {
		return NewFitConfig()
	}
	return config
}

// BaseModel is included by every rating prediction model. Hyper-parameters
// and the random generator are managed by the BaseModel.
type BaseModel struct {
	Params    Params               // Hyper-parameters
	rng       base.RandomGenerator // Random generator
	randState int64                // Random seed
}

// SetParams sets hyper-parameters for the BaseModel.
func (model *BaseModel) SetParams(params Params) {
	model.Params = params
	model.randState = model.Params.GetInt64(RandomState, 0)
	model.rng = base.NewRandomGenerator(model.randState)
}

// GetParams returns all hyper-parameters.
func (model *BaseModel) GetParams() Params {
	return model.Params
}

// GetRandomGenerator returns the seeded random generator.
func (model *BaseModel) GetRandomGenerator() base.RandomGenerator {
	return model.rng
}
