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
	"github.com/juju/errors"
)

// Errors returned by the rating store, the factorization engine and the
// recommender. Match with errors.Is.
const (
	// ErrInvalidRating is returned when an ingested rating falls outside the
	// configured rating scale.
	ErrInvalidRating = errors.ConstError("rating out of range")
	// ErrEmptyDataSet is returned when training starts with no ratings.
	ErrEmptyDataSet = errors.ConstError("dataset is empty")
	// ErrDivergence is returned when the training loss becomes non-finite.
	// It surfaces hyper-parameter misconfiguration (usually an excessive
	// learning rate) to the caller.
	ErrDivergence = errors.ConstError("training diverged")
	// ErrUnknownEntity is returned by strict prediction when the user or the
	// item was not seen during training.
	ErrUnknownEntity = errors.ConstError("unknown user or item")
	// ErrUnknownUser is returned by strict recommendation for users without
	// any training rating.
	ErrUnknownUser = errors.ConstError("unknown user")
)
