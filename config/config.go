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

// Package config loads the TOML configuration file.
package config

import (
	"github.com/juju/errors"
	"github.com/reclens/reclens/model"
	"github.com/spf13/viper"
)

// Config is the configuration for the command line.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Model     ModelConfig     `mapstructure:"model"`
	Recommend RecommendConfig `mapstructure:"recommend"`
}

// DataConfig describes the rating and item files.
type DataConfig struct {
	Ratings   string  `mapstructure:"ratings"`
	Items     string  `mapstructure:"items"`
	Separator string  `mapstructure:"separator"`
	Header    bool    `mapstructure:"header"`
	MinRating float64 `mapstructure:"min_rating"`
	MaxRating float64 `mapstructure:"max_rating"`
}

// ModelConfig holds the training hyperparameters.
type ModelConfig struct {
	NFactors        int     `mapstructure:"n_factors"`
	NEpochs         int     `mapstructure:"n_epochs"`
	Lr              float64 `mapstructure:"lr"`
	Reg             float64 `mapstructure:"reg"`
	InitStdDev      float64 `mapstructure:"init_std_dev"`
	RandomState     int64   `mapstructure:"random_state"`
	ValidationRatio float64 `mapstructure:"validation_ratio"`
}

// Params converts the hyperparameters to model parameters.
func (config *ModelConfig) Params() model.Params {
	return model.Params{
		model.NFactors:    config.NFactors,
		model.NEpochs:     config.NEpochs,
		model.Lr:          config.Lr,
		model.Reg:         config.Reg,
		model.InitStdDev:  config.InitStdDev,
		model.RandomState: config.RandomState,
	}
}

// RecommendConfig holds the recommendation settings.
type RecommendConfig struct {
	TopN int `mapstructure:"top_n"`
}

func setDefault() {
	viper.SetDefault("data.separator", "\t")
	viper.SetDefault("data.header", false)
	viper.SetDefault("data.min_rating", 1)
	viper.SetDefault("data.max_rating", 5)
	viper.SetDefault("model.n_factors", 100)
	viper.SetDefault("model.n_epochs", 20)
	viper.SetDefault("model.lr", 0.005)
	viper.SetDefault("model.reg", 0.02)
	viper.SetDefault("model.init_std_dev", 0.1)
	viper.SetDefault("model.random_state", 0)
	viper.SetDefault("model.validation_ratio", 0)
	viper.SetDefault("recommend.top_n", 10)
}

// LoadConfig loads the configuration from a TOML file. Missing keys fall back
// to defaults.
func LoadConfig(path string) (*Config, error) {
	setDefault()
	viper.SetConfigType("toml")
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	conf := new(Config)
	if err := viper.Unmarshal(conf); err != nil {
		return nil, errors.Trace(err)
	}
	return conf, nil
}
