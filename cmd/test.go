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

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/reclens/reclens/base/log"
	"github.com/reclens/reclens/dataset"
	"github.com/reclens/reclens/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	testCommand.PersistentFlags().String("load-csv", "", "load ratings from CSV file")
	testCommand.PersistentFlags().String("csv-sep", "\t", "load CSV file with separator")
	testCommand.PersistentFlags().Bool("csv-header", false, "load CSV file with header")
	testCommand.PersistentFlags().Float64("min-rating", 1, "lower bound of the rating scale")
	testCommand.PersistentFlags().Float64("max-rating", 5, "upper bound of the rating scale")
	testCommand.PersistentFlags().String("splitter", "k-fold", "splitter for cross validation (k-fold or ratio)")
	testCommand.PersistentFlags().Int("n-split", 5, "number of splits")
	testCommand.PersistentFlags().Float64("test-ratio", 0.2, "test ratio for the ratio splitter")
	testCommand.PersistentFlags().Int64("random-state", 0, "random state (seed)")
	testCommand.PersistentFlags().Int("verbose", 10, "verbose period")
	for _, flag := range paramFlags {
		switch flag.kind {
		case intParam:
			testCommand.PersistentFlags().Int(flag.name, 0, flag.help)
		case float64Param:
			testCommand.PersistentFlags().Float64(flag.name, 0, flag.help)
		}
	}
}

const (
	intParam = iota
	float64Param
)

type paramFlag struct {
	kind int
	key  model.ParamName
	name string
	help string
}

var paramFlags = []paramFlag{
	{float64Param, model.Lr, "lr", "learning rate"},
	{float64Param, model.Reg, "reg", "regularization strength"},
	{intParam, model.NEpochs, "n-epochs", "number of epochs"},
	{intParam, model.NFactors, "n-factors", "number of factors"},
	{float64Param, model.InitStdDev, "init-std", "standard deviation of gaussian initial parameters"},
}

func parseParamFlags(cmd *cobra.Command) model.Params {
	params := make(model.Params)
	for _, flag := range paramFlags {
		if !cmd.PersistentFlags().Changed(flag.name) {
			continue
		}
		switch flag.kind {
		case intParam:
			value, err := cmd.PersistentFlags().GetInt(flag.name)
			if err != nil {
				log.Logger().Fatal("failed to get arguments", zap.Error(err))
			}
			params[flag.key] = value
		case float64Param:
			value, err := cmd.PersistentFlags().GetFloat64(flag.name)
			if err != nil {
				log.Logger().Fatal("failed to get arguments", zap.Error(err))
			}
			params[flag.key] = value
		}
	}
	return params
}

func newModel(name string, params model.Params) model.Model {
	switch name {
	case "svd":
		return model.NewSVD(params)
	case "baseline":
		return model.NewBaseLine(params)
	default:
		log.Logger().Fatal("unknown model", zap.String("name", name))
		return nil
	}
}

func loadRatings(cmd *cobra.Command) *model.DataSet {
	path, _ := cmd.PersistentFlags().GetString("load-csv")
	if path == "" {
		log.Logger().Fatal("no rating file, set --load-csv")
	}
	sep, _ := cmd.PersistentFlags().GetString("csv-sep")
	header, _ := cmd.PersistentFlags().GetBool("csv-header")
	minRating, _ := cmd.PersistentFlags().GetFloat64("min-rating")
	maxRating, _ := cmd.PersistentFlags().GetFloat64("max-rating")
	log.Logger().Info("load csv file", zap.String("csv_file", path))
	set, err := dataset.LoadRatingsCSV(path, sep, header, minRating, maxRating)
	if err != nil {
		log.Logger().Fatal("failed to load csv file", zap.Error(err))
	}
	log.Logger().Info("load data from csv file",
		zap.Int("n_users", set.UserCount()),
		zap.Int("n_items", set.ItemCount()),
		zap.Int("n_ratings", set.Count()))
	return set
}

var testCommand = &cobra.Command{
	Use:   "test [svd|baseline]",
	Short: "Cross validate a rating model",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := newModel(args[0], parseParamFlags(cmd))
		set := loadRatings(cmd)
		// Load runtime options
		seed, _ := cmd.PersistentFlags().GetInt64("random-state")
		nSplit, _ := cmd.PersistentFlags().GetInt("n-split")
		testRatio, _ := cmd.PersistentFlags().GetFloat64("test-ratio")
		splitterName, _ := cmd.PersistentFlags().GetString("splitter")
		var splitter model.Splitter
		switch splitterName {
		case "k-fold":
			splitter = model.NewKFoldSplitter(nSplit)
		case "ratio":
			splitter = model.NewRatioSplitter(nSplit, testRatio)
		default:
			log.Logger().Fatal("unknown splitter", zap.String("name", splitterName))
		}
		fitConfig := model.NewFitConfig()
		fitConfig.Verbose, _ = cmd.PersistentFlags().GetInt("verbose")
		// Cross validation
		start := time.Now()
		results, err := model.CrossValidate(m, set, splitter, seed, fitConfig,
			model.RMSE, model.MAE)
		if err != nil {
			log.Logger().Fatal("failed to cross validate", zap.Error(err))
		}
		elapsed := time.Since(start)
		// Render table
		table := tablewriter.NewWriter(os.Stdout)
		header := []string{"#"}
		for i := range results[0].TestScore {
			header = append(header, fmt.Sprintf("Fold %d", i+1))
		}
		header = append(header, "Mean")
		table.SetHeader(header)
		for i, name := range []string{"RMSE", "MAE"} {
			row := []string{name}
			for _, score := range results[i].TestScore {
				row = append(row, fmt.Sprintf("%.6f", score))
			}
			mean, margin := results[i].MeanAndMargin()
			row = append(row, fmt.Sprintf("%.6f(±%.6f)", mean, margin))
			table.Append(row)
		}
		table.Render()
		log.Logger().Info("complete cross validation", zap.String("time", elapsed.String()))
	},
}
