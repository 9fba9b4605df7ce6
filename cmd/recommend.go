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
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/reclens/reclens/base/log"
	"github.com/reclens/reclens/config"
	"github.com/reclens/reclens/dataset"
	"github.com/reclens/reclens/model"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	recommendCommand.PersistentFlags().StringP("config", "c", "config.toml", "configuration file")
	recommendCommand.PersistentFlags().Int("top-n", 0, "override the recommendation list length")
}

var recommendCommand = &cobra.Command{
	Use:   "recommend USER_ID",
	Short: "Train a model and recommend items for a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userId, err := strconv.Atoi(args[0])
		if err != nil {
			log.Logger().Fatal("invalid user id", zap.String("user_id", args[0]))
		}
		configPath, _ := cmd.PersistentFlags().GetString("config")
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.String("path", configPath), zap.Error(err))
		}
		topN := conf.Recommend.TopN
		if cmd.PersistentFlags().Changed("top-n") {
			topN, _ = cmd.PersistentFlags().GetInt("top-n")
		}
		// Load data
		store, err := dataset.LoadRatingsCSV(conf.Data.Ratings, conf.Data.Separator,
			conf.Data.Header, conf.Data.MinRating, conf.Data.MaxRating)
		if err != nil {
			log.Logger().Fatal("failed to load ratings", zap.Error(err))
		}
		log.Logger().Info("load ratings",
			zap.String("path", conf.Data.Ratings),
			zap.Int("n_users", store.UserCount()),
			zap.Int("n_items", store.ItemCount()),
			zap.Int("n_ratings", store.Count()))
		var catalog *dataset.Catalog
		if conf.Data.Items != "" {
			if catalog, err = dataset.LoadItemsCSV(conf.Data.Items, conf.Data.Separator,
				conf.Data.Header); err != nil {
				log.Logger().Fatal("failed to load items", zap.Error(err))
			}
			log.Logger().Info("load items",
				zap.String("path", conf.Data.Items),
				zap.Int("n_items", catalog.Len()))
		}
		// Train
		trainSet := store
		var validateSet *model.DataSet
		if conf.Model.ValidationRatio > 0 {
			trainSet, validateSet = store.SplitRatio(conf.Model.ValidationRatio,
				conf.Model.RandomState)
		}
		svd := model.NewSVD(conf.Model.Params())
		bar := progressbar.Default(int64(conf.Model.NEpochs), "fit")
		fitConfig := model.NewFitConfig().
			SetVerbose(0).
			SetOnEpoch(func(epoch int, rmse float64) bool {
				_ = bar.Add(1)
				return true
			})
		score, err := svd.Fit(trainSet, validateSet, fitConfig)
		if err != nil {
			log.Logger().Fatal("failed to fit model", zap.Error(err))
		}
		_ = bar.Finish()
		log.Logger().Info("complete fit",
			zap.Float64("rmse", score.RMSE),
			zap.Float64("mae", score.MAE))
		// Recommend over the whole catalog of rated items
		recommendations, err := model.Recommend(svd, store, userId,
			store.ItemIndex.GetIds(), topN, model.WithStrictUser(true))
		if err != nil {
			log.Logger().Fatal("failed to recommend", zap.Error(err))
		}
		// Render table
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Item", "Title", "Genres", "Score"})
		for _, row := range lo.Map(recommendations, func(r model.Recommendation, _ int) []string {
			title, genres := "", ""
			if item, exist := catalog.Get(r.ItemId); exist {
				title = item.Title
				genres = strings.Join(item.Genres, "|")
			}
			return []string{strconv.Itoa(r.ItemId), title, genres, fmt.Sprintf("%.4f", r.Score)}
		}) {
			table.Append(row)
		}
		table.Render()
	},
}
