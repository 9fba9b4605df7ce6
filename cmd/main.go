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

// Package cmd implements the reclens command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/reclens/reclens/base/log"
	"github.com/spf13/cobra"
)

const versionName = "0.1.0"

var rootCommand = &cobra.Command{
	Use:   "reclens",
	Short: "Rating prediction and recommendation for MovieLens-style data sets",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLogger(cmd.PersistentFlags())
	},
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Check the version of reclens",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionName)
	},
}

func init() {
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.AddCommand(versionCommand)
	rootCommand.AddCommand(testCommand)
	rootCommand.AddCommand(recommendCommand)
}

// Main runs the command line.
func Main() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
