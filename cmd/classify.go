/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/gnames/dwcacheck/internal/io/reportio"
	dwcacheck "github.com/gnames/dwcacheck/pkg"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/spf13/cobra"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <dataset>",
	Short: "Groups reference identifiers of a dataset by domain",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.New(opts...)
		gnd := dwcacheck.New(cfg)
		ds := datasetArg(cmd, gnd, args)

		res, ok := gnd.Classify(ds)
		if !ok {
			fmt.Printf("Dataset '%s' does not have an identifier field "+
				"in its Reference extension.\n", ds.Name)
			return
		}
		if res.Total == 0 {
			fmt.Printf("No identifiers found in '%s/reference.txt'.\n", ds.Name)
			return
		}
		reportio.Classify(os.Stdout, res)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
