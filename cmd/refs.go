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
	"log/slog"
	"os"

	"github.com/gnames/dwcacheck/internal/ent/dwca"
	"github.com/gnames/dwcacheck/internal/io/reportio"
	dwcacheck "github.com/gnames/dwcacheck/pkg"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/spf13/cobra"
)

// refsCmd represents the refs command
var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "Counts references without identifiers",
	Run: func(_ *cobra.Command, _ []string) {
		cfg := config.New(opts...)
		gnd := dwcacheck.New(cfg)

		fmt.Println("Checking whether all references have identifiers...")
		fmt.Println()
		res, err := gnd.RefsWithoutIDs()
		if err != nil {
			slog.Error("Cannot count references", "error", err)
			os.Exit(1)
		}
		reportio.Refs(os.Stdout, res)
	},
}

// noRefsCmd represents the no-refs command
var noRefsCmd = &cobra.Command{
	Use:   "no-refs [dataset]",
	Short: "Finds taxa without references",
	Long: `Finds taxa which ids do not appear in the coreid column of
reference.txt. Without an argument all datasets are checked and the taxa are
saved to taxa_without_references.tsv.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.New(opts...)
		gnd := dwcacheck.New(cfg)

		var dss []dwca.Dataset
		save := len(args) == 0
		if save {
			var err error
			if dss, err = gnd.Datasets(); err != nil {
				slog.Error("Cannot read datasets", "error", err)
				os.Exit(1)
			}
		} else {
			dss = []dwca.Dataset{datasetArg(cmd, gnd, args)}
		}

		res, err := gnd.TaxaWithoutRefs(dss, save)
		if err != nil {
			slog.Error("Cannot find taxa without references", "error", err)
			os.Exit(1)
		}
		reportio.NoRefs(os.Stdout, res)
	},
}

func init() {
	rootCmd.AddCommand(refsCmd)
	rootCmd.AddCommand(noRefsCmd)
}
