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
	"log/slog"
	"os"

	"github.com/gnames/dwcacheck/internal/io/reportio"
	dwcacheck "github.com/gnames/dwcacheck/pkg"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/spf13/cobra"
)

// checkAllCmd represents the check-all command
var checkAllCmd = &cobra.Command{
	Use:   "check-all",
	Short: "Checks if reference identifiers of all datasets resolve",
	Long: `Collects unique identifiers of all datasets and resolves every one of
them once. Results are saved to check_all_results.tsv, counts by domain are
saved to check_all_domains.tsv.`,
	Run: func(_ *cobra.Command, _ []string) {
		cfg := config.New(opts...)
		gnd := dwcacheck.New(cfg)

		r, closeStore := resolver(cfg)
		defer closeStore()

		ctx, stop := interruptible()
		defer stop()

		res, err := gnd.CheckAll(ctx, r)
		if err != nil {
			slog.Error("Cannot check identifiers", "error", err)
			closeStore()
			os.Exit(1)
		}
		reportio.CheckAll(os.Stdout, res)
	},
}

func init() {
	rootCmd.AddCommand(checkAllCmd)
}
