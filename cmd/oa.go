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
	"github.com/gnames/dwcacheck/internal/io/unpaywallio"
	dwcacheck "github.com/gnames/dwcacheck/pkg"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/spf13/cobra"
)

// oaCmd represents the oa command
var oaCmd = &cobra.Command{
	Use:   "oa",
	Short: "Checks open access status of DOIs using Unpaywall API",
	Run: func(_ *cobra.Command, _ []string) {
		cfg := config.New(opts...)
		gnd := dwcacheck.New(cfg)

		ctx, stop := interruptible()
		defer stop()

		res, err := gnd.CheckOA(ctx, unpaywallio.New(cfg))
		if err != nil {
			slog.Error("Cannot check open access", "error", err)
			os.Exit(1)
		}
		reportio.OA(os.Stdout, res)
	},
}

func init() {
	rootCmd.AddCommand(oaCmd)
}
