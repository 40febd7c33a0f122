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

	"github.com/gnames/dwcacheck/internal/io/reportio"
	dwcacheck "github.com/gnames/dwcacheck/pkg"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/spf13/cobra"
)

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Reports type specimen institutions and taxa without types",
	Run: func(_ *cobra.Command, _ []string) {
		cfg := config.New(opts...)
		gnd := dwcacheck.New(cfg)

		fmt.Println("Analysing type specimens across all datasets...")
		res, err := gnd.TypeSpecimens()
		if err != nil {
			slog.Error("Cannot analyse type specimens", "error", err)
			os.Exit(1)
		}
		reportio.Types(os.Stdout, res)
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
