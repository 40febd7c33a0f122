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
	"context"
	"log/slog"
	"os"

	"github.com/gnames/dwcacheck/internal/io/pgio"
	"github.com/gnames/dwcacheck/internal/io/reportio"
	dwcacheck "github.com/gnames/dwcacheck/pkg"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/spf13/cobra"
)

// taxaCmd represents the taxa command
var taxaCmd = &cobra.Command{
	Use:   "taxa",
	Short: "Collects taxa of all datasets into all_taxa.tsv",
	Run: func(cmd *cobra.Command, _ []string) {
		canonical, _ := cmd.Flags().GetBool("canonical")
		toDB, _ := cmd.Flags().GetBool("db")

		cfg := config.New(append(opts, config.OptWithCanonical(canonical))...)
		gnd := dwcacheck.New(cfg)

		res, err := gnd.AllTaxa()
		if err != nil {
			slog.Error("Cannot collect taxa", "error", err)
			os.Exit(1)
		}
		reportio.Taxa(os.Stdout, res)

		if !toDB {
			return
		}
		ex, err := pgio.New(cfg)
		if err != nil {
			slog.Error("Cannot connect to database", "error", err)
			os.Exit(1)
		}
		err = gnd.ExportTaxa(context.Background(), ex, res.Taxa)
		if err != nil {
			slog.Error("Cannot save taxa to database", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(taxaCmd)

	taxaCmd.Flags().BoolP("canonical", "c", false,
		"add canonical forms and name-string UUIDs")
	taxaCmd.Flags().BoolP("db", "d", false,
		"upload taxa to PostgreSQL database")
}
