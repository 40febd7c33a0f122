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

	"github.com/gnames/dwcacheck/internal/ent/ident"
	"github.com/gnames/dwcacheck/internal/io/kvio"
	"github.com/gnames/dwcacheck/internal/io/reportio"
	"github.com/gnames/dwcacheck/internal/io/webio"
	dwcacheck "github.com/gnames/dwcacheck/pkg"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <dataset>",
	Short: "Checks if reference identifiers of a dataset resolve",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.New(opts...)
		gnd := dwcacheck.New(cfg)
		ds := datasetArg(cmd, gnd, args)

		r, closeStore := resolver(cfg)
		defer closeStore()

		ctx, stop := interruptible()
		defer stop()

		res, ok, err := gnd.CheckIdentifiers(ctx, r, ds)
		if !ok {
			fmt.Printf("Dataset '%s' does not have an identifier field "+
				"in its Reference extension.\n", ds.Name)
			return
		}
		if err == nil && len(res.Results) == 0 {
			fmt.Printf("No identifiers found in '%s/reference.txt'.\n", ds.Name)
			return
		}

		fmt.Printf("Dataset: %s\n\n", ds.Name)
		if perr := reportio.CheckRows(os.Stdout, res); perr != nil {
			slog.Error("Cannot print results", "error", perr)
		}
		reportio.Check(os.Stdout, res)
		if err != nil {
			slog.Error("Identifier check stopped", "error", err)
			closeStore()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// resolver creates an identifier resolver backed by a per-run key-value
// store. Without the store identifiers are still resolved.
func resolver(cfg config.Config) (ident.Resolver, func()) {
	store, err := kvio.New(cfg.CacheDir)
	if err == nil {
		err = store.Open()
	}
	if err != nil {
		slog.Warn("Resolution store is not available", "error", err)
		return webio.New(cfg, nil), func() {}
	}
	return webio.New(cfg, store), func() {
		if err := store.Close(); err != nil {
			slog.Warn("Cannot close resolution store", "error", err)
		}
	}
}
