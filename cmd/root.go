// Copyright © 2020 Dmitry Mozzherin <dmozzherin@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/dwcacheck/internal/ent/dwca"
	dwcacheck "github.com/gnames/dwcacheck/pkg"
	"github.com/gnames/dwcacheck/pkg/config"
	"github.com/gnames/gnsys"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//go:embed dwcacheck.yaml
var configText string

var (
	opts []config.Option
)

type cfgData struct {
	BaseDir      string
	OutputDir    string
	CacheDir     string
	JobsNum      int
	UserAgent    string
	CheckTimeout int
	MaxRedirects int
	OAURL        string
	OAEmail      string
	OATimeout    int
	OADelayMs    int
	PgHost       string
	PgUser       string
	PgPass       string
	PgDB         string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dwcacheck",
	Short: "Reports about taxa, references and identifiers of DwC-A datasets",
	Long: `dwcacheck analyses unpacked Darwin Core Archive datasets located in
subdirectories of a base directory. It collects taxa, checks if reference
identifiers resolve, looks up open access status of DOIs, groups identifiers
by domain, finds taxa without references or type specimens and normalises
institution codes of type specimens.

Every report writes tab-separated files to the output directory and prints
a summary to the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		version, err := cmd.Flags().GetBool("version")
		if err != nil {
			slog.Error("Cannot get flag", "error", err)
			os.Exit(1)
		}
		if version {
			fmt.Printf("\nversion: %s\nbuild: %s\n\n", config.Version, config.Build)
			os.Exit(0)
		}

		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	setupLogger()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().BoolP("version", "V", false, "Returns version and build date")

	pf := rootCmd.PersistentFlags()
	pf.StringP("base-dir", "b", "", "directory with dataset subdirectories")
	pf.StringP("output-dir", "o", "", "directory for TSV reports")
	pf.IntP("jobs", "j", 0, "number of concurrent identifier checks")

	_ = viper.BindPFlag("BaseDir", pf.Lookup("base-dir"))
	_ = viper.BindPFlag("OutputDir", pf.Lookup("output-dir"))
	_ = viper.BindPFlag("JobsNum", pf.Lookup("jobs"))
}

// setupLogger sets a colored slog handler. The level comes from LOG_LEVEL
// environment variable.
func setupLogger() {
	var level slog.Level
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	var homeDir, cfgDir string
	configFile := "dwcacheck"

	// Find home directory.
	homeDir, err = os.UserHomeDir()
	if err != nil {
		slog.Error("Cannot find home dir", "error", err)
		os.Exit(1)
	}
	cfgDir = filepath.Join(homeDir, ".config")

	viper.AddConfigPath(cfgDir)
	viper.SetConfigName(configFile)
	viper.SetEnvPrefix("DWCACHECK")
	viper.AutomaticEnv()

	configPath := filepath.Join(cfgDir, fmt.Sprintf("%s.yaml", configFile))
	touchConfigFile(configPath)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		slog.Error("Config file dwcacheck.yaml not found", "error", err)
		os.Exit(1)
	}
	opts = getOpts()
}

// getOpts imports data from the configuration file. Some of the settings can
// be overriden by command line flags.
func getOpts() []config.Option {
	var res []config.Option
	cfg := cfgData{}
	err := viper.Unmarshal(&cfg)
	if err != nil {
		slog.Error("Cannot unmarshal config file", "error", err)
	}

	if cfg.BaseDir != "" {
		res = append(res, config.OptBaseDir(cfg.BaseDir))
	}
	if cfg.OutputDir != "" {
		res = append(res, config.OptOutputDir(cfg.OutputDir))
	}
	if cfg.CacheDir != "" {
		res = append(res, config.OptCacheDir(cfg.CacheDir))
	}
	if cfg.JobsNum != 0 {
		res = append(res, config.OptJobsNum(cfg.JobsNum))
	}
	if cfg.UserAgent != "" {
		res = append(res, config.OptUserAgent(cfg.UserAgent))
	}
	if cfg.CheckTimeout != 0 {
		res = append(res,
			config.OptCheckTimeout(time.Duration(cfg.CheckTimeout)*time.Second))
	}
	if cfg.MaxRedirects != 0 {
		res = append(res, config.OptMaxRedirects(cfg.MaxRedirects))
	}
	if cfg.OAURL != "" {
		res = append(res, config.OptOAURL(cfg.OAURL))
	}
	if cfg.OAEmail != "" {
		res = append(res, config.OptOAEmail(cfg.OAEmail))
	}
	if cfg.OATimeout != 0 {
		res = append(res,
			config.OptOATimeout(time.Duration(cfg.OATimeout)*time.Second))
	}
	if cfg.OADelayMs != 0 {
		res = append(res,
			config.OptOADelay(time.Duration(cfg.OADelayMs)*time.Millisecond))
	}
	if cfg.PgHost != "" {
		res = append(res, config.OptPgHost(cfg.PgHost))
	}
	if cfg.PgUser != "" {
		res = append(res, config.OptPgUser(cfg.PgUser))
	}
	if cfg.PgPass != "" {
		res = append(res, config.OptPgPass(cfg.PgPass))
	}
	if cfg.PgDB != "" {
		res = append(res, config.OptPgDB(cfg.PgDB))
	}
	return res
}

// touchConfigFile checks if config file exists, and if not, it gets created.
func touchConfigFile(configPath string) {
	fileExists, _ := gnsys.FileExists(configPath)
	if fileExists {
		return
	}

	slog.Info("Creating config file", "path", configPath)
	createConfig(configPath)
}

// createConfig creates config file.
func createConfig(path string) {
	err := gnsys.MakeDir(filepath.Dir(path))
	if err != nil {
		slog.Error("Cannot create config dir", "error", err)
		os.Exit(1)
	}

	err = os.WriteFile(path, []byte(configText), 0644)
	if err != nil {
		slog.Error("Cannot write to config file", "error", err)
		os.Exit(1)
	}
}

// interruptible returns a context that is cancelled on Ctrl-C.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// datasetArg returns a dataset given as the first argument. Without the
// argument it prints usage, for an unknown dataset it logs the error. Both
// cases exit with status 1.
func datasetArg(
	cmd *cobra.Command,
	gnd dwcacheck.DwCACheck,
	args []string,
) dwca.Dataset {
	if len(args) == 0 {
		_ = cmd.Usage()
		os.Exit(1)
	}
	ds, err := gnd.Dataset(args[0])
	if err != nil {
		slog.Error("Cannot find dataset", "dataset", args[0], "error", err)
		os.Exit(1)
	}
	return ds
}
