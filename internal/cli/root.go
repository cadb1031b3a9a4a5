// Package cli wires the txnsight commands: analyze local dumps, ingest from
// GCS into BigQuery, and inspect recent runs.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkhanna/txnsight/internal/logger"
	"github.com/dkhanna/txnsight/internal/pipeline"
)

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "txnsight",
		Short: "Extract structured transactions from bank notification text",
		Long: `txnsight turns unstructured bank notification messages (SMS-style text)
into structured transaction records and summary statistics, using a Gemini
model when one is configured and a deterministic regex extractor otherwise.`,
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.txnsight.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".txnsight")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("txnsight")
	viper.AutomaticEnv()

	viper.SetDefault("model.enabled", false)
	viper.SetDefault("model.name", pipeline.DefaultModelName)
	viper.SetDefault("model.timeout", pipeline.DefaultModelCallTimeout)
	viper.SetDefault("bigquery.dataset", "analysis")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
		// No config file is fine; defaults, env and flags cover everything.
	}
}

func newLogger() zerolog.Logger {
	log := logger.New()
	if verbose {
		return log.Level(zerolog.DebugLevel)
	}
	return log.Level(zerolog.InfoLevel)
}

// pipelineOptions builds run options from config. The session factory is
// attached only when the model path is enabled; availability is still probed
// per run by the pipeline itself.
func pipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		ModelTimeout: viper.GetDuration("model.timeout"),
	}
	if viper.GetBool("model.enabled") {
		opts.Sessions = &pipeline.GeminiSessionFactory{
			Model: viper.GetString("model.name"),
		}
	}
	return opts
}

const defaultRunTimeout = 5 * time.Minute
