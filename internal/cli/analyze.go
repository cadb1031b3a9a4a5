package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkhanna/txnsight/internal/logger"
	"github.com/dkhanna/txnsight/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Extract transactions from a local notification dump",
	Long: `Runs the extraction pipeline over a local text file (one notification per
line) and prints the record batch and summary as JSON. Pass "-" or no
argument to read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("model", false, "use the configured Gemini model for extraction")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := newLogger()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	rawText, err := readInput(args)
	if err != nil {
		return err
	}

	opts := pipelineOptions()
	if useModel, _ := cmd.Flags().GetBool("model"); useModel && opts.Sessions == nil {
		opts.Sessions = &pipeline.GeminiSessionFactory{}
	}

	result, err := pipeline.Run(ctx, rawText, opts)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("analyze: encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
