package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkhanna/txnsight/internal/logger"
	"github.com/dkhanna/txnsight/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent analysis runs from BigQuery",
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to list")
}

func runRuns(cmd *cobra.Command, args []string) error {
	log := newLogger()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	projectID := viper.GetString("bigquery.project")
	if projectID == "" {
		return fmt.Errorf("runs: bigquery.project is not configured")
	}

	client, err := store.NewClient(ctx, store.Config{
		ProjectID: projectID,
		DatasetID: viper.GetString("bigquery.dataset"),
	})
	if err != nil {
		return fmt.Errorf("runs: %w", err)
	}
	defer client.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := client.ListRecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No analysis runs found.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %-11s  %-7s  records=%-4d  spent=%.2f  income=%.2f\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.ExtractorType,
			r.Status,
			r.RecordCount.Int64,
			r.TotalSpent.Float64,
			r.TotalIncome.Float64,
		)
	}
	return nil
}
