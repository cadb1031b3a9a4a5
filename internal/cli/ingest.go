package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dkhanna/txnsight/internal/ingest"
	"github.com/dkhanna/txnsight/internal/logger"
	"github.com/dkhanna/txnsight/internal/source"
	"github.com/dkhanna/txnsight/internal/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch a notification dump from GCS and persist the batch to BigQuery",
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().String("gcs-uri", "", "GCS URI of the notification dump (e.g. gs://bucket/dump.txt)")
	ingestCmd.MarkFlagRequired("gcs-uri")
}

func runIngest(cmd *cobra.Command, args []string) error {
	log := newLogger()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	gcsURI, _ := cmd.Flags().GetString("gcs-uri")

	projectID := viper.GetString("bigquery.project")
	if projectID == "" {
		return fmt.Errorf("ingest: bigquery.project is not configured")
	}

	sink, err := store.NewClient(ctx, store.Config{
		ProjectID: projectID,
		DatasetID: viper.GetString("bigquery.dataset"),
	})
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	defer sink.Close()

	log.Info().Str("gcs_uri", gcsURI).Msg("starting ingestion")

	result, err := ingest.Run(ctx, gcsURI, &source.GCS{}, sink, pipelineOptions())
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	log.Info().
		Str("run_id", result.RunID).
		Int("records", len(result.Records)).
		Float64("total_spent", result.Summary.TotalSpent).
		Float64("total_income", result.Summary.TotalIncome).
		Msg("ingestion complete")
	return nil
}
