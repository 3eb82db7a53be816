package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/Abraxas-365/skillbridge/pkg/config"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/spf13/cobra"
)

// errEnqueueWithoutRedis is returned for --enqueue when no shared queue exists.
// The in-process queue would die with this command.
var errEnqueueWithoutRedis = errors.New("ingest --enqueue requires REDIS_URL: without Redis there is no queue shared with the server's worker")

func checkEnqueue(cfg *config.Config, enqueue bool) error {
	if enqueue && cfg.Redis.URL == "" {
		return errEnqueueWithoutRedis
	}
	return nil
}

func newIngestCmd() *cobra.Command {
	var (
		enqueue bool
		req     job.IngestionRequest
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Replace the job pool with a fresh generation from the job feed",
		Long: "Runs one ingestion synchronously and prints its report. With --enqueue the run\n" +
			"is handed to the worker of a running server instead.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := checkEnqueue(cfg, enqueue); err != nil {
				return err
			}

			container, err := NewContainer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer container.Close()

			if enqueue {
				task, err := container.Dispatcher.Enqueue(cmd.Context(), job.TaskSourceManual, req)
				if err != nil {
					return err
				}
				logx.Infof("Queued ingestion task %s", task.ID)
				return nil
			}

			report, err := container.IngestionService.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&enqueue, "enqueue", false, "queue the run for the server's worker")
	flags.StringSliceVar(&req.Queries, "query", nil, "search query, repeatable (defaults to INGEST_QUERIES)")
	flags.IntVar(&req.MaxJobs, "max-jobs", 0, "cap on stored postings (defaults to INGEST_MAX_JOBS)")
	flags.IntVar(&req.MaxPages, "max-pages", 0, "pages fetched per query (defaults to INGEST_MAX_PAGES)")
	flags.StringVar(&req.Country, "country", "", "feed country code (defaults to INGEST_COUNTRY)")
	flags.StringVar(&req.DatePosted, "date-posted", "", "feed recency filter (defaults to INGEST_DATE_POSTED)")
	return cmd
}
