package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/prebill-link/internal/model"
	"github.com/sells-group/prebill-link/internal/store"
)

var (
	jobsLimit  int
	jobsStatus string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List recent processing jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		jobs, err := st.ListJobs(ctx, store.JobFilter{
			Status: model.JobStatus(jobsStatus),
			Limit:  jobsLimit,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(jobs)
	},
}

func init() {
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 20, "max jobs to list")
	jobsCmd.Flags().StringVar(&jobsStatus, "status", "", "filter by status (running|complete|failed)")
	rootCmd.AddCommand(jobsCmd)
}
