package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/naka-gawa/dockerhub-pulls/internal/config"
	"github.com/naka-gawa/dockerhub-pulls/internal/export"
	"github.com/naka-gawa/dockerhub-pulls/internal/gateway"
	"github.com/naka-gawa/dockerhub-pulls/internal/usecase"
	"github.com/spf13/cobra"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Writes a dated snapshot of repository pull counts",
	Long: `Lists every repository of the organization, fetches its pull count and the
overview heading of its description, and writes them to
dockerhub-repositories-YYYY-MM-DD.csv (or .xlsx). A second run on the same day
replaces that day's file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger(cmd)

		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		if err := cfg.ValidateRegistry(); err != nil {
			return err
		}
		writer, err := export.NewWriter(cfg.Format)
		if err != nil {
			return err
		}

		// Inject dependencies and run the main business logic.
		fetcher, err := gateway.NewDockerHubGateway(ctx, cfg.RegistryURL, cfg.Username, cfg.Password, cfg.Timeout, logger)
		if err != nil {
			return fmt.Errorf("failed to create registry gateway: %w", err)
		}
		repositories, err := usecase.NewCollector(fetcher, logger, cfg.Concurrency).Collect(ctx, cfg.Organization)
		if err != nil {
			return fmt.Errorf("failed to collect repositories: %w", err)
		}

		path := export.FileName(cfg.OutputDir, cfg.Format, time.Now())
		if err := writer.Write(path, repositories); err != nil {
			return err
		}

		summary := usecase.Summarize(repositories)
		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "Data saved to %s\n", path)
		fmt.Fprintf(out, "%d repositories, %d pulls in total, median %.0f, max %d\n",
			summary.Repositories, summary.TotalPulls, summary.MedianPulls, summary.MaxPulls)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
	collectCmd.Flags().String("output-dir", ".", "Directory the snapshot is written to")
	collectCmd.Flags().String("format", export.FormatCSV, "Snapshot format (csv or xlsx)")
}
