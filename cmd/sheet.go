package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/naka-gawa/dockerhub-pulls/internal/config"
	"github.com/naka-gawa/dockerhub-pulls/internal/gateway"
	"github.com/naka-gawa/dockerhub-pulls/internal/usecase"
	"github.com/spf13/cobra"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Appends today's pull counts to the shared spreadsheet",
	Long: `Fetches the pull count of every repository of the organization, appends a
dated column of absolute counts to the "Raw" tab and a dated column of day-over-day
delta formulas to the "Pre-processed" tab. Both tabs are rewritten in full.`,
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
		if err := cfg.ValidateSheets(); err != nil {
			return err
		}
		creds, err := config.DecodeCredentials(cfg.SheetsCredentials)
		if err != nil {
			return err
		}

		fetcher, err := gateway.NewDockerHubGateway(ctx, cfg.RegistryURL, cfg.Username, cfg.Password, cfg.Timeout, logger)
		if err != nil {
			return fmt.Errorf("failed to create registry gateway: %w", err)
		}
		store, err := gateway.NewSheetsGateway(ctx, creds, cfg.SpreadsheetID, logger)
		if err != nil {
			return fmt.Errorf("failed to create sheets gateway: %w", err)
		}

		counts, err := usecase.NewCollector(fetcher, logger, cfg.Concurrency).PullCounts(ctx, cfg.Organization)
		if err != nil {
			return fmt.Errorf("failed to fetch pull counts: %w", err)
		}
		result, err := usecase.NewUpdater(store, logger, time.Now).Update(ctx, counts)
		if err != nil {
			return fmt.Errorf("failed to update spreadsheet: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Spreadsheet updated for %s: %s column %s, %s column %s\n",
			result.Date, usecase.RawTab, result.RawColumn, usecase.PreprocessedTab, result.PreprocessedColumn)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sheetCmd)
	sheetCmd.Flags().String("spreadsheet-id", "", "ID of the shared spreadsheet (or SPREADSHEET_ID)")
}
