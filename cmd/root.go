// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/naka-gawa/dockerhub-pulls/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dockerhub-pulls",
	Short: "A CLI tool to report Docker Hub pull counts of an organization.",
	Long: `dockerhub-pulls fetches the pull count of every repository in a Docker Hub
organization and records it either in a dated CSV/XLSX snapshot (collect) or as a new
dated column of a shared Google spreadsheet (sheet).

Credentials are read from the environment, optionally loaded from a .env file:
USERNAME and PASSWORD for Docker Hub, GOOGLE_SHEETS_CREDS for the spreadsheet.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		// Variables already set in the process environment are not overridden.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file to load before running")
	rootCmd.PersistentFlags().StringP("org", "o", config.DefaultOrganization, "Docker Hub organization to report on")
	rootCmd.PersistentFlags().String("registry-url", config.DefaultRegistryURL, "Base URL of the Docker Hub API")
	rootCmd.PersistentFlags().Int("concurrency", config.DefaultConcurrency, "Number of repositories fetched at the same time")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Timeout of each registry request")
}

// newLogger returns a logger that writes to stderr only when --verbose is set.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if verbose {
		logger.SetOutput(os.Stderr) // If verbose, log to standard error.
	}
	return logger
}
