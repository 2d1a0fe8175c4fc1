// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyglot-study/frictionscan/internal/gateway"
	"github.com/polyglot-study/frictionscan/internal/report"
	"github.com/polyglot-study/frictionscan/internal/usecase"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Finds repositories that use both languages of each low-collaboration pair",
	Long: `Reads a semicolon-delimited table of language pairs with collaboration
scores, keeps the pairs at or below the threshold, searches GitHub for
repositories advertising either language, verifies each candidate uses
both, and writes the confirmed set to a CSV for the scan step.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)
		token := githubToken()

		cfg, rps, err := configFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		pairsPath, _ := cmd.Flags().GetString("pairs")
		outPath, _ := cmd.Flags().GetString("out")

		raw, err := report.ReadPairs(pairsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read language pairs: %v\n", err)
			os.Exit(1)
		}
		pairs := usecase.NormalizePairs(raw, cfg.CollabScoreThreshold, logger)

		gw, err := gateway.NewGitHubGateway(token, gateway.NewRatePacer(rps), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}

		discovery := usecase.NewRepoDiscovery(gw, cfg, logger)
		entries := discovery.DiscoverAll(ctx, pairs)
		if len(entries) == 0 {
			logger.Println("No repositories retained after language check.")
		}

		if err := report.WriteRepoList(outPath, entries); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write repository list: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d repositories saved to %s\n", len(entries), outPath)
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().String("pairs", "", "Input CSV of language pairs with collaboration scores (required)")
	discoverCmd.Flags().String("out", "repos_to_analyze.csv", "Output CSV of confirmed dual-language repositories")
	discoverCmd.MarkFlagRequired("pairs")
	addConfigFlags(discoverCmd)
}
