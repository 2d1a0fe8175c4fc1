// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyglot-study/frictionscan/internal/domain"
	"github.com/polyglot-study/frictionscan/internal/gateway"
	"github.com/polyglot-study/frictionscan/internal/report"
	"github.com/polyglot-study/frictionscan/internal/usecase"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the full pipeline: discover, then scan",
	Long: `Runs discovery and scanning back to back. The intermediate repository
list is still written to disk and read back, so the hand-off artifact
between the two halves stays inspectable and resumable.`,
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
		reposPath, _ := cmd.Flags().GetString("repos")
		detailPath, _ := cmd.Flags().GetString("detail")
		summaryPath, _ := cmd.Flags().GetString("summary")

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
		discovered := discovery.DiscoverAll(ctx, pairs)
		if err := report.WriteRepoList(reposPath, discovered); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write repository list: %v\n", err)
			os.Exit(1)
		}
		logger.Printf("%d repositories saved to %s", len(discovered), reposPath)

		entries, err := report.ReadRepoList(reposPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read repository list back: %v\n", err)
			os.Exit(1)
		}

		analyzer := usecase.NewAnalyzer(gw, domain.DefaultKeywordIndex(), cfg, logger)
		results := analyzer.AnalyzeAll(ctx, entries)

		aggregator := usecase.NewAggregator(gw, cfg, logger)
		summaries := aggregator.Aggregate(ctx, results)

		if err := report.WriteDetail(detailPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write detail report: %v\n", err)
			os.Exit(1)
		}
		if err := report.WriteSummary(summaryPath, summaries); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write summary report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Analyzed %d repositories across %d language pairs\n", len(results), len(summaries))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("pairs", "", "Input CSV of language pairs with collaboration scores (required)")
	runCmd.Flags().String("repos", "repos_to_analyze.csv", "Intermediate CSV of confirmed dual-language repositories")
	runCmd.Flags().String("detail", "repo_difficulty_detail.csv", "Output CSV of per-repository results")
	runCmd.Flags().String("summary", "lang_pair_difficulty_summary.csv", "Output CSV of per-language-pair statistics")
	runCmd.MarkFlagRequired("pairs")
	addConfigFlags(runCmd)
}
