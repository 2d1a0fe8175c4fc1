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

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scores the discovered repositories and writes both reports",
	Long: `Reads the repository list produced by discover, fetches each repository's
pull requests, issues and README, scores them against the
integration-friction keyword vocabulary, and writes the per-repository
detail report and the per-language-pair summary report.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)
		token := githubToken()

		cfg, rps, err := configFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		reposPath, _ := cmd.Flags().GetString("repos")
		detailPath, _ := cmd.Flags().GetString("detail")
		summaryPath, _ := cmd.Flags().GetString("summary")

		entries, err := report.ReadRepoList(reposPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read repository list: %v\n", err)
			os.Exit(1)
		}

		gw, err := gateway.NewGitHubGateway(token, gateway.NewRatePacer(rps), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
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
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("repos", "repos_to_analyze.csv", "Input CSV of confirmed dual-language repositories")
	scanCmd.Flags().String("detail", "repo_difficulty_detail.csv", "Output CSV of per-repository results")
	scanCmd.Flags().String("summary", "lang_pair_difficulty_summary.csv", "Output CSV of per-language-pair statistics")
	addConfigFlags(scanCmd)
}
