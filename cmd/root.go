// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/polyglot-study/frictionscan/internal/domain"
	"github.com/polyglot-study/frictionscan/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "frictionscan",
	Short: "A CLI tool to scan GitHub repositories for cross-language integration friction.",
	Long: `frictionscan discovers repositories that mix two programming languages,
scores each one by scanning its pull requests, issues and README for a
vocabulary of integration-friction keywords, and aggregates the scores
into per-language-pair statistics with a rarity measure.`,
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
}

// newLogger builds the command logger: silent by default, stderr when the
// persistent verbose flag is set.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// githubToken reads the credential from the environment. Its absence is a
// fatal startup error; the pipeline must not run unauthenticated.
func githubToken() string {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		fmt.Fprintln(os.Stderr, "Error: GITHUB_TOKEN environment variable is not set.")
		os.Exit(1)
	}
	return token
}

// addConfigFlags registers the pipeline policy knobs on a command.
func addConfigFlags(cmd *cobra.Command) {
	defaults := usecase.DefaultConfig()
	cmd.Flags().Int("max-pr-pages", defaults.MaxPullRequestPages, "Maximum pages of pull requests fetched per repository")
	cmd.Flags().Int("max-issue-pages", defaults.MaxIssuePages, "Maximum pages of issues fetched per repository")
	cmd.Flags().Int("page-size", defaults.PageSize, "Items per page for paginated fetches (max 100)")
	cmd.Flags().Int("min-stars", defaults.MinStars, "Minimum star count for candidate repositories")
	cmd.Flags().Float64("collab-threshold", defaults.CollabScoreThreshold, "Maximum collaboration score for a pair to be analyzed")
	cmd.Flags().Int("min-artifacts", defaults.MinArtifactsPerKind, "Minimum pull requests and issues a repository needs to be counted")
	cmd.Flags().Int("max-repos", defaults.MaxReposPerLanguage, "Maximum candidate repositories fetched per language")
	cmd.Flags().String("match-policy", "count", "Keyword match policy: count or presence")
	cmd.Flags().Float64("rps", 1.2, "Maximum GitHub API requests per second")
}

// configFromFlags builds the pipeline configuration from the command flags.
// It also returns the request rate for the pacer.
func configFromFlags(cmd *cobra.Command) (usecase.Config, float64, error) {
	cfg := usecase.DefaultConfig()
	cfg.MaxPullRequestPages, _ = cmd.Flags().GetInt("max-pr-pages")
	cfg.MaxIssuePages, _ = cmd.Flags().GetInt("max-issue-pages")
	cfg.PageSize, _ = cmd.Flags().GetInt("page-size")
	cfg.MinStars, _ = cmd.Flags().GetInt("min-stars")
	cfg.CollabScoreThreshold, _ = cmd.Flags().GetFloat64("collab-threshold")
	cfg.MinArtifactsPerKind, _ = cmd.Flags().GetInt("min-artifacts")
	cfg.MaxReposPerLanguage, _ = cmd.Flags().GetInt("max-repos")

	policy, _ := cmd.Flags().GetString("match-policy")
	switch policy {
	case "count":
		cfg.Policy = domain.CountPerArtifact
	case "presence":
		cfg.Policy = domain.Presence
	default:
		return cfg, 0, fmt.Errorf("invalid --match-policy %q (want count or presence)", policy)
	}

	rps, _ := cmd.Flags().GetFloat64("rps")
	return cfg, rps, nil
}
