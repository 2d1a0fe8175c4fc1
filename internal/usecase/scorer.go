package usecase

import (
	"context"
	"log"
	"sort"

	"github.com/polyglot-study/frictionscan/internal/domain"
	"github.com/polyglot-study/frictionscan/internal/gateway"
)

// RepoScorer turns one repository's artifacts into a keyword score.
type RepoScorer struct {
	index  *domain.KeywordIndex
	policy domain.MatchPolicy
}

// NewRepoScorer creates a new RepoScorer instance.
func NewRepoScorer(index *domain.KeywordIndex, policy domain.MatchPolicy) *RepoScorer {
	return &RepoScorer{index: index, policy: policy}
}

// ScoreOutcome holds the raw scoring figures for one repository.
type ScoreOutcome struct {
	Score         int
	ArtifactCount int
	PRCount       int
	IssueCount    int
	Matched       []string // distinct, sorted
}

// Score matches every pull request, every non-pull-request issue, and the
// README against the keyword index. The README always counts as one
// analyzed unit, even when empty.
func (s *RepoScorer) Score(prs, issues []domain.Artifact, readme string) ScoreOutcome {
	var matched []string
	for _, pr := range prs {
		matched = append(matched, s.index.Matches(pr.Text())...)
	}
	for _, issue := range issues {
		if issue.IsPullRequest {
			continue
		}
		matched = append(matched, s.index.Matches(issue.Text())...)
	}
	matched = append(matched, s.index.Matches(readme)...)

	distinct := dedupeSorted(matched)
	score := len(matched)
	if s.policy == domain.Presence {
		score = len(distinct)
	}
	return ScoreOutcome{
		Score:         score,
		ArtifactCount: len(prs) + len(issues) + 1,
		PRCount:       len(prs),
		IssueCount:    len(issues),
		Matched:       distinct,
	}
}

func dedupeSorted(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Analyzer runs the per-repository scan across the whole confirmed set.
type Analyzer struct {
	fetcher *ArtifactFetcher
	scorer  *RepoScorer
	cfg     Config
	logger  *log.Logger
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(source gateway.ArtifactSource, index *domain.KeywordIndex, cfg Config, logger *log.Logger) *Analyzer {
	return &Analyzer{
		fetcher: NewArtifactFetcher(source, cfg, logger),
		scorer:  NewRepoScorer(index, cfg.Policy),
		cfg:     cfg,
		logger:  logger,
	}
}

// AnalyzeAll scores every repository in discovery order. Repositories whose
// pull-request or issue count falls below MinArtifactsPerKind are dropped
// before they can skew the group statistics. One repository's failure never
// aborts the batch.
func (a *Analyzer) AnalyzeAll(ctx context.Context, entries []domain.RepoEntry) []domain.RepoResult {
	results := make([]domain.RepoResult, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			a.logger.Printf("Scan cancelled after %d repositories: %v", len(results), ctx.Err())
			break
		}
		a.logger.Printf("|-> Analyzing %s (%s-%s)...", entry.FullName, entry.Pair.Lang1, entry.Pair.Lang2)

		prs := a.fetcher.FetchPullRequests(ctx, entry.FullName)
		issues := a.fetcher.FetchIssues(ctx, entry.FullName)
		readme := a.fetcher.FetchReadme(ctx, entry.FullName)
		outcome := a.scorer.Score(prs, issues, readme)

		if outcome.PRCount < a.cfg.MinArtifactsPerKind || outcome.IssueCount < a.cfg.MinArtifactsPerKind {
			a.logger.Printf("Skipping %s (PRs: %d, issues: %d)", entry.FullName, outcome.PRCount, outcome.IssueCount)
			skipped++
			continue
		}

		density := 0.0
		if outcome.ArtifactCount > 0 {
			density = round4(float64(outcome.Score) / float64(outcome.ArtifactCount))
		}
		results = append(results, domain.RepoResult{
			Pair:              entry.Pair,
			FullName:          entry.FullName,
			ArtifactsAnalyzed: outcome.ArtifactCount,
			Score:             outcome.Score,
			Density:           density,
			HasDifficulty:     outcome.Score > 0,
			MatchedKeywords:   outcome.Matched,
		})
	}
	a.logger.Printf("Skipped %d repositories with insufficient PRs or issues.", skipped)
	return results
}
