package usecase

import (
	"context"
	"log"

	"github.com/polyglot-study/frictionscan/internal/domain"
	"github.com/polyglot-study/frictionscan/internal/gateway"
)

// ArtifactFetcher retrieves the collaborative artifacts of one repository
// page by page. Pages are requested strictly sequentially: termination
// depends on the content of each response.
type ArtifactFetcher struct {
	source gateway.ArtifactSource
	cfg    Config
	logger *log.Logger
}

// NewArtifactFetcher creates a new ArtifactFetcher instance.
func NewArtifactFetcher(source gateway.ArtifactSource, cfg Config, logger *log.Logger) *ArtifactFetcher {
	return &ArtifactFetcher{source: source, cfg: cfg, logger: logger}
}

// FetchPullRequests returns all pull requests within the page cap.
func (f *ArtifactFetcher) FetchPullRequests(ctx context.Context, fullName string) []domain.Artifact {
	return f.fetchPaged(ctx, fullName, domain.KindPullRequest, f.cfg.MaxPullRequestPages, nil)
}

// FetchIssues returns all issues within the page cap, excluding the
// issue-shaped records that are actually pull requests.
func (f *ArtifactFetcher) FetchIssues(ctx context.Context, fullName string) []domain.Artifact {
	return f.fetchPaged(ctx, fullName, domain.KindIssue, f.cfg.MaxIssuePages,
		func(a domain.Artifact) bool { return a.IsPullRequest })
}

// fetchPaged walks pages 1..maxPages. A fetch error stops the walk but keeps
// everything accumulated so far; an empty page means end of data; a short
// page is accepted and then ends the walk, saving one wasted request.
func (f *ArtifactFetcher) fetchPaged(ctx context.Context, fullName string, kind domain.ArtifactKind, maxPages int, skip func(domain.Artifact) bool) []domain.Artifact {
	perPage := f.cfg.PageSize
	if perPage > maxPageSize {
		perPage = maxPageSize
	}

	var all []domain.Artifact
	for page := 1; page <= maxPages; page++ {
		items, err := f.source.ListArtifactPage(ctx, fullName, kind, page, perPage)
		if err != nil {
			f.logger.Printf("Error fetching %ss for %s, page %d: %v", kind.Label(), fullName, page, err)
			break
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			if skip != nil && skip(item) {
				continue
			}
			all = append(all, item)
		}
		if len(items) < perPage {
			break
		}
	}
	f.logger.Printf("Fetched %d %ss for %s", len(all), kind.Label(), fullName)
	return all
}

// FetchReadme returns the repository README text, or an empty string when
// the fetch or the payload decode fails. Never fatal to the pipeline.
func (f *ArtifactFetcher) FetchReadme(ctx context.Context, fullName string) string {
	text, err := f.source.FetchReadme(ctx, fullName)
	if err != nil {
		f.logger.Printf("Error fetching README for %s: %v", fullName, err)
		return ""
	}
	return text
}
