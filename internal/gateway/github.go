// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/polyglot-study/frictionscan/internal/domain"
)

// ArtifactSource fetches one repository's collaborative artifacts.
type ArtifactSource interface {
	// ListArtifactPage returns one page of pull requests or issues.
	ListArtifactPage(ctx context.Context, fullName string, kind domain.ArtifactKind, page, perPage int) ([]domain.Artifact, error)
	// FetchReadme returns the decoded README text of the repository.
	FetchReadme(ctx context.Context, fullName string) (string, error)
}

// SearchSource finds candidate repositories and their declared languages.
type SearchSource interface {
	// SearchReposByLanguage returns up to limit repository full names
	// matching the language and star filter, most recently updated first.
	SearchReposByLanguage(ctx context.Context, lang string, minStars, limit int) ([]string, error)
	// RepoLanguages returns the byte counts per language for a repository.
	RepoLanguages(ctx context.Context, fullName string) (map[string]int, error)
}

// PopulationSource reports how many repositories satisfy a dual-language query.
type PopulationSource interface {
	CountDualLanguageRepos(ctx context.Context, lang1, lang2 string, minStars int) (int, error)
}

// GitHubGateway is the concrete implementation of all three sources.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	pacer         Pacer
	logger        *log.Logger
}

var (
	_ ArtifactSource   = (*GitHubGateway)(nil)
	_ SearchSource     = (*GitHubGateway)(nil)
	_ PopulationSource = (*GitHubGateway)(nil)
)

// repoCountQuery asks the GraphQL search API for the population size of a
// dual-language query without pulling any result nodes.
type repoCountQuery struct {
	Search struct {
		RepositoryCount githubv4.Int
	} `graphql:"search(query: $query, type: REPOSITORY, first: 1)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, pacer Pacer, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		pacer:         pacer,
		logger:        logger,
	}, nil
}

func splitFullName(fullName string) (string, string, error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid repository name %q", fullName)
	}
	return owner, name, nil
}

func (g *GitHubGateway) ListArtifactPage(ctx context.Context, fullName string, kind domain.ArtifactKind, page, perPage int) ([]domain.Artifact, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}
	if err := g.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindPullRequest:
		opts := &github.PullRequestListOptions{
			State:       "all",
			ListOptions: github.ListOptions{Page: page, PerPage: perPage},
		}
		prs, _, err := g.restClient.PullRequests.List(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests for %s, page %d: %w", fullName, page, err)
		}
		artifacts := make([]domain.Artifact, 0, len(prs))
		for _, pr := range prs {
			artifacts = append(artifacts, domain.Artifact{
				Title:         pr.GetTitle(),
				Body:          pr.GetBody(),
				IsPullRequest: true,
			})
		}
		return artifacts, nil

	case domain.KindIssue:
		opts := &github.IssueListByRepoOptions{
			State:       "all",
			ListOptions: github.ListOptions{Page: page, PerPage: perPage},
		}
		issues, _, err := g.restClient.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues for %s, page %d: %w", fullName, page, err)
		}
		artifacts := make([]domain.Artifact, 0, len(issues))
		for _, issue := range issues {
			artifacts = append(artifacts, domain.Artifact{
				Title:         issue.GetTitle(),
				Body:          issue.GetBody(),
				IsPullRequest: issue.IsPullRequest(),
			})
		}
		return artifacts, nil

	default:
		return nil, fmt.Errorf("unknown artifact kind %q", kind)
	}
}

// FetchReadme returns the decoded README text. The payload arrives
// base64-encoded; decoding happens here via go-github, and a decode failure
// surfaces as an ordinary error for the caller to degrade on.
func (g *GitHubGateway) FetchReadme(ctx context.Context, fullName string) (string, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return "", err
	}
	if err := g.pacer.Wait(ctx); err != nil {
		return "", err
	}
	readme, _, err := g.restClient.Repositories.GetReadme(ctx, owner, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch README for %s: %w", fullName, err)
	}
	content, err := readme.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode README for %s: %w", fullName, err)
	}
	return content, nil
}

func (g *GitHubGateway) SearchReposByLanguage(ctx context.Context, lang string, minStars, limit int) ([]string, error) {
	if err := g.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	perPage := limit
	if perPage > 100 {
		perPage = 100
	}
	query := fmt.Sprintf("language:%s stars:>=%d", lang, minStars)
	opts := &github.SearchOptions{
		Sort:        "updated",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	result, _, err := g.restClient.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search repositories for %s: %w", lang, err)
	}
	names := make([]string, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		names = append(names, repo.GetFullName())
	}
	g.logger.Printf("Found %d candidate repositories for %s", len(names), lang)
	return names, nil
}

func (g *GitHubGateway) RepoLanguages(ctx context.Context, fullName string) (map[string]int, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}
	if err := g.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	languages, _, err := g.restClient.Repositories.ListLanguages(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch languages for %s: %w", fullName, err)
	}
	return languages, nil
}

func (g *GitHubGateway) CountDualLanguageRepos(ctx context.Context, lang1, lang2 string, minStars int) (int, error) {
	if err := g.pacer.Wait(ctx); err != nil {
		return 0, err
	}
	query := fmt.Sprintf("language:%s language:%s stars:>=%d", lang1, lang2, minStars)
	variables := map[string]interface{}{"query": githubv4.String(query)}
	var q repoCountQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return 0, fmt.Errorf("failed to count repositories for %s-%s: %w", lang1, lang2, err)
	}
	return int(q.Search.RepositoryCount), nil
}
