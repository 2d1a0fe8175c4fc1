package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/polyglot-study/frictionscan/internal/domain"
)

// mockArtifactSource is a mock implementation of the gateway.ArtifactSource
// interface, so pagination logic can be tested without network access.
type mockArtifactSource struct {
	mock.Mock
}

func (m *mockArtifactSource) ListArtifactPage(ctx context.Context, fullName string, kind domain.ArtifactKind, page, perPage int) ([]domain.Artifact, error) {
	args := m.Called(ctx, fullName, kind, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Artifact), args.Error(1)
}

func (m *mockArtifactSource) FetchReadme(ctx context.Context, fullName string) (string, error) {
	args := m.Called(ctx, fullName)
	return args.String(0), args.Error(1)
}

// makeArtifacts builds n pull-request artifacts with the given body text.
func makeArtifacts(n int, body string) []domain.Artifact {
	artifacts := make([]domain.Artifact, n)
	for i := range artifacts {
		artifacts[i] = domain.Artifact{Title: fmt.Sprintf("item %d", i), Body: body, IsPullRequest: true}
	}
	return artifacts
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PageSize = 3
	return cfg
}

func TestArtifactFetcher_FetchPullRequests_PaginationTermination(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard, "", 0)

	t.Run("stops after the first short page", func(t *testing.T) {
		source := new(mockArtifactSource)
		// Page size 3: two full pages, then a short page of 2. No 4th request.
		source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindPullRequest, 1, 3).Return(makeArtifacts(3, ""), nil).Once()
		source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindPullRequest, 2, 3).Return(makeArtifacts(3, ""), nil).Once()
		source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindPullRequest, 3, 3).Return(makeArtifacts(2, ""), nil).Once()

		fetcher := NewArtifactFetcher(source, testConfig(), logger)
		items := fetcher.FetchPullRequests(ctx, "o/r")

		assert.Len(t, items, 8)
		source.AssertExpectations(t)
		source.AssertNumberOfCalls(t, "ListArtifactPage", 3)
	})

	t.Run("stops on an empty page", func(t *testing.T) {
		source := new(mockArtifactSource)
		source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindPullRequest, 1, 3).Return(makeArtifacts(3, ""), nil).Once()
		source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindPullRequest, 2, 3).Return([]domain.Artifact{}, nil).Once()

		fetcher := NewArtifactFetcher(source, testConfig(), logger)
		items := fetcher.FetchPullRequests(ctx, "o/r")

		assert.Len(t, items, 3)
		source.AssertExpectations(t)
	})

	t.Run("a failing page keeps the partial results", func(t *testing.T) {
		source := new(mockArtifactSource)
		source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindPullRequest, 1, 3).Return(makeArtifacts(3, ""), nil).Once()
		source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindPullRequest, 2, 3).Return(nil, errors.New("503")).Once()

		fetcher := NewArtifactFetcher(source, testConfig(), logger)
		items := fetcher.FetchPullRequests(ctx, "o/r")

		assert.Len(t, items, 3)
		source.AssertExpectations(t)
	})

	t.Run("never exceeds the page cap", func(t *testing.T) {
		source := new(mockArtifactSource)
		cfg := testConfig()
		cfg.MaxPullRequestPages = 2
		source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindPullRequest, 1, 3).Return(makeArtifacts(3, ""), nil).Once()
		source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindPullRequest, 2, 3).Return(makeArtifacts(3, ""), nil).Once()

		fetcher := NewArtifactFetcher(source, cfg, logger)
		items := fetcher.FetchPullRequests(ctx, "o/r")

		assert.Len(t, items, 6)
		source.AssertExpectations(t)
		source.AssertNumberOfCalls(t, "ListArtifactPage", 2)
	})
}

func TestArtifactFetcher_FetchIssues_SkipsPullRequests(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard, "", 0)

	page := []domain.Artifact{
		{Title: "real issue", IsPullRequest: false},
		{Title: "pr disguised as issue", IsPullRequest: true},
		{Title: "another issue", IsPullRequest: false},
	}
	source := new(mockArtifactSource)
	source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindIssue, 1, 3).Return(page, nil).Once()
	source.On("ListArtifactPage", mock.Anything, "o/r", domain.KindIssue, 2, 3).Return([]domain.Artifact{}, nil).Once()

	fetcher := NewArtifactFetcher(source, testConfig(), logger)
	items := fetcher.FetchIssues(ctx, "o/r")

	assert.Len(t, items, 2)
	for _, item := range items {
		assert.False(t, item.IsPullRequest)
	}
	source.AssertExpectations(t)
}

func TestArtifactFetcher_FetchReadme(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard, "", 0)

	t.Run("returns the decoded text", func(t *testing.T) {
		source := new(mockArtifactSource)
		source.On("FetchReadme", mock.Anything, "o/r").Return("hello world", nil)

		fetcher := NewArtifactFetcher(source, testConfig(), logger)
		assert.Equal(t, "hello world", fetcher.FetchReadme(ctx, "o/r"))
	})

	t.Run("degrades to empty text on any error", func(t *testing.T) {
		source := new(mockArtifactSource)
		source.On("FetchReadme", mock.Anything, "o/r").Return("", errors.New("404"))

		fetcher := NewArtifactFetcher(source, testConfig(), logger)
		assert.Equal(t, "", fetcher.FetchReadme(ctx, "o/r"))
	})
}
