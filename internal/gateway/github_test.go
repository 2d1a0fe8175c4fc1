package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyglot-study/frictionscan/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	// Setup REST client to point to the mock server.
	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	// Use NewEnterpriseClient to point the GraphQL client to our mock server's URL.
	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())
	logger := log.New(io.Discard, "", 0)

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		pacer:         NopPacer{},
		logger:        logger,
	}

	return gateway, server
}

func TestGitHubGateway_ListArtifactPage(t *testing.T) {
	testCases := []struct {
		name           string
		kind           domain.ArtifactKind
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.Artifact
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "pull requests map to artifacts marked as PRs",
			kind: domain.KindPullRequest,
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Path, "/repos/o/r/pulls")
				assert.Equal(t, "all", r.URL.Query().Get("state"))
				assert.Equal(t, "2", r.URL.Query().Get("page"))
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"title": "add ffi layer", "body": "details"}, {"title": "no body"}]`)
			},
			expected: []domain.Artifact{
				{Title: "add ffi layer", Body: "details", IsPullRequest: true},
				{Title: "no body", IsPullRequest: true},
			},
		},
		{
			name: "issues carry the pull-request marker",
			kind: domain.KindIssue,
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Path, "/repos/o/r/issues")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"title": "real issue", "body": "b"}, {"title": "pr", "pull_request": {"url": "https://example.test/pulls/1"}}]`)
			},
			expected: []domain.Artifact{
				{Title: "real issue", Body: "b"},
				{Title: "pr", IsPullRequest: true},
			},
		},
		{
			name: "server error surfaces as an error",
			kind: domain.KindPullRequest,
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to list pull requests",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			artifacts, err := gateway.ListArtifactPage(context.Background(), "o/r", tc.kind, 2, 100)
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, artifacts)
			}
		})
	}
}

func TestGitHubGateway_ListArtifactPage_InvalidName(t *testing.T) {
	gateway, server := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for an invalid repository name")
	}))
	defer server.Close()

	_, err := gateway.ListArtifactPage(context.Background(), "not-a-full-name", domain.KindIssue, 1, 100)
	assert.Error(t, err)
}

func TestGitHubGateway_FetchReadme(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("# Hello\nthis is the readme"))

	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       string
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "decodes the base64 payload",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Path, "/repos/o/r/readme")
				w.WriteHeader(http.StatusOK)
				fmt.Fprintf(w, `{"type": "file", "encoding": "base64", "content": %q}`, encoded)
			},
			expected: "# Hello\nthis is the readme",
		},
		{
			name: "missing readme is an error for the caller to degrade on",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to fetch README",
		},
		{
			name: "malformed payload is a decode error, not a panic",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"type": "file", "encoding": "base64", "content": "%%%not-base64%%%"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to decode README",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			text, err := gateway.FetchReadme(context.Background(), "o/r")
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, text)
			}
		})
	}
}

func TestGitHubGateway_SearchReposByLanguage(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/search/repositories")
		query := r.URL.Query()
		assert.Equal(t, "language:Erlang stars:>=3", query.Get("q"))
		assert.Equal(t, "updated", query.Get("sort"))
		assert.Equal(t, "desc", query.Get("order"))
		assert.Equal(t, "100", query.Get("per_page"))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"total_count": 2, "items": [{"full_name": "org/alpha"}, {"full_name": "org/beta"}]}`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	names, err := gateway.SearchReposByLanguage(context.Background(), "Erlang", 3, 150)
	assert.NoError(t, err)
	assert.Equal(t, []string{"org/alpha", "org/beta"}, names)
}

func TestGitHubGateway_RepoLanguages(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/repos/o/r/languages")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"C": 78769, "Erlang": 12553}`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()

	languages, err := gateway.RepoLanguages(context.Background(), "o/r")
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"C": 78769, "Erlang": 12553}, languages)
}

func TestGitHubGateway_CountDualLanguageRepos(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       int
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path",
			responseBody: `{"data":{"search":{"repositoryCount":42}}}`,
			expected:     42,
		},
		{
			name:           "graphql error",
			responseBody:   `{"errors":[{"message":"Something went wrong"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to count repositories",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "language:C language:Java")
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			count, err := gateway.CountDualLanguageRepos(context.Background(), "C", "Java", 3)
			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, count)
			}
		})
	}
}
