// Package domain contains the core data structures and domain logic for the application.
package domain

// ArtifactKind identifies which collection an artifact was fetched from.
type ArtifactKind string

const (
	KindPullRequest ArtifactKind = "pulls"
	KindIssue       ArtifactKind = "issues"
)

// Label returns the singular human-readable name of the kind, for log messages.
func (k ArtifactKind) Label() string {
	if k == KindPullRequest {
		return "pull request"
	}
	return "issue"
}

// Artifact is one pull request or issue, reduced to the fields scoring needs.
// GitHub's issues endpoint also returns pull requests as issue-shaped
// records; IsPullRequest carries that marker so they can be filtered out.
type Artifact struct {
	Title         string
	Body          string
	IsPullRequest bool
}

// Text returns the searchable text of the artifact: title and body joined
// with a single space. Missing fields are empty strings.
func (a Artifact) Text() string {
	return a.Title + " " + a.Body
}

// LanguagePair is a pair of canonical GitHub language identifiers.
type LanguagePair struct {
	Lang1 string
	Lang2 string
}

// RepoEntry is one confirmed dual-language repository, the hand-off record
// between the discovery and scanning halves of the pipeline.
type RepoEntry struct {
	FullName string
	Pair     LanguagePair
}
