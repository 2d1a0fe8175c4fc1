// Package usecase contains the business logic of the application.
package usecase

import "github.com/polyglot-study/frictionscan/internal/domain"

// maxPageSize is the largest page the GitHub list endpoints accept.
const maxPageSize = 100

// Config carries the policy knobs of the pipeline. It replaces the
// module-level constants of earlier iterations; every component receives it
// at construction.
type Config struct {
	MaxPullRequestPages  int
	MaxIssuePages        int
	PageSize             int
	MinStars             int
	CollabScoreThreshold float64
	MinArtifactsPerKind  int
	MaxReposPerLanguage  int
	Policy               domain.MatchPolicy
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		MaxPullRequestPages:  50,
		MaxIssuePages:        10,
		PageSize:             100,
		MinStars:             3,
		CollabScoreThreshold: 0.4,
		MinArtifactsPerKind:  5,
		MaxReposPerLanguage:  150,
		Policy:               domain.CountPerArtifact,
	}
}
