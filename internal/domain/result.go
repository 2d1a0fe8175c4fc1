package domain

// RepoResult is one row of the detailed report: the outcome of scoring a
// single repository. Created once after scoring and never mutated.
type RepoResult struct {
	Pair              LanguagePair
	FullName          string
	ArtifactsAnalyzed int
	Score             int
	Density           float64
	HasDifficulty     bool
	MatchedKeywords   []string // distinct, sorted
}

// PairSummary is one row of the summary report for one language pair.
type PairSummary struct {
	Pair                LanguagePair
	TotalRepos          int
	ReposWithDifficulty int
	AvgDensity          float64
	AvgArtifacts        float64
	DifficultyRate      float64
	TruePopulation      *int     // nil when the population lookup failed
	RarityScore         *float64 // nil when TruePopulation is missing or non-positive
}
