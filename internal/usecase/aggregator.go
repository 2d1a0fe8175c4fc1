package usecase

import (
	"context"
	"log"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/polyglot-study/frictionscan/internal/domain"
	"github.com/polyglot-study/frictionscan/internal/gateway"
)

// Aggregator folds per-repository results into per-language-pair summaries.
// It is the only stage that merges anything; everything upstream is
// independent per repository.
type Aggregator struct {
	population gateway.PopulationSource
	cfg        Config
	logger     *log.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(population gateway.PopulationSource, cfg Config, logger *log.Logger) *Aggregator {
	return &Aggregator{population: population, cfg: cfg, logger: logger}
}

// Aggregate groups results by language pair and computes the per-pair
// statistics, including one population lookup per group for the rarity
// score. Summary rows are sorted by pair for reproducible output.
func (a *Aggregator) Aggregate(ctx context.Context, results []domain.RepoResult) []domain.PairSummary {
	groups := make(map[domain.LanguagePair][]domain.RepoResult)
	var order []domain.LanguagePair
	for _, r := range results {
		if _, ok := groups[r.Pair]; !ok {
			order = append(order, r.Pair)
		}
		groups[r.Pair] = append(groups[r.Pair], r)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].Lang1 != order[j].Lang1 {
			return order[i].Lang1 < order[j].Lang1
		}
		return order[i].Lang2 < order[j].Lang2
	})

	summaries := make([]domain.PairSummary, 0, len(order))
	for _, pair := range order {
		group := groups[pair]
		densities := make([]float64, len(group))
		artifacts := make([]float64, len(group))
		withDifficulty := 0
		for i, r := range group {
			densities[i] = r.Density
			artifacts[i] = float64(r.ArtifactsAnalyzed)
			if r.HasDifficulty {
				withDifficulty++
			}
		}
		avgDensity, _ := stats.Mean(densities)
		avgArtifacts, _ := stats.Mean(artifacts)

		summary := domain.PairSummary{
			Pair:                pair,
			TotalRepos:          len(group),
			ReposWithDifficulty: withDifficulty,
			AvgDensity:          round4(avgDensity),
			AvgArtifacts:        round4(avgArtifacts),
			DifficultyRate:      round4(float64(withDifficulty) / float64(len(group))),
		}

		population, err := a.population.CountDualLanguageRepos(ctx, pair.Lang1, pair.Lang2, a.cfg.MinStars)
		if err != nil {
			a.logger.Printf("Error while counting repos for %s-%s: %v", pair.Lang1, pair.Lang2, err)
		} else {
			summary.TruePopulation = &population
			if population > 0 {
				denominator := math.Min(float64(population), float64(a.cfg.MaxReposPerLanguage*2))
				rarity := round4(1 - float64(len(group))/denominator)
				summary.RarityScore = &rarity
			}
		}
		summaries = append(summaries, summary)
	}
	a.logger.Printf("Aggregated %d repositories into %d language pairs.", len(results), len(summaries))
	return summaries
}

// round4 keeps report numbers at 4 decimal places.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
