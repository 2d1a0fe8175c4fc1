package usecase

import (
	"log"

	"github.com/polyglot-study/frictionscan/internal/domain"
)

// githubLanguages maps the study's language names onto the identifiers the
// GitHub search API understands. Pairs with an unmapped side are dropped.
var githubLanguages = map[string]string{
	"Scheme":  "Scheme",
	"ML":      "ML",
	"Prolog":  "Prolog",
	"Curry":   "Curry",
	"Haskell": "Haskell",
	"OCaml":   "OCaml",
	"Erlang":  "Erlang",
	"C":       "C",
	"Occam":   "Occam",
	"Java":    "Java",
	"CLU":     "CLU",
	"E":       "E",
}

// RawPair is one row of the input table: two free-form language names and
// their externally computed collaboration score.
type RawPair struct {
	Lang1              string
	Lang2              string
	CollaborationScore float64
}

// NormalizePairs maps both sides of every raw pair through the canonical
// language table and keeps only pairs at or below the collaboration-score
// threshold. Surviving pairs keep their input order.
func NormalizePairs(raw []RawPair, thresholdMax float64, logger *log.Logger) []domain.LanguagePair {
	pairs := make([]domain.LanguagePair, 0, len(raw))
	for _, r := range raw {
		l1, ok1 := githubLanguages[r.Lang1]
		l2, ok2 := githubLanguages[r.Lang2]
		if !ok1 || !ok2 {
			continue
		}
		if r.CollaborationScore > thresholdMax {
			continue
		}
		pairs = append(pairs, domain.LanguagePair{Lang1: l1, Lang2: l2})
	}
	logger.Printf("%d pairs retained with a score <= %g", len(pairs), thresholdMax)
	return pairs
}
