package usecase

import (
	"context"
	"log"

	"github.com/polyglot-study/frictionscan/internal/domain"
	"github.com/polyglot-study/frictionscan/internal/gateway"
)

// RepoDiscovery finds repositories confirmed to use both languages of a
// pair. The search API cannot reliably filter on two languages at once, so
// discovery is two-phase: a broad candidate search per language, then a
// per-candidate check of the declared language set.
type RepoDiscovery struct {
	search gateway.SearchSource
	cfg    Config
	logger *log.Logger
}

// NewRepoDiscovery creates a new RepoDiscovery instance.
func NewRepoDiscovery(search gateway.SearchSource, cfg Config, logger *log.Logger) *RepoDiscovery {
	return &RepoDiscovery{search: search, cfg: cfg, logger: logger}
}

// FindCandidates searches each language independently, unions the two
// candidate sets, and keeps only repositories whose declared language set
// contains both sides of the pair. Candidate order is deterministic:
// first-language results, then unseen second-language results.
func (d *RepoDiscovery) FindCandidates(ctx context.Context, pair domain.LanguagePair) []string {
	first := d.searchLanguage(ctx, pair.Lang1)
	second := d.searchLanguage(ctx, pair.Lang2)

	seen := make(map[string]struct{}, len(first)+len(second))
	candidates := make([]string, 0, len(first)+len(second))
	for _, name := range append(first, second...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		candidates = append(candidates, name)
	}

	var confirmed []string
	for _, name := range candidates {
		if d.usesBothLanguages(ctx, name, pair) {
			d.logger.Printf("%s uses both %s and %s", name, pair.Lang1, pair.Lang2)
			confirmed = append(confirmed, name)
		}
	}
	return confirmed
}

// DiscoverAll collects the confirmed repositories for every pair, in pair order.
func (d *RepoDiscovery) DiscoverAll(ctx context.Context, pairs []domain.LanguagePair) []domain.RepoEntry {
	var entries []domain.RepoEntry
	for _, pair := range pairs {
		if ctx.Err() != nil {
			d.logger.Printf("Discovery cancelled after %d repositories: %v", len(entries), ctx.Err())
			break
		}
		d.logger.Printf("|-> Searching repositories for language pair: %s - %s", pair.Lang1, pair.Lang2)
		for _, name := range d.FindCandidates(ctx, pair) {
			entries = append(entries, domain.RepoEntry{FullName: name, Pair: pair})
		}
	}
	return entries
}

func (d *RepoDiscovery) searchLanguage(ctx context.Context, lang string) []string {
	repos, err := d.search.SearchReposByLanguage(ctx, lang, d.cfg.MinStars, d.cfg.MaxReposPerLanguage)
	if err != nil {
		d.logger.Printf("Error fetching repositories for %s: %v", lang, err)
		return nil
	}
	return repos
}

// usesBothLanguages treats a failing language lookup as "does not qualify"
// so one bad candidate never aborts the batch.
func (d *RepoDiscovery) usesBothLanguages(ctx context.Context, fullName string, pair domain.LanguagePair) bool {
	languages, err := d.search.RepoLanguages(ctx, fullName)
	if err != nil {
		d.logger.Printf("Error fetching languages for %s: %v", fullName, err)
		return false
	}
	_, ok1 := languages[pair.Lang1]
	_, ok2 := languages[pair.Lang2]
	return ok1 && ok2
}
