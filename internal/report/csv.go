// Package report reads and writes the pipeline's CSV tables.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/polyglot-study/frictionscan/internal/domain"
	"github.com/polyglot-study/frictionscan/internal/usecase"
)

// ReadPairs loads the language-pair input table. Semicolon-delimited with a
// header row: Language1;Language2;CollaborationScore.
func ReadPairs(path string) ([]usecase.RawPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pairs table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read pairs table: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	pairs := make([]usecase.RawPair, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 3 {
			return nil, fmt.Errorf("pairs table row %d has %d columns, want 3", i+2, len(rec))
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("pairs table row %d: parse collaboration score %q: %w", i+2, rec[2], err)
		}
		pairs = append(pairs, usecase.RawPair{
			Lang1:              strings.TrimSpace(rec[0]),
			Lang2:              strings.TrimSpace(rec[1]),
			CollaborationScore: score,
		})
	}
	return pairs, nil
}

// WriteRepoList writes the intermediate table of confirmed dual-language
// repositories, comma-delimited: FullName,Lang1,Lang2.
func WriteRepoList(path string, entries []domain.RepoEntry) error {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, []string{"FullName", "Lang1", "Lang2"})
	for _, e := range entries {
		rows = append(rows, []string{e.FullName, e.Pair.Lang1, e.Pair.Lang2})
	}
	return writeAll(path, ',', rows)
}

// ReadRepoList loads the intermediate table written by WriteRepoList.
// The round trip is exact: no repository identifier is lost or reordered.
func ReadRepoList(path string) ([]domain.RepoEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open repo list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read repo list: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	entries := make([]domain.RepoEntry, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 3 {
			return nil, fmt.Errorf("repo list row %d has %d columns, want 3", i+2, len(rec))
		}
		entries = append(entries, domain.RepoEntry{
			FullName: rec[0],
			Pair:     domain.LanguagePair{Lang1: rec[1], Lang2: rec[2]},
		})
	}
	return entries, nil
}

// WriteDetail writes the per-repository report, semicolon-delimited.
func WriteDetail(path string, results []domain.RepoResult) error {
	rows := make([][]string, 0, len(results)+1)
	rows = append(rows, []string{
		"Lang1", "Lang2", "FullName", "artifacts_analyzed", "difficulty_keywords_found",
		"difficulty_density", "repo_has_difficulty", "keywords_detected",
	})
	for _, r := range results {
		rows = append(rows, []string{
			r.Pair.Lang1,
			r.Pair.Lang2,
			r.FullName,
			strconv.Itoa(r.ArtifactsAnalyzed),
			strconv.Itoa(r.Score),
			format4(r.Density),
			strconv.FormatBool(r.HasDifficulty),
			strings.Join(r.MatchedKeywords, "; "),
		})
	}
	return writeAll(path, ';', rows)
}

// WriteSummary writes the per-language-pair report, semicolon-delimited.
// A missing population or rarity score becomes an empty field.
func WriteSummary(path string, summaries []domain.PairSummary) error {
	rows := make([][]string, 0, len(summaries)+1)
	rows = append(rows, []string{
		"Lang1", "Lang2", "total_repos", "repos_with_difficulty", "avg_difficulty_density",
		"avg_artifacts_analyzed", "difficulty_rate", "true_total_available", "rarity_score",
	})
	for _, s := range summaries {
		population := ""
		if s.TruePopulation != nil {
			population = strconv.Itoa(*s.TruePopulation)
		}
		rarity := ""
		if s.RarityScore != nil {
			rarity = format4(*s.RarityScore)
		}
		rows = append(rows, []string{
			s.Pair.Lang1,
			s.Pair.Lang2,
			strconv.Itoa(s.TotalRepos),
			strconv.Itoa(s.ReposWithDifficulty),
			format4(s.AvgDensity),
			format4(s.AvgArtifacts),
			format4(s.DifficultyRate),
			population,
			rarity,
		})
	}
	return writeAll(path, ';', rows)
}

func writeAll(path string, comma rune, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	w.Comma = comma
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func format4(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
