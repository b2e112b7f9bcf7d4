package core

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// LanguageDistribution counts language usage across the repository set: the
// primary language (when present) plus every entry of the languages list.
// Entries are ordered by count descending, ties broken lexicographically by
// name; percentages are over the set size.
func LanguageDistribution(repos []schema.Repository) []schema.LanguageStat {
	counts := make(map[string]int)
	for _, repo := range repos {
		if repo.PrimaryLanguage != "" {
			counts[repo.PrimaryLanguage]++
		}
		for _, lang := range repo.Languages {
			counts[lang]++
		}
	}

	stats := make([]schema.LanguageStat, 0, len(counts))
	for name, count := range counts {
		stats = append(stats, schema.LanguageStat{
			Name:       name,
			Count:      count,
			Percentage: percentOf(count, len(repos)),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Name < stats[j].Name
	})

	if len(stats) > schema.TopLanguages {
		stats = stats[:schema.TopLanguages]
	}
	return stats
}

// TopicDistribution counts repository topics across the set and returns the
// top entries, ordered like LanguageDistribution.
func TopicDistribution(repos []schema.Repository) []schema.TopicStat {
	counts := make(map[string]int)
	for _, repo := range repos {
		for _, topic := range repo.RepositoryTopics {
			counts[topic]++
		}
	}

	stats := make([]schema.TopicStat, 0, len(counts))
	for name, count := range counts {
		stats = append(stats, schema.TopicStat{
			Name:       name,
			Count:      count,
			Percentage: percentOf(count, len(repos)),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Name < stats[j].Name
	})

	if len(stats) > schema.TopTopics {
		stats = stats[:schema.TopTopics]
	}
	return stats
}

// StarStatistics summarizes stargazer counts. An empty set yields all zeros.
func StarStatistics(repos []schema.Repository) schema.StarStats {
	if len(repos) == 0 {
		return schema.StarStats{}
	}

	counts := make([]int, 0, len(repos))
	stats := schema.StarStats{
		MinStars: repos[0].StargazerCount,
	}
	for _, repo := range repos {
		n := repo.StargazerCount
		counts = append(counts, n)
		stats.TotalStars += n
		if n > stats.MaxStars {
			stats.MaxStars = n
		}
		if n < stats.MinStars {
			stats.MinStars = n
		}
	}
	stats.AverageStars = round2(float64(stats.TotalStars) / float64(len(counts)))

	sort.Ints(counts)
	mid := len(counts) / 2
	if len(counts)%2 == 0 {
		stats.MedianStars = round2(float64(counts[mid-1]+counts[mid]) / 2)
	} else {
		stats.MedianStars = float64(counts[mid])
	}
	return stats
}

func percentOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// enrichWithReadmes joins the repository set with README content fetched
// under the concurrency bound. Fetch failures leave the repository in the
// result without README content.
func (s *Service) enrichWithReadmes(ctx context.Context, repos []schema.Repository, concurrency int) ([]schema.RepositoryWithReadme, schema.ProcessingSummary, error) {
	ids := make([]string, 0, len(repos))
	for _, repo := range repos {
		ids = append(ids, repo.RepoID)
	}

	var details map[string]schema.RepositoryDetails
	if len(ids) > 0 {
		var err error
		details, err = s.fetchDetails(ctx, ids, concurrency)
		if err != nil {
			return nil, schema.ProcessingSummary{}, err
		}
	}

	summary := schema.ProcessingSummary{TotalRequested: len(repos)}
	enriched := make([]schema.RepositoryWithReadme, 0, len(repos))
	for _, repo := range repos {
		entry := schema.RepositoryWithReadme{Repository: repo}
		if detail, ok := details[repo.RepoID]; ok {
			summary.SucceededDetails++
			entry.ReadmeContent = detail.ReadmeContent
			entry.HasReadme = detail.HasReadme
			if detail.HasReadme {
				summary.WithReadme++
			} else {
				summary.WithoutReadme++
			}
		} else {
			summary.FailedDetails++
			summary.WithoutReadme++
		}
		enriched = append(enriched, entry)
	}
	return enriched, summary, nil
}

// BuildFullAnalysisBundle collects the user's starred repositories and joins
// each one with its README content.
func (s *Service) BuildFullAnalysisBundle(ctx context.Context, username string, maxRepos, concurrency int) (*schema.FullBundleResponse, error) {
	validated, err := contract.ValidateUsername(username)
	if err != nil {
		return nil, err
	}
	maxRepos, err = contract.NormalizeMaxRepositories(maxRepos)
	if err != nil {
		return nil, err
	}
	concurrency, err = contract.NormalizeConcurrency(concurrency)
	if err != nil {
		return nil, err
	}

	compute := func() (*schema.FullBundleResponse, error) {
		repos, totalCount, err := s.collectStarred(ctx, validated, maxRepos)
		if err != nil {
			return nil, err
		}
		enriched, _, err := s.enrichWithReadmes(ctx, repos, concurrency)
		if err != nil {
			return nil, err
		}
		return &schema.FullBundleResponse{
			TotalCount:   totalCount,
			Repositories: enriched,
		}, nil
	}

	return cachedCall(s, "full_analysis_bundle", map[string]any{
		"username":         validated,
		"max_repositories": maxRepos,
	}, compute)
}

// BuildAnalysisBundle collects, enriches and aggregates the user's starred
// repositories into a single analysis payload.
func (s *Service) BuildAnalysisBundle(ctx context.Context, username string, maxRepos, concurrency int) (*schema.AnalysisBundle, error) {
	validated, err := contract.ValidateUsername(username)
	if err != nil {
		return nil, err
	}
	maxRepos, err = contract.NormalizeMaxRepositories(maxRepos)
	if err != nil {
		return nil, err
	}
	concurrency, err = contract.NormalizeConcurrency(concurrency)
	if err != nil {
		return nil, err
	}

	compute := func() (*schema.AnalysisBundle, error) {
		repos, _, err := s.collectStarred(ctx, validated, maxRepos)
		if err != nil {
			return nil, err
		}
		enriched, summary, err := s.enrichWithReadmes(ctx, repos, concurrency)
		if err != nil {
			return nil, err
		}

		// An empty username means the authenticated user; resolve the login
		// so the bundle names its subject.
		subject := validated
		if subject == "" {
			user, err := s.ds.GetCurrentUser(ctx)
			if err != nil {
				return nil, schema.WrapAPIError("failed to resolve authenticated user", err)
			}
			subject = user.Login
		}

		bundle := &schema.AnalysisBundle{
			Username:             subject,
			TotalRepositories:    len(repos),
			Repositories:         enriched,
			LanguageDistribution: LanguageDistribution(repos),
			TopicDistribution:    TopicDistribution(repos),
			StarStatistics:       StarStatistics(repos),
			AnalysisTimestamp:    time.Now().UTC(),
			ProcessingSummary:    summary,
		}
		s.log.Info().
			Str("username", subject).
			Int("repositories", bundle.TotalRepositories).
			Int("with_readme", summary.WithReadme).
			Msg("built analysis bundle")
		return bundle, nil
	}

	return cachedCall(s, "analysis_bundle", map[string]any{
		"username":         validated,
		"max_repositories": maxRepos,
	}, compute)
}
