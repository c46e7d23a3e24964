// Package aggregate holds the pure transforms over repository and commit
// snapshots. No function in this package performs I/O or mutates its input,
// every transform returns newly derived values.
package aggregate

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/AintJierie/GitVista/model"
)

// Sort modes accepted by SortRepositories
const (
	SortByStars   = "stars"
	SortByForks   = "forks"
	SortByUpdated = "updated"
)

// Trending thresholds: a repository is trending when it has more than
// trendingMinStars stars and was updated within trendingMaxAge.
const (
	trendingMinStars = 50
	trendingMaxAge   = 30 * 24 * time.Hour
)

// Totals sums stars, forks and size over the collection. The average size is
// rounded to the nearest KB and 0 for an empty collection.
func Totals(repos []model.Repository) model.RepositoryStats {
	stats := model.RepositoryStats{}

	for _, r := range repos {
		stats.TotalStars += r.StargazersCount
		stats.TotalForks += r.ForksCount
		stats.TotalSize += r.Size
	}

	if len(repos) > 0 {
		stats.AverageSize = int(math.Round(float64(stats.TotalSize) / float64(len(repos))))
	}

	return stats
}

// SortRepositories returns a copy of the collection sorted descending by the
// given mode. The sort is stable: repositories with an equal key keep their
// relative order from the input, which matches the insertion-meaningful
// ordering of the GitHub API. An unknown mode returns an unsorted copy.
func SortRepositories(repos []model.Repository, sortBy string) []model.Repository {
	sorted := make([]model.Repository, len(repos))
	copy(sorted, repos)

	switch sortBy {
	case SortByStars:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].StargazersCount > sorted[j].StargazersCount
		})
	case SortByForks:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ForksCount > sorted[j].ForksCount
		})
	case SortByUpdated:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
		})
	}

	return sorted
}

// LanguageBreakdown counts repositories per non-empty language and returns
// the topN most used ones, sorted descending by count. Ties keep the order
// in which the language was first encountered in the input.
func LanguageBreakdown(repos []model.Repository, topN int) []model.LanguageCount {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, r := range repos {
		if r.Language == "" {
			continue
		}

		if _, seen := counts[r.Language]; !seen {
			order = append(order, r.Language)
		}

		counts[r.Language]++
	}

	breakdown := make([]model.LanguageCount, 0, len(order))
	for _, lang := range order {
		breakdown = append(breakdown, model.LanguageCount{Language: lang, Count: counts[lang]})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Count > breakdown[j].Count
	})

	if topN > 0 && len(breakdown) > topN {
		breakdown = breakdown[:topN]
	}

	return breakdown
}

// TopLanguageNames returns the names of the topN most used languages
func TopLanguageNames(repos []model.Repository, topN int) []string {
	breakdown := LanguageBreakdown(repos, topN)

	names := make([]string, 0, len(breakdown))
	for _, entry := range breakdown {
		names = append(names, entry.Language)
	}

	return names
}

// FilterRepositories narrows the collection to repositories matching the
// query with a case-insensitive substring test against the name, description,
// language or any topic. An empty query returns the input unchanged.
func FilterRepositories(repos []model.Repository, query string) []model.Repository {
	query = strings.ToLower(strings.TrimSpace(query))

	if query == "" {
		return repos
	}

	filtered := make([]model.Repository, 0)
	for _, r := range repos {
		if matchesQuery(r, query) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

func matchesQuery(r model.Repository, query string) bool {
	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}

	if r.Description != "" && strings.Contains(strings.ToLower(r.Description), query) {
		return true
	}

	if r.Language != "" && strings.Contains(strings.ToLower(r.Language), query) {
		return true
	}

	for _, topic := range r.Topics {
		if strings.Contains(strings.ToLower(topic), query) {
			return true
		}
	}

	return false
}

// SizeDistribution buckets every repository by its size in MB. Bucket bounds
// are inclusive-low/exclusive-high, the last bucket is open ended, so the
// bucket counts always sum to the number of repositories.
func SizeDistribution(repos []model.Repository) []model.SizeBucket {
	buckets := []model.SizeBucket{
		{Label: "Small (< 1MB)"},
		{Label: "Medium (1-10MB)"},
		{Label: "Large (10-100MB)"},
		{Label: "Very Large (> 100MB)"},
	}

	for _, r := range repos {
		sizeMB := float64(r.Size) / 1024

		switch {
		case sizeMB < 1:
			buckets[0].Count++
		case sizeMB < 10:
			buckets[1].Count++
		case sizeMB < 100:
			buckets[2].Count++
		default:
			buckets[3].Count++
		}
	}

	return buckets
}

// IsTrending reports whether the repository passes the fixed stars and
// recency thresholds at the given reference time.
func IsTrending(r model.Repository, now time.Time) bool {
	return r.StargazersCount > trendingMinStars && now.Sub(r.UpdatedAt) < trendingMaxAge
}

// TrendingNames returns the names of all trending repositories, keeping the
// input order.
func TrendingNames(repos []model.Repository, now time.Time) []string {
	var names []string
	for _, r := range repos {
		if IsTrending(r, now) {
			names = append(names, r.Name)
		}
	}

	return names
}

// ComputeInsights derives the activity indicators of a repository collection.
// The commit count uses floor(size/10) per repository as a proxy for
// activity, it is a heuristic and not a real commit count.
func ComputeInsights(repos []model.Repository, now time.Time) model.Insights {
	insights := model.Insights{}

	totalStars := 0
	for _, r := range repos {
		insights.EstimatedCommits += r.Size / 10
		totalStars += r.StargazersCount

		if r.CreatedAt.Year() == now.Year() {
			insights.ReposCreatedThisYear++
		}
	}

	if len(repos) > 0 {
		insights.AverageStarsPerRepo = int(math.Round(float64(totalStars) / float64(len(repos))))
	}

	if breakdown := LanguageBreakdown(repos, 1); len(breakdown) > 0 {
		insights.MostProductiveLanguage = breakdown[0].Language
	}

	return insights
}

// RecentActivity returns the topN most recently updated repositories
func RecentActivity(repos []model.Repository, topN int) []model.Repository {
	recent := SortRepositories(repos, SortByUpdated)

	if topN > 0 && len(recent) > topN {
		recent = recent[:topN]
	}

	return recent
}

// Compare builds both sides of a developer comparison. A metric is only
// marked as won when it is strictly greater than the other side, ties leave
// both sides unmarked.
func Compare(profile1 model.UserProfile, repos1 []model.Repository, profile2 model.UserProfile, repos2 []model.Repository) model.ComparisonResult {
	stats1 := Totals(repos1)
	stats2 := Totals(repos2)

	return model.ComparisonResult{
		First: model.ComparisonSide{
			Profile:      profile1,
			Stats:        stats1,
			TopLanguages: TopLanguageNames(repos1, 5),
			Wins: model.ComparisonWins{
				Repositories: profile1.PublicRepos > profile2.PublicRepos,
				Stars:        stats1.TotalStars > stats2.TotalStars,
				Forks:        stats1.TotalForks > stats2.TotalForks,
				Followers:    profile1.Followers > profile2.Followers,
			},
		},
		Second: model.ComparisonSide{
			Profile:      profile2,
			Stats:        stats2,
			TopLanguages: TopLanguageNames(repos2, 5),
			Wins: model.ComparisonWins{
				Repositories: profile2.PublicRepos > profile1.PublicRepos,
				Stars:        stats2.TotalStars > stats1.TotalStars,
				Forks:        stats2.TotalForks > stats1.TotalForks,
				Followers:    profile2.Followers > profile1.Followers,
			},
		},
	}
}

// Team aggregates the metrics of all members. The caller guarantees at least
// one member. The leaderboard is sorted descending by each member's total
// stars, ties keep the input order.
func Team(members []model.TeamMember, repos [][]model.Repository) model.TeamResult {
	result := model.TeamResult{MemberCount: len(members)}

	pooled := make([]model.Repository, 0)
	for i, member := range members {
		result.TotalRepositories += member.Profile.PublicRepos
		result.TotalStars += member.Stats.TotalStars
		result.TotalForks += member.Stats.TotalForks
		pooled = append(pooled, repos[i]...)
	}

	if len(members) > 0 {
		result.AverageStarsPerMember = int(math.Round(float64(result.TotalStars) / float64(len(members))))
	}

	result.TopLanguages = LanguageBreakdown(pooled, 5)

	leaderboard := make([]model.TeamMember, len(members))
	copy(leaderboard, members)
	sort.SliceStable(leaderboard, func(i, j int) bool {
		return leaderboard[i].Stats.TotalStars > leaderboard[j].Stats.TotalStars
	})
	result.Leaderboard = leaderboard

	return result
}
