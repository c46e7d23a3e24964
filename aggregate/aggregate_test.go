package aggregate

import (
	"testing"
	"time"

	"github.com/AintJierie/GitVista/model"
	"github.com/stretchr/testify/assert"
)

// TestTotals will test function Totals
func TestTotals(t *testing.T) {
	tests := []struct {
		name     string
		repos    []model.Repository
		expected model.RepositoryStats
	}{
		{
			name:     "Empty collection",
			repos:    []model.Repository{},
			expected: model.RepositoryStats{},
		},
		{
			name: "Sums and rounded average",
			repos: []model.Repository{
				{StargazersCount: 10, ForksCount: 2, Size: 100},
				{StargazersCount: 5, ForksCount: 1, Size: 101},
			},
			expected: model.RepositoryStats{
				TotalStars:  15,
				TotalForks:  3,
				TotalSize:   201,
				AverageSize: 101, // 100.5 rounds up
			},
		},
		{
			name: "Single repository",
			repos: []model.Repository{
				{StargazersCount: 7, ForksCount: 3, Size: 42},
			},
			expected: model.RepositoryStats{
				TotalStars:  7,
				TotalForks:  3,
				TotalSize:   42,
				AverageSize: 42,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Totals(tt.repos))
		})
	}
}

// TestSortRepositories will test function SortRepositories
func TestSortRepositories(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		repos         []model.Repository
		sortBy        string
		expectedNames []string
	}{
		{
			name: "Sort by stars descending",
			repos: []model.Repository{
				{Name: "low", StargazersCount: 1},
				{Name: "high", StargazersCount: 100},
				{Name: "mid", StargazersCount: 50},
			},
			sortBy:        SortByStars,
			expectedNames: []string{"high", "mid", "low"},
		},
		{
			name: "Equal stars keep input order",
			repos: []model.Repository{
				{Name: "first", StargazersCount: 100},
				{Name: "second", StargazersCount: 100},
			},
			sortBy:        SortByStars,
			expectedNames: []string{"first", "second"},
		},
		{
			name: "Sort by forks descending",
			repos: []model.Repository{
				{Name: "a", ForksCount: 2},
				{Name: "b", ForksCount: 9},
			},
			sortBy:        SortByForks,
			expectedNames: []string{"b", "a"},
		},
		{
			name: "Sort by updated descending",
			repos: []model.Repository{
				{Name: "old", UpdatedAt: now.Add(-48 * time.Hour)},
				{Name: "fresh", UpdatedAt: now},
			},
			sortBy:        SortByUpdated,
			expectedNames: []string{"fresh", "old"},
		},
		{
			name: "Unknown mode keeps input order",
			repos: []model.Repository{
				{Name: "a", StargazersCount: 1},
				{Name: "b", StargazersCount: 2},
			},
			sortBy:        "unknown",
			expectedNames: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := SortRepositories(tt.repos, tt.sortBy)

			names := make([]string, 0, len(sorted))
			for _, r := range sorted {
				names = append(names, r.Name)
			}

			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

// TestSortRepositoriesDoesNotMutateInput checks the input slice stays untouched
func TestSortRepositoriesDoesNotMutateInput(t *testing.T) {
	repos := []model.Repository{
		{Name: "a", StargazersCount: 1},
		{Name: "b", StargazersCount: 2},
	}

	SortRepositories(repos, SortByStars)

	assert.Equal(t, "a", repos[0].Name)
	assert.Equal(t, "b", repos[1].Name)
}

// TestLanguageBreakdown will test function LanguageBreakdown
func TestLanguageBreakdown(t *testing.T) {
	tests := []struct {
		name     string
		repos    []model.Repository
		topN     int
		expected []model.LanguageCount
	}{
		{
			name: "Counts per language sorted descending",
			repos: []model.Repository{
				{Language: "Go"},
				{Language: "Python"},
				{Language: "Go"},
				{Language: ""},
			},
			topN: 8,
			expected: []model.LanguageCount{
				{Language: "Go", Count: 2},
				{Language: "Python", Count: 1},
			},
		},
		{
			name: "Ties keep first encountered order",
			repos: []model.Repository{
				{Language: "Rust"},
				{Language: "Go"},
				{Language: "Go"},
				{Language: "Rust"},
			},
			topN: 8,
			expected: []model.LanguageCount{
				{Language: "Rust", Count: 2},
				{Language: "Go", Count: 2},
			},
		},
		{
			name: "Truncated to topN",
			repos: []model.Repository{
				{Language: "A"}, {Language: "A"}, {Language: "A"},
				{Language: "B"}, {Language: "B"},
				{Language: "C"},
			},
			topN: 2,
			expected: []model.LanguageCount{
				{Language: "A", Count: 3},
				{Language: "B", Count: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LanguageBreakdown(tt.repos, tt.topN))
		})
	}
}

// TestFilterRepositories will test function FilterRepositories
func TestFilterRepositories(t *testing.T) {
	repos := []model.Repository{
		{Name: "gitvista", Description: "GitHub analytics", Language: "JavaScript"},
		{Name: "backend", Description: "API server", Language: "Go", Topics: []string{"http", "rest"}},
		{Name: "scripts", Description: "", Language: "Shell"},
	}

	tests := []struct {
		name          string
		query         string
		expectedNames []string
	}{
		{
			name:          "Empty query returns everything",
			query:         "",
			expectedNames: []string{"gitvista", "backend", "scripts"},
		},
		{
			name:          "Match on name case insensitive",
			query:         "GITVISTA",
			expectedNames: []string{"gitvista"},
		},
		{
			name:          "Match on description",
			query:         "analytics",
			expectedNames: []string{"gitvista"},
		},
		{
			name:          "Match on language",
			query:         "go",
			expectedNames: []string{"backend"},
		},
		{
			name:          "Match on topic",
			query:         "rest",
			expectedNames: []string{"backend"},
		},
		{
			name:          "No match",
			query:         "nothing-here",
			expectedNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterRepositories(repos, tt.query)

			names := make([]string, 0, len(filtered))
			for _, r := range filtered {
				names = append(names, r.Name)
			}

			assert.ElementsMatch(t, tt.expectedNames, names)
			assert.LessOrEqual(t, len(filtered), len(repos))
		})
	}
}

// TestSizeDistribution checks the buckets exhaust and partition the input
func TestSizeDistribution(t *testing.T) {
	repos := []model.Repository{
		{Size: 0},               // < 1MB
		{Size: 1023},            // < 1MB
		{Size: 1024},            // 1-10MB, low bound inclusive
		{Size: 5 * 1024},        // 1-10MB
		{Size: 10 * 1024},       // 10-100MB, low bound inclusive
		{Size: 100 * 1024},      // > 100MB, low bound inclusive
		{Size: 5 * 1024 * 1024}, // > 100MB
	}

	buckets := SizeDistribution(repos)

	assert.Len(t, buckets, 4)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, 2, buckets[1].Count)
	assert.Equal(t, 1, buckets[2].Count)
	assert.Equal(t, 2, buckets[3].Count)

	total := 0
	for _, bucket := range buckets {
		total += bucket.Count
	}
	assert.Equal(t, len(repos), total)
}

// TestIsTrending will test function IsTrending
func TestIsTrending(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		repo     model.Repository
		expected bool
	}{
		{
			name:     "High stars and recently updated",
			repo:     model.Repository{StargazersCount: 100, UpdatedAt: now.Add(-10 * 24 * time.Hour)},
			expected: true,
		},
		{
			name:     "High stars but stale",
			repo:     model.Repository{StargazersCount: 100, UpdatedAt: now.Add(-40 * 24 * time.Hour)},
			expected: false,
		},
		{
			name:     "Recently updated but not enough stars",
			repo:     model.Repository{StargazersCount: 50, UpdatedAt: now},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTrending(tt.repo, now))
		})
	}
}

// TestStableSortWithTrending covers equal stars keeping input order while
// only the recently updated repository is flagged as trending
func TestStableSortWithTrending(t *testing.T) {
	now := time.Now()

	repos := []model.Repository{
		{Name: "recent", StargazersCount: 100, UpdatedAt: now.Add(-10 * 24 * time.Hour)},
		{Name: "stale", StargazersCount: 100, UpdatedAt: now.Add(-40 * 24 * time.Hour)},
	}

	sorted := SortRepositories(repos, SortByStars)
	assert.Equal(t, "recent", sorted[0].Name)
	assert.Equal(t, "stale", sorted[1].Name)

	assert.Equal(t, []string{"recent"}, TrendingNames(repos, now))
}

// TestComputeInsights will test function ComputeInsights
func TestComputeInsights(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	repos := []model.Repository{
		{Size: 105, StargazersCount: 10, Language: "Go", CreatedAt: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)},
		{Size: 9, StargazersCount: 5, Language: "Go", CreatedAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{Size: 20, StargazersCount: 0, Language: "Python", CreatedAt: time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)},
	}

	insights := ComputeInsights(repos, now)

	assert.Equal(t, 12, insights.EstimatedCommits) // floor(105/10) + floor(9/10) + floor(20/10)
	assert.Equal(t, 5, insights.AverageStarsPerRepo)
	assert.Equal(t, "Go", insights.MostProductiveLanguage)
	assert.Equal(t, 2, insights.ReposCreatedThisYear)
}

// TestComputeInsightsEmpty checks the zero values of an empty collection
func TestComputeInsightsEmpty(t *testing.T) {
	insights := ComputeInsights(nil, time.Now())

	assert.Equal(t, 0, insights.EstimatedCommits)
	assert.Equal(t, 0, insights.AverageStarsPerRepo)
	assert.Equal(t, "", insights.MostProductiveLanguage)
	assert.Equal(t, 0, insights.ReposCreatedThisYear)
}

// TestCompare will test function Compare
func TestCompare(t *testing.T) {
	profile1 := model.UserProfile{Login: "one", PublicRepos: 10, Followers: 100}
	profile2 := model.UserProfile{Login: "two", PublicRepos: 20, Followers: 100}

	repos1 := []model.Repository{{StargazersCount: 50, ForksCount: 5, Language: "Go"}}
	repos2 := []model.Repository{{StargazersCount: 10, ForksCount: 5, Language: "Rust"}}

	result := Compare(profile1, repos1, profile2, repos2)

	// stars: first wins strictly
	assert.True(t, result.First.Wins.Stars)
	assert.False(t, result.Second.Wins.Stars)

	// repositories: second wins strictly
	assert.False(t, result.First.Wins.Repositories)
	assert.True(t, result.Second.Wins.Repositories)

	// forks and followers tie: no winner badge on either side
	assert.False(t, result.First.Wins.Forks)
	assert.False(t, result.Second.Wins.Forks)
	assert.False(t, result.First.Wins.Followers)
	assert.False(t, result.Second.Wins.Followers)

	assert.Equal(t, []string{"Go"}, result.First.TopLanguages)
	assert.Equal(t, []string{"Rust"}, result.Second.TopLanguages)
}

// TestTeam will test function Team
func TestTeam(t *testing.T) {
	members := []model.TeamMember{
		{Profile: model.UserProfile{Login: "alice", PublicRepos: 3}, Stats: model.RepositoryStats{TotalStars: 10, TotalForks: 1}},
		{Profile: model.UserProfile{Login: "bob", PublicRepos: 5}, Stats: model.RepositoryStats{TotalStars: 40, TotalForks: 4}},
		{Profile: model.UserProfile{Login: "carol", PublicRepos: 2}, Stats: model.RepositoryStats{TotalStars: 10, TotalForks: 2}},
	}

	repos := [][]model.Repository{
		{{Language: "Go"}, {Language: "Go"}},
		{{Language: "Python"}},
		{{Language: "Go"}},
	}

	result := Team(members, repos)

	assert.Equal(t, 3, result.MemberCount)
	assert.Equal(t, 10, result.TotalRepositories)
	assert.Equal(t, 60, result.TotalStars)
	assert.Equal(t, 7, result.TotalForks)
	assert.Equal(t, 20, result.AverageStarsPerMember)

	assert.Equal(t, []model.LanguageCount{
		{Language: "Go", Count: 3},
		{Language: "Python", Count: 1},
	}, result.TopLanguages)

	// bob leads, the alice/carol tie keeps input order
	assert.Equal(t, "bob", result.Leaderboard[0].Profile.Login)
	assert.Equal(t, "alice", result.Leaderboard[1].Profile.Login)
	assert.Equal(t, "carol", result.Leaderboard[2].Profile.Login)
}
