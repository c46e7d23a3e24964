package model

import "time"

// RepositoryStats are the summed counters of one repository collection.
// AverageSize is rounded to the nearest KB and 0 for an empty collection.
type RepositoryStats struct {
	TotalStars  int `json:"total_stars"`
	TotalForks  int `json:"total_forks"`
	TotalSize   int `json:"total_size"`
	AverageSize int `json:"average_size"`
}

// LanguageCount is one entry of a language breakdown
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// SizeBucket is one range of the repository size distribution
type SizeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Insights are derived activity indicators. EstimatedCommits uses repository
// size as a crude proxy for activity, it is an approximation and not a real
// commit count.
type Insights struct {
	EstimatedCommits       int    `json:"estimated_commits"`
	AverageStarsPerRepo    int    `json:"average_stars_per_repo"`
	MostProductiveLanguage string `json:"most_productive_language,omitempty"`
	ReposCreatedThisYear   int    `json:"repos_created_this_year"`
}

// AnalyticsResult is the full view model of one profile analysis
type AnalyticsResult struct {
	Username         string          `json:"username"`
	Profile          UserProfile     `json:"profile"`
	Repositories     []Repository    `json:"repositories"`
	Stats            RepositoryStats `json:"stats"`
	Languages        []LanguageCount `json:"languages"`
	SizeDistribution []SizeBucket    `json:"size_distribution"`
	Insights         Insights        `json:"insights"`
	Trending         []string        `json:"trending,omitempty"`
	RecentActivity   []Repository    `json:"recent_activity"`
}

// ComparisonWins marks the metrics on which one side strictly beats the
// other. Ties leave both sides unmarked.
type ComparisonWins struct {
	Repositories bool `json:"repositories"`
	Stars        bool `json:"stars"`
	Forks        bool `json:"forks"`
	Followers    bool `json:"followers"`
}

// ComparisonSide is one developer of a comparison
type ComparisonSide struct {
	Profile      UserProfile     `json:"profile"`
	Stats        RepositoryStats `json:"stats"`
	TopLanguages []string        `json:"top_languages"`
	Wins         ComparisonWins  `json:"wins"`
}

// ComparisonResult pairs the two sides of a developer comparison
type ComparisonResult struct {
	First  ComparisonSide `json:"first"`
	Second ComparisonSide `json:"second"`
}

// TeamMember is one developer of a team analysis
type TeamMember struct {
	Profile UserProfile     `json:"profile"`
	Stats   RepositoryStats `json:"stats"`
}

// TeamResult aggregates the metrics of all team members. The leaderboard is
// sorted descending by each member's total stars, ties keep input order.
type TeamResult struct {
	MemberCount           int             `json:"member_count"`
	TotalRepositories     int             `json:"total_repositories"`
	TotalStars            int             `json:"total_stars"`
	TotalForks            int             `json:"total_forks"`
	AverageStarsPerMember int             `json:"average_stars_per_member"`
	TopLanguages          []LanguageCount `json:"top_languages"`
	Leaderboard           []TeamMember    `json:"leaderboard"`
}

// ReleaseNotes is the structured output of the release notes generator plus
// the rendered Markdown document.
type ReleaseNotes struct {
	Repo          string   `json:"repo"`
	Version       string   `json:"version"`
	ReleaseDate   string   `json:"release_date"`
	TotalCommits  int      `json:"total_commits"`
	Contributors  int      `json:"contributors"`
	Features      []string `json:"features"`
	BugFixes      []string `json:"bug_fixes"`
	Improvements  []string `json:"improvements"`
	Documentation []string `json:"documentation"`
	Other         []string `json:"other"`
	Markdown      string   `json:"markdown"`
}

// ExportDocument is the one-shot JSON artifact of a profile analysis
type ExportDocument struct {
	Username     string          `json:"username"`
	ExportDate   time.Time       `json:"exportDate"`
	Profile      UserProfile     `json:"profile"`
	Statistics   RepositoryStats `json:"statistics"`
	Repositories []Repository    `json:"repositories"`
}

// OAuthToken is the access token returned by the OAuth code exchange
type OAuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}
