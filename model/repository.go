package model

import "time"

// Repository is an immutable point-in-time snapshot of one GitHub repository.
// Size is expressed in KB, as returned by the GitHub API.
type Repository struct {
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Language        string    `json:"language,omitempty"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	Size            int       `json:"size"`
	HTMLURL         string    `json:"html_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Topics          []string  `json:"topics,omitempty"`
	Private         bool      `json:"private"`
	Fork            bool      `json:"fork"`
}

// UserBundle pairs the profile and repository list fetched for one username.
// Both halves are always fetched and cached together to avoid skew between
// a cached profile and a stale repository list.
type UserBundle struct {
	Profile      UserProfile  `json:"user_data"`
	Repositories []Repository `json:"repos_data"`
}
