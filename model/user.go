package model

// UserProfile is a snapshot of a GitHub user account.
// The private repository counters are only populated when the profile
// belongs to the authenticated user itself.
type UserProfile struct {
	Login             string `json:"login"`
	Name              string `json:"name,omitempty"`
	AvatarURL         string `json:"avatar_url"`
	HTMLURL           string `json:"html_url"`
	Bio               string `json:"bio,omitempty"`
	Location          string `json:"location,omitempty"`
	PublicRepos       int    `json:"public_repos"`
	Followers         int    `json:"followers"`
	Following         int    `json:"following"`
	PublicGists       int    `json:"public_gists"`
	TotalPrivateRepos *int64 `json:"total_private_repos,omitempty"`
	OwnedPrivateRepos *int64 `json:"owned_private_repos,omitempty"`
}
