package model

// RepositoryListQuery binds the sort mode and text filter of a repository listing
type RepositoryListQuery struct {
	Sort string `form:"sort"`
	Q    string `form:"q"`
}

// CompareQuery binds the two usernames of a developer comparison
type CompareQuery struct {
	User1 string `form:"user1"`
	User2 string `form:"user2"`
}

// TeamRequest binds the member list of a team analysis
type TeamRequest struct {
	Usernames []string `json:"usernames"`
}

// ReleaseRequest binds the target of a release notes generation
type ReleaseRequest struct {
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Version string `json:"version"`
}

// TokenRequest binds the OAuth authorization code sent by the front end
type TokenRequest struct {
	Code string `json:"code"`
}
