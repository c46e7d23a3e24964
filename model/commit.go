package model

// Commit carries the fields of a GitHub commit used by the release notes
// generator: the message and the commit author name.
type Commit struct {
	Message    string `json:"message"`
	AuthorName string `json:"author_name"`
}
