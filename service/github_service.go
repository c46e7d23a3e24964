package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AintJierie/GitVista/config"
	"github.com/AintJierie/GitVista/model"
	"github.com/AintJierie/GitVista/ratelimit"
	"github.com/google/go-github/v66/github"

	log "github.com/sirupsen/logrus"
)

type GithubService interface {
	FetchUserProfile(ctx context.Context, username string) (model.UserProfile, error)
	FetchUserRepositories(ctx context.Context, username string) ([]model.Repository, error)
	FetchCommits(ctx context.Context, owner string, repo string, perPage int) ([]model.Commit, error)
	CheckRateLimit(ctx context.Context) (ratelimit.Info, error)
}

type githubService struct {
	githubClient       *github.Client
	tracker            *ratelimit.Tracker
	authenticatedLogin string
	config             config.Config
}

// NewGithubService wraps the github client with the error taxonomy and rate
// limit tracking of the API. authenticatedLogin is the login resolved for
// the configured token, empty when running unauthenticated: requests for
// that login switch to the /user endpoints to unlock private repo counts.
func NewGithubService(config config.Config, githubClient *github.Client, tracker *ratelimit.Tracker, authenticatedLogin string) GithubService {
	return githubService{
		githubClient:       githubClient,
		tracker:            tracker,
		authenticatedLogin: authenticatedLogin,
		config:             config,
	}
}

// isSelf reports whether the username matches the authenticated login,
// case-insensitive like the GitHub login namespace.
func (s githubService) isSelf(username string) bool {
	return s.authenticatedLogin != "" && strings.EqualFold(s.authenticatedLogin, username)
}

func (s githubService) FetchUserProfile(ctx context.Context, username string) (model.UserProfile, error) {
	lookup := username
	if s.isSelf(username) {
		// the /user endpoint exposes total_private_repos and owned_private_repos
		lookup = ""
	}

	log.WithField("username", username).Debug("fetch user profile from github")

	user, resp, err := s.githubClient.Users.Get(ctx, lookup)
	s.tracker.Update(resp)

	if err != nil {
		return model.UserProfile{}, s.handleRequestError(err, resp, "USER_NOT_FOUND")
	}

	return toUserProfile(user), nil
}

func (s githubService) FetchUserRepositories(ctx context.Context, username string) ([]model.Repository, error) {
	log.WithField("username", username).Debug("fetch user repositories from github")

	var repos []*github.Repository
	var resp *github.Response
	var err error

	if s.isSelf(username) {
		// visibility=all covers public + private, the affiliation list
		// broadens access to collaborator and org member repositories
		repos, resp, err = s.githubClient.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
			Visibility:  "all",
			Affiliation: "owner,collaborator,organization_member",
			Sort:        "updated",
			ListOptions: github.ListOptions{PerPage: 100},
		})
	} else {
		repos, resp, err = s.githubClient.Repositories.ListByUser(ctx, username, &github.RepositoryListByUserOptions{
			Sort:        "updated",
			ListOptions: github.ListOptions{PerPage: 100},
		})
	}

	s.tracker.Update(resp)

	if err != nil {
		return nil, s.handleRequestError(err, resp, "")
	}

	repositories := make([]model.Repository, 0, len(repos))
	for _, r := range repos {
		repositories = append(repositories, toRepository(r))
	}

	return repositories, nil
}

func (s githubService) FetchCommits(ctx context.Context, owner string, repo string, perPage int) ([]model.Commit, error) {
	log.WithFields(log.Fields{
		"owner":      owner,
		"repository": repo,
	}).Debug("fetch commits from github")

	// first page only, no follow-up pagination
	repoCommits, resp, err := s.githubClient.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	})

	s.tracker.Update(resp)

	if err != nil {
		return nil, s.handleRequestError(err, resp, "REPOSITORY_NOT_FOUND")
	}

	commits := make([]model.Commit, 0, len(repoCommits))
	for _, c := range repoCommits {
		commits = append(commits, model.Commit{
			Message:    c.GetCommit().GetMessage(),
			AuthorName: c.GetCommit().GetAuthor().GetName(),
		})
	}

	return commits, nil
}

// CheckRateLimit proactively refreshes the tracker from the /rate_limit
// endpoint, which does not count against the rate limit itself.
func (s githubService) CheckRateLimit(ctx context.Context) (ratelimit.Info, error) {
	rateLimits, resp, err := s.githubClient.RateLimit.Get(ctx)

	if err != nil {
		return s.tracker.Snapshot(), s.handleRequestError(err, resp, "")
	}

	s.tracker.Set(rateLimits.Core.Remaining, rateLimits.Core.Limit)

	return s.tracker.Snapshot(), nil
}

// handleRequestError maps a github client error to the service error
// taxonomy: 404 becomes notFoundCode when one applies to the call, 403 means
// the rate limit was exhausted, anything else is a fetch failure. Errors are
// terminal for the calling operation, there is no retry.
func (s githubService) handleRequestError(err error, resp *github.Response, notFoundCode string) error {
	if resp != nil {
		if resp.StatusCode == 404 && notFoundCode != "" {
			return errors.New(notFoundCode)
		}

		if resp.StatusCode == 403 {
			log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
			return fmt.Errorf("RATE_LIMIT_REACHED")
		}
	}

	if _, ok := err.(*github.RateLimitError); ok {
		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return fmt.Errorf("RATE_LIMIT_REACHED")
	}

	log.WithError(err).Error("error catched when fetching data from github")
	return fmt.Errorf("FETCH_ERROR")
}

func toUserProfile(u *github.User) model.UserProfile {
	return model.UserProfile{
		Login:             u.GetLogin(),
		Name:              u.GetName(),
		AvatarURL:         u.GetAvatarURL(),
		HTMLURL:           u.GetHTMLURL(),
		Bio:               u.GetBio(),
		Location:          u.GetLocation(),
		PublicRepos:       u.GetPublicRepos(),
		Followers:         u.GetFollowers(),
		Following:         u.GetFollowing(),
		PublicGists:       u.GetPublicGists(),
		TotalPrivateRepos: u.TotalPrivateRepos,
		OwnedPrivateRepos: u.OwnedPrivateRepos,
	}
}

func toRepository(r *github.Repository) model.Repository {
	return model.Repository{
		Name:            r.GetName(),
		Description:     r.GetDescription(),
		Language:        r.GetLanguage(),
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		Size:            r.GetSize(),
		HTMLURL:         r.GetHTMLURL(),
		CreatedAt:       r.GetCreatedAt().Time,
		UpdatedAt:       r.GetUpdatedAt().Time,
		Topics:          r.Topics,
		Private:         r.GetPrivate(),
		Fork:            r.GetFork(),
	}
}
