package service

import (
	"context"
	"sync"
	"time"

	"github.com/AintJierie/GitVista/aggregate"
	"github.com/AintJierie/GitVista/cache"
	"github.com/AintJierie/GitVista/config"
	"github.com/AintJierie/GitVista/history"
	"github.com/AintJierie/GitVista/model"
	"github.com/remeh/sizedwaitgroup"
	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

const releaseCommitsPerPage = 50

type AnalyticsService interface {
	Analyze(ctx context.Context, username string) (model.AnalyticsResult, error)
	ListRepositories(ctx context.Context, username string, sortBy string, query string) ([]model.Repository, error)
	Compare(ctx context.Context, user1 string, user2 string) (model.ComparisonResult, error)
	AnalyzeTeam(ctx context.Context, usernames []string) (model.TeamResult, error)
	GenerateReleaseNotes(ctx context.Context, owner string, repo string, version string) (model.ReleaseNotes, error)
	Export(ctx context.Context, username string) (model.ExportDocument, error)
}

type analyticsService struct {
	githubService GithubService
	responseCache *cache.ResponseCache
	searchHistory *history.Store
	config        config.Config
}

func NewAnalyticsService(config config.Config, githubService GithubService, responseCache *cache.ResponseCache, searchHistory *history.Store) AnalyticsService {
	return analyticsService{
		githubService: githubService,
		responseCache: responseCache,
		searchHistory: searchHistory,
		config:        config,
	}
}

// loadUserBundle returns the cached profile+repositories pair for the
// username, fetching both in parallel on a miss. The cache is only written
// once both fetches succeeded, so a half-populated entry is never observable
// and both halves always expire together.
func (s analyticsService) loadUserBundle(ctx context.Context, username string) (model.UserBundle, error) {
	if bundle, found := s.responseCache.GetUser(username); found {
		log.WithField("username", username).Debug("serving profile and repositories from cache")
		return bundle, nil
	}

	var bundle model.UserBundle

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		profile, err := s.githubService.FetchUserProfile(groupCtx, username)
		bundle.Profile = profile
		return err
	})

	group.Go(func() error {
		repos, err := s.githubService.FetchUserRepositories(groupCtx, username)
		bundle.Repositories = repos
		return err
	})

	if err := group.Wait(); err != nil {
		return model.UserBundle{}, err
	}

	s.responseCache.SetUser(username, bundle)

	return bundle, nil
}

func (s analyticsService) Analyze(ctx context.Context, username string) (model.AnalyticsResult, error) {
	log.WithField("username", username).Info("analyze github profile")

	bundle, err := s.loadUserBundle(ctx, username)
	if err != nil {
		return model.AnalyticsResult{}, err
	}

	now := time.Now()
	repos := bundle.Repositories

	result := model.AnalyticsResult{
		Username:         username,
		Profile:          bundle.Profile,
		Repositories:     aggregate.SortRepositories(repos, aggregate.SortByStars),
		Stats:            aggregate.Totals(repos),
		Languages:        aggregate.LanguageBreakdown(repos, 8),
		SizeDistribution: aggregate.SizeDistribution(repos),
		Insights:         aggregate.ComputeInsights(repos, now),
		Trending:         aggregate.TrendingNames(repos, now),
		RecentActivity:   aggregate.RecentActivity(repos, 10),
	}

	s.searchHistory.Add(username)

	return result, nil
}

func (s analyticsService) ListRepositories(ctx context.Context, username string, sortBy string, query string) ([]model.Repository, error) {
	bundle, err := s.loadUserBundle(ctx, username)
	if err != nil {
		return nil, err
	}

	if sortBy == "" {
		sortBy = aggregate.SortByStars
	}

	// the filter narrows the currently sorted set, an empty query yields
	// the full sorted list
	sorted := aggregate.SortRepositories(bundle.Repositories, sortBy)

	return aggregate.FilterRepositories(sorted, query), nil
}

// Compare fetches both developers' profiles and repositories in parallel and
// fails fast on the first rejection: no partial comparison is produced.
func (s analyticsService) Compare(ctx context.Context, user1 string, user2 string) (model.ComparisonResult, error) {
	log.WithFields(log.Fields{
		"user1": user1,
		"user2": user2,
	}).Info("compare developers")

	var profile1, profile2 model.UserProfile
	var repos1, repos2 []model.Repository

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		profile1, err = s.githubService.FetchUserProfile(groupCtx, user1)
		return err
	})

	group.Go(func() error {
		var err error
		repos1, err = s.githubService.FetchUserRepositories(groupCtx, user1)
		return err
	})

	group.Go(func() error {
		var err error
		profile2, err = s.githubService.FetchUserProfile(groupCtx, user2)
		return err
	})

	group.Go(func() error {
		var err error
		repos2, err = s.githubService.FetchUserRepositories(groupCtx, user2)
		return err
	})

	if err := group.Wait(); err != nil {
		return model.ComparisonResult{}, err
	}

	return aggregate.Compare(profile1, repos1, profile2, repos2), nil
}

// AnalyzeTeam fetches every member's data with a bounded number of parallel
// lookups and aggregates the result. The first fetch error wins and the
// whole batch is discarded, there is no partial team view.
func (s analyticsService) AnalyzeTeam(ctx context.Context, usernames []string) (model.TeamResult, error) {
	log.WithField("members", len(usernames)).Info("analyze team")

	type memberResult struct {
		index   int
		profile model.UserProfile
		repos   []model.Repository
	}

	swg := sizedwaitgroup.New(s.config.Tasks.MaxParallelTasksAllowed)
	results := make([]memberResult, len(usernames))

	var mu sync.Mutex
	var firstErr error

	for i, username := range usernames {
		swg.Add()

		go func(index int, username string) {
			defer swg.Done()

			var profile model.UserProfile
			var repos []model.Repository

			group, groupCtx := errgroup.WithContext(ctx)

			group.Go(func() error {
				var err error
				profile, err = s.githubService.FetchUserProfile(groupCtx, username)
				return err
			})

			group.Go(func() error {
				var err error
				repos, err = s.githubService.FetchUserRepositories(groupCtx, username)
				return err
			})

			if err := group.Wait(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			results[index] = memberResult{index: index, profile: profile, repos: repos}
		}(i, username)
	}

	swg.Wait()

	if firstErr != nil {
		return model.TeamResult{}, firstErr
	}

	members := make([]model.TeamMember, len(usernames))
	repos := make([][]model.Repository, len(usernames))

	for i, result := range results {
		members[i] = model.TeamMember{
			Profile: result.profile,
			Stats:   aggregate.Totals(result.repos),
		}
		repos[i] = result.repos
	}

	return aggregate.Team(members, repos), nil
}

func (s analyticsService) GenerateReleaseNotes(ctx context.Context, owner string, repo string, version string) (model.ReleaseNotes, error) {
	if version == "" {
		version = "v1.0.0"
	}

	log.WithFields(log.Fields{
		"owner":      owner,
		"repository": repo,
		"version":    version,
	}).Info("generate release notes")

	commits, err := s.githubService.FetchCommits(ctx, owner, repo, releaseCommitsPerPage)
	if err != nil {
		return model.ReleaseNotes{}, err
	}

	return aggregate.BuildReleaseNotes(repo, version, commits, time.Now()), nil
}

func (s analyticsService) Export(ctx context.Context, username string) (model.ExportDocument, error) {
	bundle, err := s.loadUserBundle(ctx, username)
	if err != nil {
		return model.ExportDocument{}, err
	}

	return model.ExportDocument{
		Username:     username,
		ExportDate:   time.Now(),
		Profile:      bundle.Profile,
		Statistics:   aggregate.Totals(bundle.Repositories),
		Repositories: bundle.Repositories,
	}, nil
}
