package controller

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AintJierie/GitVista/config"
	"github.com/AintJierie/GitVista/history"
	"github.com/AintJierie/GitVista/model"
	"github.com/AintJierie/GitVista/ratelimit"
	"github.com/AintJierie/GitVista/service"
	"github.com/gin-gonic/gin"
)

type APIController interface {
	Health(ctx *gin.Context)
	GetUserAnalytics(ctx *gin.Context)
	GetUserRepositories(ctx *gin.Context)
	CompareDevelopers(ctx *gin.Context)
	AnalyzeTeam(ctx *gin.Context)
	GenerateReleaseNotes(ctx *gin.Context)
	GetRateLimit(ctx *gin.Context)
	GetHistory(ctx *gin.Context)
	ClearHistory(ctx *gin.Context)
	ExportAnalytics(ctx *gin.Context)
	ExportReleaseNotes(ctx *gin.Context)
}

type apiController struct {
	analyticsService service.AnalyticsService
	githubService    service.GithubService
	tracker          *ratelimit.Tracker
	searchHistory    *history.Store
	config           config.Config
}

func NewAPIController(config config.Config, analyticsService service.AnalyticsService, githubService service.GithubService, tracker *ratelimit.Tracker, searchHistory *history.Store) APIController {
	return apiController{
		analyticsService: analyticsService,
		githubService:    githubService,
		tracker:          tracker,
		searchHistory:    searchHistory,
		config:           config,
	}
}

func (s apiController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s apiController) GetUserAnalytics(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))

	result, err := s.analyticsService.Analyze(c.Request.Context(), username)
	if err != nil {
		c.JSON(model.HTTPStatus(err), model.NewAPIError(err))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s apiController) GetUserRepositories(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))

	var query model.RepositoryListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, model.APIError{Code: "INVALID_QUERY", Message: "invalid query parameters"})
		return
	}

	repos, err := s.analyticsService.ListRepositories(c.Request.Context(), username, query.Sort, query.Q)
	if err != nil {
		c.JSON(model.HTTPStatus(err), model.NewAPIError(err))
		return
	}

	c.JSON(http.StatusOK, repos)
}

func (s apiController) CompareDevelopers(c *gin.Context) {
	var query model.CompareQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, model.APIError{Code: "INVALID_QUERY", Message: "invalid query parameters"})
		return
	}

	if query.User1 == "" || query.User2 == "" {
		c.JSON(http.StatusBadRequest, model.APIError{Code: "MISSING_USERNAME", Message: "both user1 and user2 are required"})
		return
	}

	result, err := s.analyticsService.Compare(c.Request.Context(), query.User1, query.User2)
	if err != nil {
		c.JSON(model.HTTPStatus(err), model.NewAPIError(err))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s apiController) AnalyzeTeam(c *gin.Context) {
	var request model.TeamRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, model.APIError{Code: "INVALID_BODY", Message: "invalid request body"})
		return
	}

	usernames := make([]string, 0, len(request.Usernames))
	for _, username := range request.Usernames {
		if trimmed := strings.TrimSpace(username); trimmed != "" {
			usernames = append(usernames, trimmed)
		}
	}

	if len(usernames) == 0 {
		c.JSON(http.StatusBadRequest, model.APIError{Code: "MISSING_USERNAME", Message: "at least one username is required"})
		return
	}

	result, err := s.analyticsService.AnalyzeTeam(c.Request.Context(), usernames)
	if err != nil {
		c.JSON(model.HTTPStatus(err), model.NewAPIError(err))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s apiController) GenerateReleaseNotes(c *gin.Context) {
	var request model.ReleaseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, model.APIError{Code: "INVALID_BODY", Message: "invalid request body"})
		return
	}

	if request.Owner == "" || request.Repo == "" {
		c.JSON(http.StatusBadRequest, model.APIError{Code: "MISSING_REPOSITORY", Message: "both owner and repo are required"})
		return
	}

	notes, err := s.analyticsService.GenerateReleaseNotes(c.Request.Context(), request.Owner, request.Repo, request.Version)
	if err != nil {
		c.JSON(model.HTTPStatus(err), model.NewAPIError(err))
		return
	}

	c.JSON(http.StatusOK, notes)
}

// GetRateLimit returns the advisory rate limit state. With refresh=true the
// values are refreshed from github first.
func (s apiController) GetRateLimit(c *gin.Context) {
	if c.Query("refresh") == "true" {
		if info, err := s.githubService.CheckRateLimit(c.Request.Context()); err == nil {
			c.JSON(http.StatusOK, info)
			return
		}
	}

	c.JSON(http.StatusOK, s.tracker.Snapshot())
}

func (s apiController) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, s.searchHistory.List())
}

func (s apiController) ClearHistory(c *gin.Context) {
	s.searchHistory.Clear()
	c.Status(http.StatusNoContent)
}

// ExportAnalytics serves the profile analysis as a one-shot JSON download
func (s apiController) ExportAnalytics(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))

	document, err := s.analyticsService.Export(c.Request.Context(), username)
	if err != nil {
		c.JSON(model.HTTPStatus(err), model.NewAPIError(err))
		return
	}

	filename := fmt.Sprintf("gitvista-%s-%d.json", username, time.Now().UnixMilli())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.IndentedJSON(http.StatusOK, document)
}

// ExportReleaseNotes serves the generated release notes as a Markdown download
func (s apiController) ExportReleaseNotes(c *gin.Context) {
	var request model.ReleaseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, model.APIError{Code: "INVALID_BODY", Message: "invalid request body"})
		return
	}

	if request.Owner == "" || request.Repo == "" {
		c.JSON(http.StatusBadRequest, model.APIError{Code: "MISSING_REPOSITORY", Message: "both owner and repo are required"})
		return
	}

	notes, err := s.analyticsService.GenerateReleaseNotes(c.Request.Context(), request.Owner, request.Repo, request.Version)
	if err != nil {
		c.JSON(model.HTTPStatus(err), model.NewAPIError(err))
		return
	}

	filename := fmt.Sprintf("%s-%s-release-notes.md", notes.Repo, notes.Version)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(notes.Markdown))
}
