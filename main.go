package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AintJierie/GitVista/cache"
	"github.com/AintJierie/GitVista/config"
	"github.com/AintJierie/GitVista/controller"
	"github.com/AintJierie/GitVista/history"
	"github.com/AintJierie/GitVista/logger"
	"github.com/AintJierie/GitVista/ratelimit"
	"github.com/AintJierie/GitVista/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("unable to load configuration")
	}

	// configure logger
	logger.Setup(*cfg)

	// setup github client
	// we do here and pass the client to Github service to easily improve tests with mock client
	githubClient := github.NewClient(nil)

	if cfg.Github.Token != "" {
		log.Debug("will setup github client with authorization token")
		githubClient = githubClient.WithAuthToken(cfg.Github.Token)
	}

	// resolve the authenticated login when a token is configured
	// lookups for this login switch to the /user endpoints to include private repo counts
	authenticatedLogin := ""

	if cfg.Github.Token != "" {
		user, _, err := githubClient.Users.Get(context.Background(), "")
		if err != nil {
			log.WithError(err).Warning("unable to resolve the authenticated login, private repo counts will not be available")
		} else {
			authenticatedLogin = user.GetLogin()
			log.WithField("login", authenticatedLogin).Debug("resolved authenticated github login")
		}
	}

	// rate limit tracking is advisory display state, it never blocks
	// outgoing github calls. Start from the unauthenticated default and
	// refresh proactively from github.
	tracker := ratelimit.NewTracker()
	githubService := service.NewGithubService(*cfg, githubClient, tracker, authenticatedLogin)

	if info, err := githubService.CheckRateLimit(context.Background()); err != nil {
		log.WithError(err).Warning("unable to load current github rate limits, keeping defaults")
	} else {
		log.WithFields(log.Fields{
			"totalAvailable":    info.Limit,
			"remainingRequests": info.Remaining,
		}).Debug("loaded current rate limit from github")
	}

	// setup the response cache, search history and services
	responseCache := cache.New(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	searchHistory := history.NewStore()

	analyticsService := service.NewAnalyticsService(*cfg, githubService, responseCache, searchHistory)
	oauthService := service.NewOAuthService(*cfg)

	// the limiter only protects the oauth exchange endpoint against abuse
	oauthLimiter := rate.NewLimiter(rate.Every(time.Second), 10)

	apiController := controller.NewAPIController(*cfg, analyticsService, githubService, tracker, searchHistory)
	oauthController := controller.NewOAuthController(*cfg, oauthService, oauthLimiter)

	// setup server and define all routes
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	server := &http.Server{
		Addr:    ":" + cfg.API.ListenPort,
		Handler: router,
	}

	router.Use(
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "DELETE"},
			AllowHeaders: []string{"Content-Type, Content-Length, Accept-Encoding, Host, accept, Origin, Cache-Control, X-Requested-With, Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	api := router.Group("/api")
	{
		api.GET("/health", apiController.Health)
		api.GET("/rate_limit", apiController.GetRateLimit)

		api.GET("/users/:username/analytics", apiController.GetUserAnalytics)
		api.GET("/users/:username/repositories", apiController.GetUserRepositories)
		api.GET("/users/:username/export", apiController.ExportAnalytics)

		api.GET("/compare", apiController.CompareDevelopers)
		api.POST("/team", apiController.AnalyzeTeam)
		api.POST("/release-notes", apiController.GenerateReleaseNotes)
		api.POST("/release-notes/export", apiController.ExportReleaseNotes)

		api.GET("/history", apiController.GetHistory)
		api.DELETE("/history", apiController.ClearHistory)

		api.POST("/github/oauth/token", oauthController.ExchangeToken)
		api.GET("/github/oauth/verify", oauthController.VerifyToken)
	}

	// start with configuration
	go func() {
		log.Info("server listening on port " + cfg.API.ListenPort)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("error while starting server")
		}

	}()

	// create context with 15 seconds timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// wait for interrupt signal to gracefully shut down the server with a timeout of 15 seconds.
	// kill default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("SIGINT, SIGTERM received, will shut down server ...")

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	} else {
		log.Info("Application stopped gracefully !")
	}
}
