package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AintJierie/GitVista/config"
	"github.com/AintJierie/GitVista/model"
	"github.com/AintJierie/GitVista/service"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type OAuthController interface {
	ExchangeToken(ctx *gin.Context)
	VerifyToken(ctx *gin.Context)
}

type oauthController struct {
	oauthService service.OAuthService
	limiter      *rate.Limiter
	config       config.Config
}

// NewOAuthController handles the token exchange proxy. The limiter protects
// the exchange endpoint against abuse, it does not gate calls to the GitHub
// data API.
func NewOAuthController(config config.Config, oauthService service.OAuthService, limiter *rate.Limiter) OAuthController {
	return oauthController{
		oauthService: oauthService,
		limiter:      limiter,
		config:       config,
	}
}

func (s oauthController) ExchangeToken(c *gin.Context) {
	if !s.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		return
	}

	var request model.TokenRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	token, err := s.oauthService.ExchangeCode(c.Request.Context(), request.Code)

	if err != nil {
		// a rejected code carries github's error and description, pass
		// both through instead of a generic failure
		var exchangeErr *model.OAuthExchangeError
		if errors.As(err, &exchangeErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":             exchangeErr.Code,
				"error_description": exchangeErr.Description,
			})
			return
		}

		if err.Error() == "NO_ACCESS_TOKEN" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No access token received from GitHub"})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, token)
}

func (s oauthController) VerifyToken(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")

	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid authorization header"})
		return
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")

	user, err := s.oauthService.VerifyToken(c.Request.Context(), token)

	if err != nil {
		if err.Error() == "INVALID_TOKEN" {
			c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "Invalid or expired token"})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "user": user})
}
