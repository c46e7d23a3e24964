package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AintJierie/GitVista/config"
	"github.com/AintJierie/GitVista/model"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"

	log "github.com/sirupsen/logrus"
)

type OAuthService interface {
	ExchangeCode(ctx context.Context, code string) (model.OAuthToken, error)
	VerifyToken(ctx context.Context, token string) (model.UserProfile, error)
}

type oauthService struct {
	httpClient *http.Client
	tokenURL   string
	config     config.Config
}

// NewOAuthService exchanges authorization codes against GitHub. This service
// is the only component holding the OAuth client secret, the browser never
// sees it.
func NewOAuthService(config config.Config) OAuthService {
	return oauthService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokenURL:   oauthgithub.Endpoint.TokenURL,
		config:     config,
	}
}

// tokenExchangeResponse is the body GitHub returns from the token endpoint.
// On rejection GitHub still answers 200 with an error field.
type tokenExchangeResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	Scope            string `json:"scope"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (s oauthService) ExchangeCode(ctx context.Context, code string) (model.OAuthToken, error) {
	log.Debug("exchanging authorization code for access token")

	body, err := json.Marshal(map[string]string{
		"client_id":     s.config.Github.ClientID,
		"client_secret": s.config.Github.ClientSecret,
		"code":          code,
	})

	if err != nil {
		return model.OAuthToken{}, fmt.Errorf("EXCHANGE_ERROR")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, bytes.NewReader(body))
	if err != nil {
		return model.OAuthToken{}, fmt.Errorf("EXCHANGE_ERROR")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("unable to reach the github token endpoint")
		return model.OAuthToken{}, fmt.Errorf("EXCHANGE_ERROR")
	}
	defer resp.Body.Close()

	var exchange tokenExchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&exchange); err != nil {
		log.WithError(err).Error("unable to decode the github token response")
		return model.OAuthToken{}, fmt.Errorf("EXCHANGE_ERROR")
	}

	// GitHub signals a rejected code inside the body, pass the reason
	// through to the caller instead of a generic error
	if exchange.Error != "" {
		log.WithField("reason", exchange.Error).Warning("github rejected the code exchange")
		return model.OAuthToken{}, &model.OAuthExchangeError{
			Code:        exchange.Error,
			Description: exchange.ErrorDescription,
		}
	}

	if exchange.AccessToken == "" {
		log.Error("no access token in the github response")
		return model.OAuthToken{}, fmt.Errorf("NO_ACCESS_TOKEN")
	}

	return model.OAuthToken{
		AccessToken: exchange.AccessToken,
		TokenType:   exchange.TokenType,
		Scope:       exchange.Scope,
	}, nil
}

// VerifyToken confirms a bearer token is still valid by fetching the
// authenticated user with it.
func (s oauthService) VerifyToken(ctx context.Context, token string) (model.UserProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, tokenSource))

	user, resp, err := client.Users.Get(ctx, "")

	if err != nil {
		if resp != nil && (resp.StatusCode == 401 || resp.StatusCode == 403) {
			return model.UserProfile{}, fmt.Errorf("INVALID_TOKEN")
		}

		log.WithError(err).Error("unable to verify token against github")
		return model.UserProfile{}, fmt.Errorf("FETCH_ERROR")
	}

	return toUserProfile(user), nil
}
