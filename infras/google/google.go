package google

//go:generate go run go.uber.org/mock/mockgen -source=./google.go -destination=./mocks/google_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"hotelier/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// UserInfo is the subset of the Google userinfo payload the service consumes.
type UserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Google wraps the OAuth authorization-code flow against Google. All
// cryptographic and protocol work lives in the oauth2 library; this service
// only shapes the exchange.
type Google interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchUserInfo(ctx context.Context, token *oauth2.Token) (UserInfo, error)
}

type serviceImpl struct {
	oauth *oauth2.Config
}

func New(cfg *config.Config) Google {
	return &serviceImpl{
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			RedirectURL:  cfg.OAuth.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *serviceImpl) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *serviceImpl) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	return token, nil
}

func (s *serviceImpl) FetchUserInfo(ctx context.Context, token *oauth2.Token) (UserInfo, error) {
	var info UserInfo

	client := s.oauth.Client(ctx, token)

	resp, err := client.Get(userInfoEndpoint)
	if err != nil {
		return info, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("unexpected user info status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, fmt.Errorf("failed to decode user info: %w", err)
	}

	return info, nil
}
