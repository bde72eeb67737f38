package auth

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	sharedConfig "github.com/orris-inc/tenantdesk/internal/shared/config"
)

const githubAPIBase = "https://api.github.com"

type GitHubOAuthClient struct {
	oauthBase
	apiBase string
}

type githubUserInfo struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Login string `json:"login"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func NewGitHubOAuthClient(cfg sharedConfig.OAuthProviderConfig) *GitHubOAuthClient {
	return &GitHubOAuthClient{
		oauthBase: oauthBase{config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		}},
		apiBase: githubAPIBase,
	}
}

func (c *GitHubOAuthClient) Name() string { return "github" }

func (c *GitHubOAuthClient) AuthURL(state string) (string, string, error) {
	return c.authURL(state)
}

func (c *GitHubOAuthClient) Exchange(ctx context.Context, code, codeVerifier string) (*OAuthUserInfo, error) {
	client, err := c.client(ctx, code, codeVerifier)
	if err != nil {
		return nil, err
	}

	var info githubUserInfo
	if err := fetchJSON(ctx, client, c.apiBase+"/user", &info); err != nil {
		return nil, err
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}
	result := &OAuthUserInfo{
		Email:         info.Email,
		Name:          name,
		EmailVerified: info.Email != "",
		Provider:      c.Name(),
		ProviderID:    strconv.Itoa(info.ID),
	}

	// private emails are only listed on /user/emails
	if result.Email == "" {
		var emails []githubEmail
		if err := fetchJSON(ctx, client, c.apiBase+"/user/emails", &emails); err != nil {
			return nil, err
		}
		for _, e := range emails {
			if e.Primary {
				result.Email, result.EmailVerified = e.Email, e.Verified
				break
			}
		}
		if result.Email == "" {
			return nil, fmt.Errorf("no email found on github account")
		}
	}

	return result, nil
}
