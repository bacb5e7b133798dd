package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"slack-gateway/internal/common/errors"
)

// Installation is the result of a completed oauth.v2.access exchange.
// The gateway hands it to the configured install callback; it is not
// persisted here.
type Installation struct {
	AppID       string    `json:"app_id"`
	TeamID      string    `json:"team_id"`
	TeamName    string    `json:"team_name"`
	BotUserID   string    `json:"bot_user_id"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Scope       string    `json:"scope"`
	UserID      string    `json:"user_id,omitempty"`
	UserToken   string    `json:"user_token,omitempty"`
	UserScope   string    `json:"user_scope,omitempty"`
	InstalledAt time.Time `json:"installed_at"`
}

// accessResponse maps the oauth.v2.access response body
type accessResponse struct {
	OK          bool   `json:"ok"`
	Error       string `json:"error,omitempty"`
	AppID       string `json:"app_id"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	BotUserID   string `json:"bot_user_id"`
	Team        struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	AuthedUser struct {
		ID          string `json:"id"`
		AccessToken string `json:"access_token"`
		Scope       string `json:"scope"`
	} `json:"authed_user"`
}

// Exchanger redeems OAuth callback codes against Slack's token endpoint
type Exchanger struct {
	config     *InstallConfig
	httpClient *http.Client
}

// NewExchanger creates an exchanger for the given install configuration
func NewExchanger(config *InstallConfig) *Exchanger {
	return &Exchanger{
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Exchange redeems an authorization code for workspace and user tokens
func (e *Exchanger) Exchange(ctx context.Context, code string) (*Installation, error) {
	tokenURL := e.config.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	data := url.Values{}
	data.Set("code", code)
	data.Set("client_id", e.config.ClientID)
	data.Set("client_secret", e.config.ClientSecret)
	if e.config.RedirectURI != "" {
		data.Set("redirect_uri", e.config.RedirectURI)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.InternalError(
			fmt.Sprintf("token request failed with status %d", resp.StatusCode), nil)
	}

	var access accessResponse
	if err := json.NewDecoder(resp.Body).Decode(&access); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if !access.OK {
		return nil, errors.AuthError("oauth.v2.access failed").
			WithContext("error", access.Error)
	}

	return &Installation{
		AppID:       access.AppID,
		TeamID:      access.Team.ID,
		TeamName:    access.Team.Name,
		BotUserID:   access.BotUserID,
		AccessToken: access.AccessToken,
		TokenType:   access.TokenType,
		Scope:       access.Scope,
		UserID:      access.AuthedUser.ID,
		UserToken:   access.AuthedUser.AccessToken,
		UserScope:   access.AuthedUser.Scope,
		InstalledAt: time.Now(),
	}, nil
}
