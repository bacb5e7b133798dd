package oauth

import (
	"net/url"
	"strings"

	"slack-gateway/internal/common/errors"
)

const (
	// DefaultAuthorizeURL is Slack's OAuth v2 consent screen endpoint
	DefaultAuthorizeURL = "https://slack.com/oauth/v2/authorize"
	// DefaultTokenURL is Slack's OAuth v2 code exchange endpoint
	DefaultTokenURL = "https://slack.com/api/oauth.v2.access"
)

// InstallConfig holds the app credentials and requested scopes for the OAuth
// v2 install flow. Set once at startup, immutable thereafter.
type InstallConfig struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes,omitempty"`
	UserScopes   []string `json:"user_scopes,omitempty"`
	RedirectURI  string   `json:"redirect_uri,omitempty"`

	// AuthorizeURL and TokenURL default to Slack's endpoints; overridable
	// for tests
	AuthorizeURL string `json:"authorize_url,omitempty"`
	TokenURL     string `json:"token_url,omitempty"`
}

// Validate checks that the configuration can drive an install flow.
// A missing client ID is fatal at startup, not per-request.
func (c *InstallConfig) Validate() error {
	if c.ClientID == "" {
		return errors.ConfigError("client_id is required")
	}
	return nil
}

// BuildAuthorizeURL constructs the redirect URL for Slack's OAuth consent
// screen. Parameter order and scope join order are fixed:
//
//	<authorize>?state=<state>&client_id=<id>&scope=<s1,s2>&user_scope=<u1,u2>
//
// user_scope is present even when empty. redirect_uri is appended only when
// configured.
func (c *InstallConfig) BuildAuthorizeURL(state string) string {
	base := c.AuthorizeURL
	if base == "" {
		base = DefaultAuthorizeURL
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("?state=")
	b.WriteString(url.QueryEscape(state))
	b.WriteString("&client_id=")
	b.WriteString(c.ClientID)
	b.WriteString("&scope=")
	b.WriteString(strings.Join(c.Scopes, ","))
	b.WriteString("&user_scope=")
	b.WriteString(strings.Join(c.UserScopes, ","))

	if c.RedirectURI != "" {
		b.WriteString("&redirect_uri=")
		b.WriteString(url.QueryEscape(c.RedirectURI))
	}

	return b.String()
}
