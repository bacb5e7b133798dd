package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slack-gateway/internal/common/errors"
)

func TestExchanger_Exchange(t *testing.T) {
	ctx := context.Background()

	t.Run("successful exchange", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "test-code", r.PostForm.Get("code"))
			assert.Equal(t, "111.111", r.PostForm.Get("client_id"))
			assert.Equal(t, "xxx", r.PostForm.Get("client_secret"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"ok": true,
				"app_id": "A111",
				"access_token": "xoxb-valid",
				"token_type": "bot",
				"scope": "chat:write,commands",
				"bot_user_id": "W111",
				"team": {"id": "T111", "name": "Testing Workspace"},
				"authed_user": {"id": "W222", "access_token": "xoxp-valid", "scope": "search:read"}
			}`))
		}))
		defer srv.Close()

		exchanger := NewExchanger(&InstallConfig{
			ClientID:     "111.111",
			ClientSecret: "xxx",
			TokenURL:     srv.URL,
		})

		install, err := exchanger.Exchange(ctx, "test-code")
		require.NoError(t, err)

		assert.Equal(t, "A111", install.AppID)
		assert.Equal(t, "T111", install.TeamID)
		assert.Equal(t, "Testing Workspace", install.TeamName)
		assert.Equal(t, "W111", install.BotUserID)
		assert.Equal(t, "xoxb-valid", install.AccessToken)
		assert.Equal(t, "chat:write,commands", install.Scope)
		assert.Equal(t, "W222", install.UserID)
		assert.Equal(t, "xoxp-valid", install.UserToken)
		assert.False(t, install.InstalledAt.IsZero())
	})

	t.Run("slack error response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok": false, "error": "invalid_code"}`))
		}))
		defer srv.Close()

		exchanger := NewExchanger(&InstallConfig{
			ClientID:     "111.111",
			ClientSecret: "xxx",
			TokenURL:     srv.URL,
		})

		_, err := exchanger.Exchange(ctx, "bad-code")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeAuth))
	})

	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		exchanger := NewExchanger(&InstallConfig{
			ClientID:     "111.111",
			ClientSecret: "xxx",
			TokenURL:     srv.URL,
		})

		_, err := exchanger.Exchange(ctx, "test-code")
		assert.Error(t, err)
	})

	t.Run("redirect uri forwarded when configured", func(t *testing.T) {
		var gotRedirect string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotRedirect = r.PostForm.Get("redirect_uri")
			w.Write([]byte(`{"ok": true, "team": {"id": "T111"}}`))
		}))
		defer srv.Close()

		exchanger := NewExchanger(&InstallConfig{
			ClientID:     "111.111",
			ClientSecret: "xxx",
			RedirectURI:  "https://example.com/slack/oauth/callback",
			TokenURL:     srv.URL,
		})

		_, err := exchanger.Exchange(ctx, "test-code")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/slack/oauth/callback", gotRedirect)
	})
}
