package handlers

import (
	"net/http"

	"slack-gateway/internal/common/logging"
)

// HandleInstall starts the OAuth v2 install flow: issue a fresh state token
// and redirect the browser to Slack's consent screen
func (h *Handlers) HandleInstall(w http.ResponseWriter, r *http.Request) {
	if h.installCfg == nil || h.states == nil {
		h.sendError(w, nil, "oauth install flow is not configured", http.StatusNotFound)
		return
	}

	state, err := h.states.Issue(r.Context())
	if err != nil {
		h.sendError(w, err, "failed to start install flow", http.StatusInternalServerError)
		return
	}

	authorizeURL := h.installCfg.BuildAuthorizeURL(state)

	h.logger.Info("Install flow started",
		logging.Field{Key: "client_id", Value: h.installCfg.ClientID})
	http.Redirect(w, r, authorizeURL, http.StatusFound)
}

// HandleOAuthCallback completes the install flow: validate the returned
// state, redeem the code, and hand the installation to the app
func (h *Handlers) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if h.installCfg == nil || h.states == nil || h.exchanger == nil {
		h.sendError(w, nil, "oauth install flow is not configured", http.StatusNotFound)
		return
	}

	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		// The user declined the consent screen, or Slack reported a
		// flow error; no state to redeem
		h.logger.Warn("Install flow rejected by Slack",
			logging.Field{Key: "error", Value: errParam})
		h.sendError(w, nil, "installation was cancelled", http.StatusBadRequest)
		return
	}

	state := query.Get("state")
	code := query.Get("code")
	if state == "" || code == "" {
		h.sendError(w, nil, "missing state or code parameter", http.StatusBadRequest)
		return
	}

	ok, err := h.states.Consume(r.Context(), state)
	if err != nil {
		h.sendError(w, err, "failed to validate state", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.sendError(w, nil, "invalid or expired state", http.StatusBadRequest)
		return
	}

	installation, err := h.exchanger.Exchange(r.Context(), code)
	if err != nil {
		h.sendError(w, err, "token exchange failed", http.StatusInternalServerError)
		return
	}

	if err := h.app.DispatchInstall(r.Context(), installation); err != nil {
		h.sendError(w, err, "installation handler failed", http.StatusInternalServerError)
		return
	}

	h.logger.Info("App installed",
		logging.Field{Key: "team_id", Value: installation.TeamID},
		logging.Field{Key: "app_id", Value: installation.AppID})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("<html><body><h2>Installation complete</h2><p>You can close this window.</p></body></html>"))
}
