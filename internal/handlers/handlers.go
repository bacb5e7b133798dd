// Package handlers bridges Slack's HTTP callbacks to the app registry.
// Each handler converts the wire request (headers, raw body, form or JSON
// payload) into the plain values the core components need, and maps their
// results back onto HTTP status codes.
package handlers

import (
	"net/http"

	"slack-gateway/internal/app"
	"slack-gateway/internal/common/errors"
	"slack-gateway/internal/common/logging"
	"slack-gateway/internal/oauth"
	"slack-gateway/internal/signature"
)

// Handlers holds the collaborators shared by all HTTP handlers
type Handlers struct {
	verifier   *signature.Verifier
	installCfg *oauth.InstallConfig
	states     oauth.StateStore
	exchanger  *oauth.Exchanger
	app        *app.App
	logger     logging.Logger
}

// New creates the handler set. installCfg, states and exchanger may be nil
// when the OAuth flow is not configured; the install routes then respond 404.
func New(verifier *signature.Verifier, installCfg *oauth.InstallConfig, states oauth.StateStore, exchanger *oauth.Exchanger, a *app.App, logger logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Handlers{
		verifier:   verifier,
		installCfg: installCfg,
		states:     states,
		exchanger:  exchanger,
		app:        a,
		logger:     logger,
	}
}

// HealthCheck reports liveness
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// sendError logs the failure and writes a plain-text error response
func (h *Handlers) sendError(w http.ResponseWriter, err error, message string, status int) {
	if err != nil {
		h.logger.Warn(message,
			logging.Field{Key: "error", Value: err.Error()},
			logging.Field{Key: "status", Value: status})
	}
	http.Error(w, message, status)
}

// statusForDispatchError maps registry dispatch failures onto status codes:
// nothing registered is the caller's 404, anything else is ours
func statusForDispatchError(err error) int {
	if errors.IsType(err, errors.ErrTypeNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
