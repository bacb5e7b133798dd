package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"slack-gateway/internal/app"
	"slack-gateway/internal/common/logging"
	"slack-gateway/internal/signature"
)

// HandleEvents is the single ingress for Slack's POST callbacks: Events API
// deliveries, slash commands, and shortcut invocations. The signature is
// verified against the raw body before any parsing; a failed check is a 401
// and never reaches a registered handler.
func (h *Handlers) HandleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := signature.PreserveRequestBody(r)
	if err != nil {
		h.sendError(w, err, "failed to read request body", http.StatusBadRequest)
		return
	}

	if err := h.verifier.VerifyRequest(r, body); err != nil {
		h.sendError(w, err, "invalid request signature", http.StatusUnauthorized)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		h.handleJSONPayload(w, r, body)
		return
	}

	h.handleFormPayload(w, r)
}

// handleJSONPayload processes Events API envelopes and JSON-delivered
// shortcuts
func (h *Handlers) handleJSONPayload(w http.ResponseWriter, r *http.Request, body []byte) {
	var envelope app.EventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		h.sendError(w, err, "malformed JSON payload", http.StatusBadRequest)
		return
	}

	switch envelope.Type {
	case "url_verification":
		// Events API endpoint ownership handshake: echo the challenge
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"challenge": envelope.Challenge})

	case "event_callback":
		var event app.Event
		if err := json.Unmarshal(envelope.Event, &event); err != nil {
			h.sendError(w, err, "malformed event payload", http.StatusBadRequest)
			return
		}
		event.Raw = envelope.Event

		if err := h.app.DispatchEvent(r.Context(), &event); err != nil {
			h.sendError(w, err, "event not handled", statusForDispatchError(err))
			return
		}

		h.logger.Debug("Event dispatched",
			logging.Field{Key: "event_type", Value: event.Type},
			logging.Field{Key: "event_id", Value: envelope.EventID},
			logging.Field{Key: "team_id", Value: envelope.TeamID})
		w.WriteHeader(http.StatusOK)

	case "shortcut", "message_action":
		h.dispatchShortcut(w, r, body)

	default:
		h.sendError(w, nil, "unsupported payload type", http.StatusNotFound)
	}
}

// handleFormPayload processes form-encoded callbacks: slash commands and
// interactivity payloads (shortcuts arrive as a JSON blob in the "payload"
// field)
func (h *Handlers) handleFormPayload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.sendError(w, err, "malformed form payload", http.StatusBadRequest)
		return
	}

	if payload := r.PostForm.Get("payload"); payload != "" {
		h.dispatchShortcut(w, r, []byte(payload))
		return
	}

	if command := r.PostForm.Get("command"); command != "" {
		cmd := &app.SlashCommand{
			Command:     command,
			Text:        r.PostForm.Get("text"),
			TeamID:      r.PostForm.Get("team_id"),
			TeamDomain:  r.PostForm.Get("team_domain"),
			ChannelID:   r.PostForm.Get("channel_id"),
			ChannelName: r.PostForm.Get("channel_name"),
			UserID:      r.PostForm.Get("user_id"),
			UserName:    r.PostForm.Get("user_name"),
			ResponseURL: r.PostForm.Get("response_url"),
			TriggerID:   r.PostForm.Get("trigger_id"),
		}

		if err := h.app.DispatchCommand(r.Context(), cmd); err != nil {
			h.sendError(w, err, "command not handled", statusForDispatchError(err))
			return
		}

		h.logger.Debug("Command dispatched",
			logging.Field{Key: "command", Value: cmd.Command},
			logging.Field{Key: "team_id", Value: cmd.TeamID})
		w.WriteHeader(http.StatusOK)
		return
	}

	h.sendError(w, nil, "unsupported payload type", http.StatusNotFound)
}

// dispatchShortcut parses a shortcut payload and routes it by callback ID
func (h *Handlers) dispatchShortcut(w http.ResponseWriter, r *http.Request, payload []byte) {
	var shortcut app.Shortcut
	if err := json.Unmarshal(payload, &shortcut); err != nil {
		h.sendError(w, err, "malformed shortcut payload", http.StatusBadRequest)
		return
	}
	shortcut.Raw = payload

	if err := h.app.DispatchShortcut(r.Context(), &shortcut); err != nil {
		h.sendError(w, err, "shortcut not handled", statusForDispatchError(err))
		return
	}

	h.logger.Debug("Shortcut dispatched",
		logging.Field{Key: "callback_id", Value: shortcut.CallbackID})
	w.WriteHeader(http.StatusOK)
}
