package app

import "encoding/json"

// EventEnvelope is the outer Events API payload delivered to the gateway
type EventEnvelope struct {
	Token        string          `json:"token"`
	TeamID       string          `json:"team_id"`
	EnterpriseID string          `json:"enterprise_id,omitempty"`
	APIAppID     string          `json:"api_app_id"`
	Type         string          `json:"type"`
	EventID      string          `json:"event_id"`
	EventTime    int64           `json:"event_time"`
	Challenge    string          `json:"challenge,omitempty"`
	Event        json.RawMessage `json:"event,omitempty"`
}

// Event is the inner Events API event (app_mention, message, ...)
type Event struct {
	Type    string `json:"type"`
	User    string `json:"user,omitempty"`
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text,omitempty"`
	TS      string `json:"ts,omitempty"`
	EventTS string `json:"event_ts,omitempty"`
	Team    string `json:"team,omitempty"`

	// Raw carries the full event body for handlers that need fields
	// beyond the common set
	Raw json.RawMessage `json:"-"`
}

// SlashCommand is a form-encoded slash command invocation
type SlashCommand struct {
	Command     string `json:"command"`
	Text        string `json:"text"`
	TeamID      string `json:"team_id"`
	TeamDomain  string `json:"team_domain"`
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	ResponseURL string `json:"response_url"`
	TriggerID   string `json:"trigger_id"`
}

// Shortcut is a global or message shortcut invocation
type Shortcut struct {
	Type       string `json:"type"`
	CallbackID string `json:"callback_id"`
	TriggerID  string `json:"trigger_id"`
	ActionTS   string `json:"action_ts"`
	Team       struct {
		ID     string `json:"id"`
		Domain string `json:"domain"`
	} `json:"team"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		TeamID   string `json:"team_id"`
	} `json:"user"`

	Raw json.RawMessage `json:"-"`
}
