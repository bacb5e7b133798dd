// Package app holds the callback registry the gateway dispatches Slack
// payloads into. It is a keyed lookup table, not a listener framework:
// handlers are registered at startup and matched by event type, command
// name, or shortcut callback ID.
package app

import (
	"context"
	"sync"

	"slack-gateway/internal/common/errors"
	"slack-gateway/internal/common/logging"
	"slack-gateway/internal/oauth"
)

// EventHandler processes an Events API event
type EventHandler func(ctx context.Context, event *Event) error

// CommandHandler processes a slash command invocation
type CommandHandler func(ctx context.Context, cmd *SlashCommand) error

// ShortcutHandler processes a shortcut invocation
type ShortcutHandler func(ctx context.Context, shortcut *Shortcut) error

// InstallHandler receives the result of a completed OAuth exchange
type InstallHandler func(ctx context.Context, installation *oauth.Installation) error

// App is the registry of application callbacks. Registration normally
// happens once at startup; dispatch is safe for concurrent use.
type App struct {
	mu        sync.RWMutex
	events    map[string][]EventHandler
	commands  map[string]CommandHandler
	shortcuts map[string]ShortcutHandler
	onInstall InstallHandler

	logger logging.Logger
}

// New creates an empty registry
func New(logger logging.Logger) *App {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &App{
		events:    make(map[string][]EventHandler),
		commands:  make(map[string]CommandHandler),
		shortcuts: make(map[string]ShortcutHandler),
		logger:    logger,
	}
}

// OnEvent registers a handler for an Events API event type. Multiple
// handlers for the same type run in registration order.
func (a *App) OnEvent(eventType string, handler EventHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events[eventType] = append(a.events[eventType], handler)
}

// OnCommand registers the handler for a slash command (including the
// leading slash, e.g. "/hello-world")
func (a *App) OnCommand(command string, handler CommandHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.commands[command] = handler
}

// OnShortcut registers the handler for a shortcut callback ID
func (a *App) OnShortcut(callbackID string, handler ShortcutHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shortcuts[callbackID] = handler
}

// OnInstall registers the handler invoked after a successful OAuth exchange
func (a *App) OnInstall(handler InstallHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onInstall = handler
}

// DispatchEvent routes an event to its registered handlers.
// Returns a not-found error when no handler is registered for the type.
func (a *App) DispatchEvent(ctx context.Context, event *Event) error {
	a.mu.RLock()
	handlers := a.events[event.Type]
	a.mu.RUnlock()

	if len(handlers) == 0 {
		return errors.NotFoundError("event handler").WithContext("event_type", event.Type)
	}

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			a.logger.Error("Event handler failed", err,
				logging.Field{Key: "event_type", Value: event.Type})
			return err
		}
	}
	return nil
}

// DispatchCommand routes a slash command to its registered handler
func (a *App) DispatchCommand(ctx context.Context, cmd *SlashCommand) error {
	a.mu.RLock()
	handler, ok := a.commands[cmd.Command]
	a.mu.RUnlock()

	if !ok {
		return errors.NotFoundError("command handler").WithContext("command", cmd.Command)
	}

	if err := handler(ctx, cmd); err != nil {
		a.logger.Error("Command handler failed", err,
			logging.Field{Key: "command", Value: cmd.Command})
		return err
	}
	return nil
}

// DispatchShortcut routes a shortcut to its registered handler
func (a *App) DispatchShortcut(ctx context.Context, shortcut *Shortcut) error {
	a.mu.RLock()
	handler, ok := a.shortcuts[shortcut.CallbackID]
	a.mu.RUnlock()

	if !ok {
		return errors.NotFoundError("shortcut handler").WithContext("callback_id", shortcut.CallbackID)
	}

	if err := handler(ctx, shortcut); err != nil {
		a.logger.Error("Shortcut handler failed", err,
			logging.Field{Key: "callback_id", Value: shortcut.CallbackID})
		return err
	}
	return nil
}

// DispatchInstall hands a completed installation to the install handler,
// if one is registered
func (a *App) DispatchInstall(ctx context.Context, installation *oauth.Installation) error {
	a.mu.RLock()
	handler := a.onInstall
	a.mu.RUnlock()

	if handler == nil {
		return nil
	}
	return handler(ctx, installation)
}
