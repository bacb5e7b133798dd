package app

import (
	"context"
	"fmt"
	"testing"

	"slack-gateway/internal/common/errors"
	"slack-gateway/internal/oauth"
)

func TestApp_DispatchEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to registered handler", func(t *testing.T) {
		a := New(nil)

		var got *Event
		a.OnEvent("app_mention", func(ctx context.Context, event *Event) error {
			got = event
			return nil
		})

		err := a.DispatchEvent(ctx, &Event{Type: "app_mention", User: "W222", Text: "<@W111> Hi there!"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.User != "W222" {
			t.Errorf("handler did not receive the event: %+v", got)
		}
	})

	t.Run("multiple handlers run in order", func(t *testing.T) {
		a := New(nil)

		var order []int
		a.OnEvent("message", func(ctx context.Context, event *Event) error {
			order = append(order, 1)
			return nil
		})
		a.OnEvent("message", func(ctx context.Context, event *Event) error {
			order = append(order, 2)
			return nil
		})

		if err := a.DispatchEvent(ctx, &Event{Type: "message"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order) != 2 || order[0] != 1 || order[1] != 2 {
			t.Errorf("handlers ran out of order: %v", order)
		}
	})

	t.Run("unregistered type", func(t *testing.T) {
		a := New(nil)

		err := a.DispatchEvent(ctx, &Event{Type: "reaction_added"})
		if !errors.IsType(err, errors.ErrTypeNotFound) {
			t.Errorf("expected not found error, got %v", err)
		}
	})

	t.Run("handler error propagates", func(t *testing.T) {
		a := New(nil)
		a.OnEvent("app_mention", func(ctx context.Context, event *Event) error {
			return fmt.Errorf("boom")
		})

		if err := a.DispatchEvent(ctx, &Event{Type: "app_mention"}); err == nil {
			t.Error("expected handler error to propagate")
		}
	})
}

func TestApp_DispatchCommand(t *testing.T) {
	ctx := context.Background()
	a := New(nil)

	var got *SlashCommand
	a.OnCommand("/hello-world", func(ctx context.Context, cmd *SlashCommand) error {
		got = cmd
		return nil
	})

	err := a.DispatchCommand(ctx, &SlashCommand{Command: "/hello-world", Text: "Hi", UserID: "W111"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Text != "Hi" {
		t.Errorf("handler did not receive the command: %+v", got)
	}

	err = a.DispatchCommand(ctx, &SlashCommand{Command: "/unknown"})
	if !errors.IsType(err, errors.ErrTypeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestApp_DispatchShortcut(t *testing.T) {
	ctx := context.Background()
	a := New(nil)

	var got *Shortcut
	a.OnShortcut("test-shortcut", func(ctx context.Context, shortcut *Shortcut) error {
		got = shortcut
		return nil
	})

	shortcut := &Shortcut{Type: "shortcut", CallbackID: "test-shortcut", TriggerID: "111.111.xxxxxx"}
	if err := a.DispatchShortcut(ctx, shortcut); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.TriggerID != "111.111.xxxxxx" {
		t.Errorf("handler did not receive the shortcut: %+v", got)
	}

	err := a.DispatchShortcut(ctx, &Shortcut{CallbackID: "unknown"})
	if !errors.IsType(err, errors.ErrTypeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestApp_DispatchInstall(t *testing.T) {
	ctx := context.Background()

	t.Run("no handler registered is a no-op", func(t *testing.T) {
		a := New(nil)
		if err := a.DispatchInstall(ctx, &oauth.Installation{TeamID: "T111"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("handler receives installation", func(t *testing.T) {
		a := New(nil)

		var got *oauth.Installation
		a.OnInstall(func(ctx context.Context, installation *oauth.Installation) error {
			got = installation
			return nil
		})

		if err := a.DispatchInstall(ctx, &oauth.Installation{TeamID: "T111"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.TeamID != "T111" {
			t.Errorf("handler did not receive the installation: %+v", got)
		}
	})
}
