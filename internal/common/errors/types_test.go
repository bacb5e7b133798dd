package errors

import (
	"errors"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "simple validation error",
			err:  ValidationError("client_id is required"),
			want: "validation: client_id is required",
		},
		{
			name: "auth error",
			err:  AuthError("invalid request signature"),
			want: "authentication: invalid request signature",
		},
		{
			name: "internal error with cause",
			err:  InternalError("token exchange failed", errors.New("connection refused")),
			want: "internal: token exchange failed: cause=connection refused",
		},
		{
			name: "not found error",
			err:  NotFoundError("command handler"),
			want: "not_found: command handler not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := InternalError("wrapper", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestAppError_WithContext(t *testing.T) {
	err := AuthError("signature mismatch").WithContext("header", "x-slack-signature")

	if err.Context["header"] != "x-slack-signature" {
		t.Errorf("expected context value, got %v", err.Context["header"])
	}
}

func TestIsType(t *testing.T) {
	if !IsType(AuthError("nope"), ErrTypeAuth) {
		t.Error("expected auth error type match")
	}
	if IsType(ValidationError("nope"), ErrTypeAuth) {
		t.Error("validation error should not match auth type")
	}
	if IsType(nil, ErrTypeAuth) {
		t.Error("nil error should not match any type")
	}
	if IsType(errors.New("plain"), ErrTypeAuth) {
		t.Error("plain error should not match any type")
	}
}
