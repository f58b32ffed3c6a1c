package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "New",
			err:  New(ErrCodePinNotFound, "pin %q not found on %s", "G", "npn_transistor"),
			want: `PIN_NOT_FOUND: pin "G" not found on npn_transistor`,
		},
		{
			name: "Wrap",
			err:  Wrap(ErrCodeParse, errors.New("unexpected token \"->\""), "amp.cdl:3:5"),
			want: `PARSE_ERROR: amp.cdl:3:5: unexpected token "->"`,
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

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "input amp.cdl not found")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want cause", errors.Unwrap(err))
	}
	if !errors.Is(err, cause) {
		t.Error("stdlib errors.Is does not see the cause")
	}
	if err.Message != "input amp.cdl not found" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestIsAndGetCode(t *testing.T) {
	dangling := New(ErrCodeDanglingConnection, "R1.1 references missing component R9")

	tests := []struct {
		name string
		err  error
		code Code
		is   bool
	}{
		{"direct", dangling, ErrCodeDanglingConnection, true},
		{"other code", dangling, ErrCodePinNotFound, false},
		{"fmt wrapped", fmt.Errorf("layout: %w", dangling), ErrCodeDanglingConnection, true},
		{"outer code wins", Wrap(ErrCodeInvalidConfig, New(ErrCodeParse, "inner"), "config.toml"), ErrCodeInvalidConfig, true},
		{"inner code hidden", Wrap(ErrCodeInvalidConfig, New(ErrCodeParse, "inner"), "config.toml"), ErrCodeParse, false},
		{"plain", errors.New("plain"), "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != "" {
				if got := Is(tt.err, tt.code); got != tt.is {
					t.Errorf("Is(%s) = %v, want %v", tt.code, got, tt.is)
				}
			}
			if tt.is {
				if got := GetCode(tt.err); got != tt.code {
					t.Errorf("GetCode() = %q, want %q", got, tt.code)
				}
			}
		})
	}

	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrCodeInvalidRotation, "R1 has invalid rotation 45"), "R1 has invalid rotation 45"},
		{Wrap(ErrCodeInvalidPath, errors.New("permission denied"), "write out.svg"), "write out.svg"},
		{errors.New("plain error"), "plain error"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestIsInputError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unknown kind", New(ErrCodeUnknownComponentType, "x"), true},
		{"pin not found", New(ErrCodePinNotFound, "x"), true},
		{"invalid rotation", New(ErrCodeInvalidRotation, "x"), true},
		{"dangling wrapped", fmt.Errorf("render: %w", New(ErrCodeDanglingConnection, "x")), true},
		{"bad theme", New(ErrCodeInvalidTheme, "x"), true},
		{"not found", New(ErrCodeNotFound, "x"), false},
		{"internal", New(ErrCodeInternal, "x"), false},
		{"unsupported", New(ErrCodeUnsupported, "x"), false},
		{"plain", errors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInputError(tt.err); got != tt.want {
				t.Errorf("IsInputError() = %v, want %v", got, tt.want)
			}
		})
	}
}
