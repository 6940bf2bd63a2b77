package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidArgument, "test message: %s", "value")

	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidArgument)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_ARGUMENT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeEncode, cause, "failed to write")

	if err.Code != ErrCodeEncode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeEncode)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      InvalidArgument("test"),
			code:     ErrCodeInvalidArgument,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      InvalidArgument("test"),
			code:     ErrCodeOutOfBounds,
			expected: false,
		},
		{
			name:     "wrapped with fmt",
			err:      fmt.Errorf("layer: %w", OutOfBounds("blit 3")),
			code:     ErrCodeOutOfBounds,
			expected: true,
		},
		{
			name:     "path open error",
			err:      fmt.Errorf("load: %w", &PathOpenError{Path: "a.png", Cause: fs.ErrNotExist}),
			code:     ErrCodePathOpen,
			expected: true,
		},
		{
			name:     "decode error",
			err:      &DecodeError{Index: 2, Cause: errors.New("bad header")},
			code:     ErrCodeDecode,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(&DecodeError{Cause: errors.New("x")}); got != ErrCodeDecode {
		t.Errorf("GetCode(DecodeError) = %q, want %q", got, ErrCodeDecode)
	}
}

func TestPathOpenError(t *testing.T) {
	err := &PathOpenError{Path: "missing.png", Cause: fs.ErrNotExist}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("PathOpenError should unwrap to its cause")
	}

	var target *PathOpenError
	if !errors.As(fmt.Errorf("column 0: %w", err), &target) {
		t.Fatal("errors.As should find PathOpenError")
	}
	if target.Path != "missing.png" {
		t.Errorf("Path = %q, want %q", target.Path, "missing.png")
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	cause := errors.New("unexpected EOF")
	tests := []struct {
		err  *DecodeError
		want string
	}{
		{&DecodeError{Index: 1, Cause: cause}, "DECODE: image #1: unexpected EOF"},
		{&DecodeError{Index: 0, Path: "a.png", Cause: cause}, "DECODE: image #0 (a.png): unexpected EOF"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", InvalidArgument("columns must be >= 1, got 0"), "columns must be >= 1, got 0"},
		{"plain", errors.New("boom"), "boom"},
		{"path", &PathOpenError{Path: "x.png", Cause: fs.ErrNotExist}, "cannot open image x.png: file does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
