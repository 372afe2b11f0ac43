package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrAPI,
		ErrDecode,
		ErrToggle,
	}

	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "server.url is empty",
			suggestion: "Set server.url in .usagedash.yaml",
		},
		{
			name:       "api error",
			code:       ErrAPI,
			message:    "GET /api/status returned 500",
			suggestion: "Check the tracker service logs",
		},
		{
			name:       "decode error",
			code:       ErrDecode,
			message:    "Malformed JSON from /api/apps",
			suggestion: "",
		},
		{
			name:       "toggle error",
			code:       ErrToggle,
			message:    "Autostart was not enabled",
			suggestion: "Try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name:          "basic error formatting",
			err:           New(ErrConfig, "Invalid configuration", "Check .usagedash.yaml syntax"),
			expectedParts: []string{"Invalid configuration", "Check .usagedash.yaml syntax"},
		},
		{
			name:          "error with failure symbol",
			err:           New(ErrAPI, "Request failed", "Try again"),
			expectedParts: []string{"✗", "Request failed"},
		},
		{
			name:          "error without suggestion",
			err:           New(ErrDecode, "Bad payload", ""),
			expectedParts: []string{"Bad payload"},
			notExpected:   []string{"\n\n  \n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part, "output should contain %q", part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part, "output should not contain %q", part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, "Tracker unreachable")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrAPI, wrapped.Code, "Wrap should default to ErrAPI code")
	assert.Equal(t, "Tracker unreachable", wrapped.Message)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	wrapped := WrapWithCode(cause, ErrDecode, "Failed to decode /api/status", "Check the server version")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrDecode, wrapped.Code)
	assert.Equal(t, "Failed to decode /api/status", wrapped.Message)
	assert.Equal(t, "Check the server version", wrapped.Suggestion)
	assert.Equal(t, cause, wrapped.Cause)
	assert.Contains(t, wrapped.Error(), "unexpected end of JSON input")
}

func TestErrorsIsAndAs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := WrapWithCode(cause, ErrToggle, "Toggle failed", "")

	assert.True(t, errors.Is(wrapped, cause))

	var dashErr *Error
	require.True(t, errors.As(wrapped, &dashErr))
	assert.Equal(t, ErrToggle, dashErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrAPI))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("dial tcp 127.0.0.1:52847: connect: connection refused"),
		ErrAPI,
		"Cannot reach the tracker",
		"Is the tracker service running?",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "✗"), "First line should start with failure symbol")
	assert.Contains(t, lines[0], "Cannot reach the tracker")
}

func TestShort(t *testing.T) {
	assert.Equal(t, "", Short(nil))
	assert.Equal(t, "plain", Short(errors.New("plain")))
	assert.Equal(t, "Bad payload", Short(New(ErrDecode, "Bad payload", "hint")))
	assert.Equal(t, "GET /api/hourly: timeout", Short(Wrap(errors.New("timeout"), "GET /api/hourly")))
}
