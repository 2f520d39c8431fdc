package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "file error type", errType: ErrTypeFile, expected: "FILE"},
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "degenerate input error type", errType: ErrTypeDegenerateInput, expected: "DEGENERATE_INPUT"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeDegenerateInput,
				Message: "roster has no exam columns",
			},
			wantMessage: "[DEGENERATE_INPUT] roster has no exam columns",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeFile,
				Message: "cannot open roster",
				Cause:   fmt.Errorf("permission denied"),
			},
			wantMessage: "[FILE] cannot open roster: permission denied",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type: ErrTypeValidation,
			},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")

	err := NewParsingError("bad row", cause)
	assert.Same(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))

	assert.Nil(t, NewDegenerateInputError("nothing").Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeParsing, Message: "bad row"}

	got := err.WithContext("line", 7).WithContext("path", "main.csv")

	require.Same(t, err, got)
	assert.Equal(t, 7, got.Context["line"])
	assert.Equal(t, "main.csv", got.Context["path"])
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantMsg  string
	}{
		{name: "file", err: NewFileError("open failed", cause), wantType: ErrTypeFile, wantMsg: "open failed"},
		{name: "parsing", err: NewParsingError("bad quote", cause), wantType: ErrTypeParsing, wantMsg: "bad quote"},
		{name: "degenerate", err: NewDegenerateInputError("no exams"), wantType: ErrTypeDegenerateInput, wantMsg: "no exams"},
		{name: "storage", err: NewStorageError("write failed", cause), wantType: ErrTypeStorage, wantMsg: "write failed"},
		{name: "validation", err: NewValidationError("not a file", nil), wantType: ErrTypeValidation, wantMsg: "not a file"},
		{name: "config", err: NewConfigError("bad level", cause), wantType: ErrTypeConfig, wantMsg: "bad level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
			assert.NotNil(t, tt.err.Context)
		})
	}
}

func TestIsType(t *testing.T) {
	wrapped := fmt.Errorf("load roster: %w", NewFileError("missing", nil))

	assert.True(t, IsType(wrapped, ErrTypeFile))
	assert.False(t, IsType(wrapped, ErrTypeParsing))
	assert.False(t, IsType(errors.New("plain"), ErrTypeFile))
	assert.False(t, IsType(nil, ErrTypeFile))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeDegenerateInput, TypeOf(fmt.Errorf("stats: %w", NewDegenerateInputError("x"))))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
}
