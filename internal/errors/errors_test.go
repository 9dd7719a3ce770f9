package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestPollwatchError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *PollwatchError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("no such file"), CategoryFileSystem, SeverityError, "watched directory unreadable"),
			expected: "filesystem (error): watched directory unreadable: no such file",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestPollwatchError_WithContext(t *testing.T) {
	err := New(CategoryFileSystem, SeverityError, "scan failed").
		WithContext("directory", "/watched/root").
		WithContext("cycle", 7)

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}

	if err.Context["directory"] != "/watched/root" {
		t.Errorf("Context[directory] = %v, want /watched/root", err.Context["directory"])
	}

	if err.Context["cycle"] != 7 {
		t.Errorf("Context[cycle] = %v, want 7", err.Context["cycle"])
	}
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	fsErr := New(CategoryFileSystem, SeverityError, "fs error")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"config error matches config category", configErr, CategoryConfig, true},
		{"config error doesn't match filesystem category", configErr, CategoryFileSystem, false},
		{"fs error matches filesystem category", fsErr, CategoryFileSystem, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsCategory(test.err, test.category)
			if result != test.expected {
				t.Errorf("IsCategory() = %v, want %v", result, test.expected)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := DirectoryUnreadable("/watched/sub", cause)

	if !stdErrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !IsRetryable(err) {
		t.Error("DirectoryUnreadable should be retryable")
	}
	if GetCategory(err) != CategoryFileSystem {
		t.Errorf("GetCategory() = %v, want %v", GetCategory(err), CategoryFileSystem)
	}
}
