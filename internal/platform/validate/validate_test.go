// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkifyapp/linkify/internal/platform/apperr"
	"github.com/linkifyapp/linkify/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "platform", "github", false},
		{"empty_string", "platform", "", true},
		{"whitespace_only", "platform", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_AbsoluteURL checks the destination URL rule used by the link
collection: absolute, host-bearing, http or https only.
*/
func TestValidator_AbsoluteURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		isValid bool
	}{
		{"https", "https://example.com/page", true},
		{"http", "http://example.com", true},
		{"with_query", "https://example.com/p?q=1", true},
		{"relative_path", "/just/a/path", false},
		{"missing_scheme", "example.com/page", false},
		{"ftp_scheme", "ftp://example.com/file", false},
		{"scheme_only", "https://", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.AbsoluteURL("url", tt.url)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("platform", "github").
		MinLen("password", "longenough", 8).
		MaxLen("platform", "github", 50).
		Email("email", "dev@linkify.app").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	// Three failing rules, one passing
	err := v.
		Required("platform", "").
		MinLen("password", "short", 8).
		AbsoluteURL("url", "not-a-url").
		Email("email", "dev@linkify.app").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_UUID checks identifier validation.
*/
func TestValidator_UUID(t *testing.T) {
	v := &validate.Validator{}
	v.UUID("linkId", "0192aa00-0000-7000-8000-000000000001")
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.UUID("linkId", "not-a-uuid")
	assert.True(t, v.HasErrors())
}
