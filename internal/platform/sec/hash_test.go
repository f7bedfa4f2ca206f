// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkifyapp/linkify/internal/platform/sec"
)

/*
TestHashPassword ensures hashing is one-way, salted, and verifiable.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	// Salting makes two hashes of the same input differ.
	second, err := sec.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, hash, second)
}

/*
TestCheckPasswordHash covers the verification outcomes.
*/
func TestCheckPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("s3cret-pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"correct_password", "s3cret-pass", hash, true},
		{"wrong_password", "wrong-pass", hash, false},
		{"empty_password", "", hash, false},
		{"not_a_hash", "s3cret-pass", "plain-text", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.CheckPasswordHash(tt.password, tt.hash))
		})
	}
}
