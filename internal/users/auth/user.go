// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

/*
Package auth implements the user identity and session lifecycle.

It defines the core domain entities (User, Profile) and the logic for
registration, credential verification, and stateless session token issuance.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"strings"
	"time"
)

// # Domain Entities

// User represents a registered member of the Linkify platform.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile holds the customizable public-facing identity of a user.
//
// All fields are nullable: a freshly registered account has an empty profile.
// ImageStorageID is the opaque handle into the object store, kept so a
// replaced or deleted avatar can be removed from storage.
type Profile struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	ImageURL       *string `json:"imageUrl"`
	ImageStorageID *string `json:"imageStorageId"`
}

// HasImage reports whether the profile currently carries an avatar.
func (p Profile) HasImage() bool {
	return p.ImageStorageID != nil && *p.ImageStorageID != ""
}

// NormalizeEmail lowercases and trims an email address.
//
// Uniqueness checks and storage always operate on the normalized form so that
// "User@X.com" and "user@x.com" resolve to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldImageFile = "imageFile"
)
