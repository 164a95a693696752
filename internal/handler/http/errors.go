// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while parsing the "Authorization" header in the
// auth middleware. All of them result in HTTP 401.
var (
	// ErrEmptyAuthorizationHeader — the request carries no "Authorization"
	// header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader — the header cannot be split into a
	// scheme and a token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken — the scheme is present but the token value is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
