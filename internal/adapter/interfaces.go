// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the card-keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples chat-surface
// clients from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) that posts user actions to the
// ingress and decodes the returned display instructions.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/card-keeper-bot/models"
)

// ServerAdapter defines transport-agnostic communication with the card-keeper
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// SendAction delivers one user action to the server and returns the
	// display instruction the server produced for it. The owner id is never
	// part of the payload; the server derives it from the bearer token.
	SendAction(ctx context.Context, action models.Action) (models.Instruction, error)

	// ServerVersion fetches the build version reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
