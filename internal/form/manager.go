// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package form implements the in-memory add-card form engine. Each owner
// has at most one live session that cycles between collecting (field menu
// shown) and awaiting a free-text value for one selected field, until the
// owner finishes, cancels, or goes idle long enough for the janitor to
// expire the session.
package form

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/validators"
	"github.com/MKhiriev/card-keeper-bot/models"
)

// CardCreator persists a finished form as a card record. Implemented by the
// card service; keeping it an interface lets the engine be tested without a
// database.
type CardCreator interface {
	CreateCard(ctx context.Context, card models.Card) (models.Card, error)
}

// session pairs the form state with its own lock. The per-session lock
// serialises all actions of one owner, including the store call made by
// Finish, so concurrent updates from the same user cannot interleave.
type session struct {
	mu    sync.Mutex
	state *models.FormSession
}

// Manager owns every live form session. All methods are safe for concurrent
// use by any number of owners; actions of different owners never block each
// other beyond the brief map lookup.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session

	creator     CardCreator
	idleTimeout time.Duration
	logger      *logger.Logger
}

// NewManager constructs a form Manager. Sessions idle longer than
// idleTimeout are eligible for expiry by [Manager.ExpireIdle].
func NewManager(creator CardCreator, idleTimeout time.Duration, log *logger.Logger) *Manager {
	return &Manager{
		sessions:    make(map[int64]*session),
		creator:     creator,
		idleTimeout: idleTimeout,
		logger:      log,
	}
}

// Start opens a fresh session for the owner and returns its snapshot. An
// existing live session is abandoned and replaced: the previous form's
// collected values are discarded, nothing is persisted.
func (m *Manager) Start(_ context.Context, ownerID int64) models.FormSession {
	if old, ok := m.lookup(ownerID); ok {
		old.mu.Lock()
		if !old.state.Terminal() {
			old.state.Stage = models.Abandoned
		}
		m.remove(ownerID, old)
		old.mu.Unlock()

		m.logger.Debug().
			Str("func", "Manager.Start").
			Int64("owner_id", ownerID).
			Msg("replaced a live form session")
	}

	s := &session{state: models.NewFormSession(ownerID)}

	m.mu.Lock()
	m.sessions[ownerID] = s
	m.mu.Unlock()

	return snapshotOf(s.state)
}

// Snapshot returns a copy of the owner's live session for rendering.
func (m *Manager) Snapshot(ownerID int64) (models.FormSession, error) {
	s, ok := m.lookup(ownerID)
	if !ok {
		return models.FormSession{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return models.FormSession{}, ErrSessionNotFound
	}

	return snapshotOf(s.state), nil
}

// SelectField moves the session from the field menu to awaiting a value for
// the named field. Re-selecting an already filled field is allowed; the new
// value will overwrite the old one.
func (m *Manager) SelectField(_ context.Context, ownerID int64, field models.Field) (models.FormSession, error) {
	return m.apply(ownerID, "select field", func(state *models.FormSession) error {
		if !knownField(field) {
			return ErrUnknownField
		}
		if state.Stage != models.Collecting {
			return newTransitionError("select field", state.Stage)
		}

		state.ActiveField = field
		state.Stage = models.AwaitingFieldValue
		return nil
	})
}

// SubmitValue applies a free-text value to the session's active field. An
// invalid value returns the validation error and leaves the session awaiting
// a replacement value for the same field; a valid one stores it and returns
// the session to the field menu.
func (m *Manager) SubmitValue(_ context.Context, ownerID int64, value string) (models.FormSession, error) {
	return m.apply(ownerID, "submit value", func(state *models.FormSession) error {
		if state.Stage != models.AwaitingFieldValue {
			return newTransitionError("submit value", state.Stage)
		}

		trimmed := strings.TrimSpace(value)
		if err := validators.CheckField(state.ActiveField, trimmed); err != nil {
			// the session stays on the same field so the user can retry
			return err
		}

		state.Fields[state.ActiveField] = trimmed
		state.ActiveField = ""
		state.Stage = models.Collecting
		return nil
	})
}

// Finish persists the collected buffer as a card record and completes the
// session. While required fields are missing it returns an
// [IncompleteFormError] and the session stays live. A store failure also
// keeps the session live, so the same Finish can be retried once the store
// recovers; the session is discarded only after a successful create.
func (m *Manager) Finish(ctx context.Context, ownerID int64) (models.Card, error) {
	s, ok := m.lookup(ownerID)
	if !ok {
		return models.Card{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	if state.Terminal() {
		return models.Card{}, ErrSessionNotFound
	}
	if state.Stage != models.Collecting {
		return models.Card{}, newTransitionError("finish", state.Stage)
	}
	state.LastActivity = time.Now()

	if missing := validators.Missing(state.Fields); len(missing) > 0 {
		return models.Card{}, &IncompleteFormError{Missing: missing}
	}

	card := cardFromFields(ownerID, state.Fields)

	created, err := m.creator.CreateCard(ctx, card)
	if err != nil {
		m.logger.Warn().Err(err).
			Str("func", "Manager.Finish").
			Int64("owner_id", ownerID).
			Msg("card was not persisted, session kept for retry")
		return models.Card{}, err
	}

	state.Stage = models.Completed
	m.remove(ownerID, s)

	m.logger.Info().
		Str("func", "Manager.Finish").
		Int64("owner_id", ownerID).
		Str("card_id", created.ID).
		Msg("form completed")

	return created, nil
}

// Cancel abandons the owner's live session. Collected values are discarded.
func (m *Manager) Cancel(_ context.Context, ownerID int64) error {
	s, ok := m.lookup(ownerID)
	if !ok {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return ErrSessionNotFound
	}

	s.state.Stage = models.Abandoned
	m.remove(ownerID, s)

	m.logger.Debug().
		Str("func", "Manager.Cancel").
		Int64("owner_id", ownerID).
		Msg("form session cancelled")

	return nil
}

// ExpireIdle abandons every session whose last activity is older than the
// idle timeout and returns how many were expired. Called periodically by the
// janitor worker.
func (m *Manager) ExpireIdle(now time.Time) int {
	// lock order everywhere is session first, map second; snapshot the map
	// instead of sweeping under it
	m.mu.Lock()
	live := make(map[int64]*session, len(m.sessions))
	for ownerID, s := range m.sessions {
		live[ownerID] = s
	}
	m.mu.Unlock()

	expired := 0
	for ownerID, s := range live {
		s.mu.Lock()
		if !s.state.Terminal() && now.Sub(s.state.LastActivity) >= m.idleTimeout {
			s.state.Stage = models.Abandoned
			m.remove(ownerID, s)
			expired++

			m.logger.Debug().
				Str("func", "Manager.ExpireIdle").
				Int64("owner_id", ownerID).
				Msg("expired idle form session")
		}
		s.mu.Unlock()
	}

	return expired
}

// apply runs fn on the owner's live session under its lock, bumping the
// activity timestamp whenever the session was found, then returns a
// snapshot. Validation failures inside fn count as activity: the user is
// mid-conversation even when a value is rejected.
func (m *Manager) apply(ownerID int64, action string, fn func(state *models.FormSession) error) (models.FormSession, error) {
	s, ok := m.lookup(ownerID)
	if !ok {
		return models.FormSession{}, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return models.FormSession{}, ErrSessionNotFound
	}
	s.state.LastActivity = time.Now()

	if err := fn(s.state); err != nil {
		return snapshotOf(s.state), err
	}

	m.logger.Debug().
		Str("func", "Manager.apply").
		Int64("owner_id", ownerID).
		Str("action", action).
		Str("stage", s.state.Stage.String()).
		Msg("form action applied")

	return snapshotOf(s.state), nil
}

func (m *Manager) lookup(ownerID int64) (*session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[ownerID]
	return s, ok
}

// remove deletes the owner's map entry, but only while it still points at
// the given session; a session replaced by Start must not evict its
// successor. Callers hold s.mu.
func (m *Manager) remove(ownerID int64, s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[ownerID] == s {
		delete(m.sessions, ownerID)
	}
}

func snapshotOf(state *models.FormSession) models.FormSession {
	copied := *state
	copied.Fields = make(map[models.Field]string, len(state.Fields))
	for k, v := range state.Fields {
		copied.Fields[k] = v
	}
	return copied
}

func knownField(field models.Field) bool {
	for _, f := range models.FormFields {
		if f == field {
			return true
		}
	}
	return false
}

func cardFromFields(ownerID int64, fields map[models.Field]string) models.Card {
	card := models.Card{
		OwnerID:    ownerID,
		BankName:   fields[models.FieldBankName],
		CardNumber: fields[models.FieldCardNumber],
		Expiry:     fields[models.FieldExpiry],
	}
	if cvv, ok := fields[models.FieldCVV]; ok && cvv != "" {
		card.CVV = &cvv
	}
	return card
}
