package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/validators"
	"github.com/MKhiriev/card-keeper-bot/models"
)

// mockCreator is a test implementation of CardCreator with a pluggable
// CreateCard function.
type mockCreator struct {
	createFunc func(ctx context.Context, card models.Card) (models.Card, error)
	calls      int
}

func (m *mockCreator) CreateCard(ctx context.Context, card models.Card) (models.Card, error) {
	m.calls++
	if m.createFunc != nil {
		return m.createFunc(ctx, card)
	}
	card.ID = "stored-id"
	return card, nil
}

func newTestManager(creator *mockCreator) *Manager {
	return NewManager(creator, 15*time.Minute, logger.Nop())
}

func fillField(t *testing.T, m *Manager, ownerID int64, field models.Field, value string) {
	t.Helper()

	_, err := m.SelectField(context.Background(), ownerID, field)
	require.NoError(t, err)
	_, err = m.SubmitValue(context.Background(), ownerID, value)
	require.NoError(t, err)
}

func TestManager_Start(t *testing.T) {
	m := newTestManager(&mockCreator{})

	snap := m.Start(context.Background(), 42)

	assert.Equal(t, int64(42), snap.OwnerID)
	assert.Equal(t, models.Collecting, snap.Stage)
	assert.Empty(t, snap.Fields)
	assert.False(t, snap.LastActivity.IsZero())
}

func TestManager_Start_ReplacesLiveSession(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()

	m.Start(ctx, 42)
	fillField(t, m, 42, models.FieldBankName, "HDFC")

	snap := m.Start(ctx, 42)

	assert.Equal(t, models.Collecting, snap.Stage)
	assert.Empty(t, snap.Fields, "replaced session must not inherit old values")
}

func TestManager_SelectField(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()
	m.Start(ctx, 42)

	snap, err := m.SelectField(ctx, 42, models.FieldBankName)
	require.NoError(t, err)

	assert.Equal(t, models.AwaitingFieldValue, snap.Stage)
	assert.Equal(t, models.FieldBankName, snap.ActiveField)
}

func TestManager_SelectField_Unknown(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()
	m.Start(ctx, 42)

	_, err := m.SelectField(ctx, 42, models.Field("pin_code"))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestManager_SelectField_WhileAwaitingValue(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()
	m.Start(ctx, 42)

	_, err := m.SelectField(ctx, 42, models.FieldBankName)
	require.NoError(t, err)

	_, err = m.SelectField(ctx, 42, models.FieldExpiry)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestManager_SelectField_NoSession(t *testing.T) {
	m := newTestManager(&mockCreator{})

	_, err := m.SelectField(context.Background(), 42, models.FieldBankName)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_SubmitValue_NoFieldSelected(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()
	m.Start(ctx, 42)

	_, err := m.SubmitValue(ctx, 42, "HDFC")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestManager_SubmitValue_InvalidKeepsAwaiting(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()
	m.Start(ctx, 42)

	_, err := m.SelectField(ctx, 42, models.FieldExpiry)
	require.NoError(t, err)

	snap, err := m.SubmitValue(ctx, 42, "13/2027")
	require.ErrorIs(t, err, validators.ErrValidation)

	assert.Equal(t, models.AwaitingFieldValue, snap.Stage, "rejected value must keep the session awaiting a retry")
	assert.Equal(t, models.FieldExpiry, snap.ActiveField)
	assert.NotContains(t, snap.Fields, models.FieldExpiry)

	// the retry goes through without re-selecting the field
	snap, err = m.SubmitValue(ctx, 42, "09/2027")
	require.NoError(t, err)
	assert.Equal(t, models.Collecting, snap.Stage)
	assert.Equal(t, "09/2027", snap.Fields[models.FieldExpiry])
}

func TestManager_SubmitValue_TrimsWhitespace(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()
	m.Start(ctx, 42)

	_, err := m.SelectField(ctx, 42, models.FieldBankName)
	require.NoError(t, err)

	snap, err := m.SubmitValue(ctx, 42, "  HDFC  ")
	require.NoError(t, err)

	assert.Equal(t, "HDFC", snap.Fields[models.FieldBankName])
}

func TestManager_ReselectOverwritesValue(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()
	m.Start(ctx, 42)

	fillField(t, m, 42, models.FieldBankName, "HDFC")
	fillField(t, m, 42, models.FieldBankName, "SBI")

	snap, err := m.Snapshot(42)
	require.NoError(t, err)
	assert.Equal(t, "SBI", snap.Fields[models.FieldBankName])
}

func TestManager_Finish_Incomplete(t *testing.T) {
	creator := &mockCreator{}
	m := newTestManager(creator)
	ctx := context.Background()
	m.Start(ctx, 42)

	fillField(t, m, 42, models.FieldBankName, "HDFC")

	_, err := m.Finish(ctx, 42)
	require.ErrorIs(t, err, ErrFormIncomplete)

	incomplete, ok := AsIncomplete(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []models.Field{models.FieldCardNumber, models.FieldExpiry}, incomplete.Missing)

	assert.Zero(t, creator.calls, "incomplete form must not reach the store")

	// the session survives an incomplete finish
	_, err = m.Snapshot(42)
	assert.NoError(t, err)
}

func TestManager_Finish_TailCard(t *testing.T) {
	var got models.Card
	creator := &mockCreator{
		createFunc: func(_ context.Context, card models.Card) (models.Card, error) {
			got = card
			card.ID = "stored-id"
			return card, nil
		},
	}
	m := newTestManager(creator)
	ctx := context.Background()
	m.Start(ctx, 42)

	fillField(t, m, 42, models.FieldBankName, "HDFC")
	fillField(t, m, 42, models.FieldCardNumber, "1234")
	fillField(t, m, 42, models.FieldExpiry, "09/2027")

	created, err := m.Finish(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, "stored-id", created.ID)
	assert.Equal(t, int64(42), got.OwnerID)
	assert.Equal(t, "HDFC", got.BankName)
	assert.Equal(t, "1234", got.CardNumber)
	assert.Equal(t, "09/2027", got.Expiry)
	assert.Nil(t, got.CVV, "a tail card carries no CVV")

	_, err = m.Snapshot(42)
	assert.ErrorIs(t, err, ErrSessionNotFound, "completed session must be discarded")
}

func TestManager_Finish_FullCardWithCVV(t *testing.T) {
	var got models.Card
	creator := &mockCreator{
		createFunc: func(_ context.Context, card models.Card) (models.Card, error) {
			got = card
			return card, nil
		},
	}
	m := newTestManager(creator)
	ctx := context.Background()
	m.Start(ctx, 42)

	fillField(t, m, 42, models.FieldBankName, "SBI")
	fillField(t, m, 42, models.FieldCardNumber, "4242 4242 4242 4242")
	fillField(t, m, 42, models.FieldExpiry, "01/2028")
	fillField(t, m, 42, models.FieldCVV, "123")

	_, err := m.Finish(ctx, 42)
	require.NoError(t, err)

	require.NotNil(t, got.CVV)
	assert.Equal(t, "123", *got.CVV)
}

func TestManager_Finish_StoreFailureKeepsSession(t *testing.T) {
	storeErr := errors.New("db is down")
	failing := true
	creator := &mockCreator{
		createFunc: func(_ context.Context, card models.Card) (models.Card, error) {
			if failing {
				return models.Card{}, storeErr
			}
			card.ID = "stored-id"
			return card, nil
		},
	}
	m := newTestManager(creator)
	ctx := context.Background()
	m.Start(ctx, 42)

	fillField(t, m, 42, models.FieldBankName, "HDFC")
	fillField(t, m, 42, models.FieldCardNumber, "1234")
	fillField(t, m, 42, models.FieldExpiry, "09/2027")

	_, err := m.Finish(ctx, 42)
	require.ErrorIs(t, err, storeErr)

	snap, err := m.Snapshot(42)
	require.NoError(t, err, "session must survive a store failure")
	assert.Equal(t, models.Collecting, snap.Stage)

	// once the store recovers the same finish succeeds
	failing = false
	created, err := m.Finish(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "stored-id", created.ID)
}

func TestManager_Finish_WhileAwaitingValue(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()
	m.Start(ctx, 42)

	_, err := m.SelectField(ctx, 42, models.FieldBankName)
	require.NoError(t, err)

	_, err = m.Finish(ctx, 42)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestManager_Cancel(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()
	m.Start(ctx, 42)

	err := m.Cancel(ctx, 42)
	require.NoError(t, err)

	_, err = m.Snapshot(42)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = m.Cancel(ctx, 42)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_OwnerIsolation(t *testing.T) {
	m := newTestManager(&mockCreator{})
	ctx := context.Background()

	m.Start(ctx, 1)
	m.Start(ctx, 2)

	fillField(t, m, 1, models.FieldBankName, "HDFC")

	snap, err := m.Snapshot(2)
	require.NoError(t, err)
	assert.Empty(t, snap.Fields, "one owner's values must not leak into another's session")

	require.NoError(t, m.Cancel(ctx, 1))
	_, err = m.Snapshot(2)
	assert.NoError(t, err, "cancelling one owner's session must not touch another's")
}

func TestManager_ExpireIdle(t *testing.T) {
	m := NewManager(&mockCreator{}, 15*time.Minute, logger.Nop())
	ctx := context.Background()

	m.Start(ctx, 1)
	m.Start(ctx, 2)
	fillField(t, m, 2, models.FieldBankName, "HDFC")

	// both sessions are past the idle timeout at this sweep time
	expired := m.ExpireIdle(time.Now().Add(16 * time.Minute))
	assert.Equal(t, 2, expired)

	m.Start(ctx, 3)
	expired = m.ExpireIdle(time.Now())
	assert.Zero(t, expired, "a fresh session must not be expired")

	_, err := m.Snapshot(3)
	assert.NoError(t, err)
}
