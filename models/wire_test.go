// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionEnvelope_OwnerIsStamped(t *testing.T) {
	envelope, err := NewActionEnvelope(Command{OwnerID: 7, Name: "view_card", Args: "1234"})
	require.NoError(t, err)

	// the wire form never carries the owner
	payload, err := json.Marshal(envelope)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "owner")

	action, err := envelope.Action(42)
	require.NoError(t, err)

	cmd, ok := action.(Command)
	require.True(t, ok)
	assert.Equal(t, int64(42), cmd.OwnerID)
	assert.Equal(t, "view_card", cmd.Name)
	assert.Equal(t, "1234", cmd.Args)
}

func TestActionEnvelope_ButtonPress(t *testing.T) {
	envelope, err := NewActionEnvelope(ButtonPress{CallbackID: "form_done"})
	require.NoError(t, err)

	action, err := envelope.Action(1)
	require.NoError(t, err)

	press, ok := action.(ButtonPress)
	require.True(t, ok)
	assert.Equal(t, "form_done", press.CallbackID)
	assert.Equal(t, int64(1), press.OwnerID)
}

func TestActionEnvelope_UnknownKind(t *testing.T) {
	envelope := ActionEnvelope{Kind: "voice_note"}

	_, err := envelope.Action(1)

	assert.ErrorIs(t, err, ErrUnknownActionKind)
}

func TestInstructionEnvelope_RoundTrip(t *testing.T) {
	original := ShowMenu{
		Title:   "Pick a field",
		Buttons: []Button{{Label: "Done", CallbackID: "form_done"}},
	}

	envelope, err := NewInstructionEnvelope(original)
	require.NoError(t, err)
	assert.Equal(t, "show_menu", envelope.Kind)

	// simulate the transport boundary
	payload, err := json.Marshal(envelope)
	require.NoError(t, err)

	var received InstructionEnvelope
	require.NoError(t, json.Unmarshal(payload, &received))

	decoded, err := received.Decode()
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestInstructionEnvelope_DecodeReturnsValueTypes(t *testing.T) {
	envelope, err := NewInstructionEnvelope(ShowError{Message: "nope"})
	require.NoError(t, err)

	decoded, err := envelope.Decode()
	require.NoError(t, err)

	// callers type-switch on value types, not pointers
	_, isValue := decoded.(ShowError)
	assert.True(t, isValue)
}

func TestInstructionEnvelope_UnknownKind(t *testing.T) {
	envelope := InstructionEnvelope{Kind: "show_hologram", Instruction: []byte(`{}`)}

	_, err := envelope.Decode()

	assert.ErrorIs(t, err, ErrUnknownInstructionKind)
}
