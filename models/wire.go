package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Action kind discriminators used on the wire.
const (
	ActionKindCommand     = "command"
	ActionKindButtonPress = "button_press"
	ActionKindFreeText    = "free_text"
)

var (
	ErrUnknownActionKind      = errors.New("unknown action kind")
	ErrUnknownInstructionKind = errors.New("unknown instruction kind")
)

// ActionEnvelope is the wire form of an [Action]. The owner id deliberately
// has no place here: the serving side stamps it from the authenticated
// request context, so a payload can never act on behalf of another user.
type ActionEnvelope struct {
	Kind string `json:"kind"`

	// Command fields.
	Name string `json:"name,omitempty"`
	Args string `json:"args,omitempty"`

	// ButtonPress field.
	CallbackID string `json:"callback_id,omitempty"`

	// FreeText field.
	Content string `json:"content,omitempty"`
}

// NewActionEnvelope converts an Action to its wire form.
func NewActionEnvelope(action Action) (ActionEnvelope, error) {
	switch a := action.(type) {
	case Command:
		return ActionEnvelope{Kind: ActionKindCommand, Name: a.Name, Args: a.Args}, nil
	case ButtonPress:
		return ActionEnvelope{Kind: ActionKindButtonPress, CallbackID: a.CallbackID}, nil
	case FreeText:
		return ActionEnvelope{Kind: ActionKindFreeText, Content: a.Content}, nil
	default:
		return ActionEnvelope{}, ErrUnknownActionKind
	}
}

// Action reconstructs the concrete action, stamped with the given owner.
func (e ActionEnvelope) Action(ownerID int64) (Action, error) {
	switch e.Kind {
	case ActionKindCommand:
		return Command{OwnerID: ownerID, Name: e.Name, Args: e.Args}, nil
	case ActionKindButtonPress:
		return ButtonPress{OwnerID: ownerID, CallbackID: e.CallbackID}, nil
	case ActionKindFreeText:
		return FreeText{OwnerID: ownerID, Content: e.Content}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionKind, e.Kind)
	}
}

// InstructionEnvelope is the wire form of an [Instruction]: the kind
// discriminator plus the instruction body as raw JSON.
type InstructionEnvelope struct {
	Kind        string          `json:"kind"`
	Instruction json.RawMessage `json:"instruction"`
}

// NewInstructionEnvelope wraps an Instruction for transport.
func NewInstructionEnvelope(instruction Instruction) (InstructionEnvelope, error) {
	body, err := json.Marshal(instruction)
	if err != nil {
		return InstructionEnvelope{}, fmt.Errorf("error marshaling instruction: %w", err)
	}

	return InstructionEnvelope{Kind: instruction.Kind(), Instruction: body}, nil
}

// Decode reconstructs the concrete instruction from the envelope.
func (e InstructionEnvelope) Decode() (Instruction, error) {
	var instruction Instruction

	switch e.Kind {
	case ShowMenu{}.Kind():
		instruction = &ShowMenu{}
	case ShowRecordList{}.Kind():
		instruction = &ShowRecordList{}
	case ShowRecordDetail{}.Kind():
		instruction = &ShowRecordDetail{}
	case ShowError{}.Kind():
		instruction = &ShowError{}
	case ShowSuccess{}.Kind():
		instruction = &ShowSuccess{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstructionKind, e.Kind)
	}

	if err := json.Unmarshal(e.Instruction, instruction); err != nil {
		return nil, fmt.Errorf("error unmarshaling %s instruction: %w", e.Kind, err)
	}

	switch i := instruction.(type) {
	case *ShowMenu:
		return *i, nil
	case *ShowRecordList:
		return *i, nil
	case *ShowRecordDetail:
		return *i, nil
	case *ShowError:
		return *i, nil
	case *ShowSuccess:
		return *i, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstructionKind, e.Kind)
	}
}
