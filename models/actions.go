// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Action is one inbound user action delivered by the messaging transport.
// The transport pre-parses its own update format into exactly one of the
// three concrete kinds below; the core never sees raw transport payloads.
type Action interface {
	// Owner returns the identifier of the acting user.
	Owner() int64

	isAction()
}

// Command is a slash-command style action, e.g. name "view_card" with
// args "HDFC".
type Command struct {
	OwnerID int64  `json:"owner_id"`
	Name    string `json:"name"`
	Args    string `json:"args"`
}

// ButtonPress is a press of an inline button previously rendered by a
// ShowMenu instruction, identified by its callback id.
type ButtonPress struct {
	OwnerID    int64  `json:"owner_id"`
	CallbackID string `json:"callback_id"`
}

// FreeText is a plain text reply from the user.
type FreeText struct {
	OwnerID int64  `json:"owner_id"`
	Content string `json:"content"`
}

func (a Command) Owner() int64     { return a.OwnerID }
func (a ButtonPress) Owner() int64 { return a.OwnerID }
func (a FreeText) Owner() int64    { return a.OwnerID }

func (Command) isAction()     {}
func (ButtonPress) isAction() {}
func (FreeText) isAction()    {}
