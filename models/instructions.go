// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Instruction is one outbound display instruction handed back to the
// messaging transport. It carries only the data needed for display; all
// transport-specific formatting happens outside the core.
type Instruction interface {
	// Kind returns the wire discriminator of the instruction.
	Kind() string
}

// Button is a single selectable option inside a ShowMenu instruction.
// CallbackID round-trips back to the core as a ButtonPress action.
type Button struct {
	Label      string `json:"label"`
	CallbackID string `json:"callback_id"`
}

// ShowMenu asks the transport to render a list of selectable options,
// typically the add-card field menu.
type ShowMenu struct {
	Title   string   `json:"title"`
	Buttons []Button `json:"buttons"`
}

// ShowRecordList asks the transport to render card summaries. Buttons, when
// present, make the entries selectable: one button per summary carrying the
// follow-up action for that card.
type ShowRecordList struct {
	Title     string        `json:"title"`
	Summaries []CardSummary `json:"summaries"`
	Buttons   []Button      `json:"buttons,omitempty"`
}

// ShowRecordDetail asks the transport to render a single card in full.
type ShowRecordDetail struct {
	Record  Card     `json:"record"`
	Buttons []Button `json:"buttons,omitempty"`
}

// ShowError reports a recoverable failure to the user.
type ShowError struct {
	Message string `json:"message"`
}

// ShowSuccess reports a completed operation or a free-text prompt.
type ShowSuccess struct {
	Message string `json:"message"`
}

func (ShowMenu) Kind() string         { return "show_menu" }
func (ShowRecordList) Kind() string   { return "show_record_list" }
func (ShowRecordDetail) Kind() string { return "show_record_detail" }
func (ShowError) Kind() string        { return "show_error" }
func (ShowSuccess) Kind() string      { return "show_success" }
