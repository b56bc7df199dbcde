// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaia

import "sync"

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser marks a message written by the human participant.
	RoleUser Role = "user"

	// RoleAssistant marks a message produced by the model or persona.
	RoleAssistant Role = "assistant"

	// RoleSystem marks an instruction message that steers the model.
	RoleSystem Role = "system"
)

// Message is a single conversation entry in the API's wire shape.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ConversationHistory is an ordered record of a conversation's messages.
//
// The invariant callers rely on is that history only ever contains
// completed exchanges: a user message is appended together with the
// assistant reply it produced, never alone. Failed turns leave the
// history untouched, so a retry resends the same context.
//
// All methods are safe for concurrent use.
type ConversationHistory struct {
	mu       sync.Mutex
	messages []Message
}

// NewConversationHistory creates an empty history.
func NewConversationHistory() *ConversationHistory {
	return &ConversationHistory{}
}

// Append adds a single message to the history.
//
// Most callers should prefer AppendTurn, which keeps the
// completed-exchanges invariant. Append exists for seeding a history
// with system messages or restoring a saved transcript.
func (h *ConversationHistory) Append(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg)
}

// AppendTurn records one completed exchange atomically: the user message
// followed by the assistant reply. No reader can observe the user
// message without its reply.
func (h *ConversationHistory) AppendTurn(userContent, assistantContent string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages,
		Message{Role: RoleUser, Content: userContent},
		Message{Role: RoleAssistant, Content: assistantContent},
	)
}

// Snapshot returns a copy of the messages in order. Mutating the
// returned slice does not affect the history.
func (h *ConversationHistory) Snapshot() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// AsRequestContext returns the messages in the form requests carry
// them. Currently identical to Snapshot; the name states the intent at
// call sites that build wire payloads.
func (h *ConversationHistory) AsRequestContext() []Message {
	return h.Snapshot()
}

// Len returns the number of messages recorded.
func (h *ConversationHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

// Clear removes all messages.
func (h *ConversationHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
