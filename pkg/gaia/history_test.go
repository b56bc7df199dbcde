// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package gaia

import (
	"sync"
	"testing"
)

func TestConversationHistory_AppendTurn(t *testing.T) {
	history := NewConversationHistory()

	history.AppendTurn("Hello", "Hi there")
	history.AppendTurn("How are you?", "Well, thanks")

	messages := history.Snapshot()
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}

	wantRoles := []Role{RoleUser, RoleAssistant, RoleUser, RoleAssistant}
	wantContent := []string{"Hello", "Hi there", "How are you?", "Well, thanks"}
	for i, msg := range messages {
		if msg.Role != wantRoles[i] {
			t.Errorf("message %d: expected role %v, got %v", i, wantRoles[i], msg.Role)
		}
		if msg.Content != wantContent[i] {
			t.Errorf("message %d: expected content %q, got %q", i, wantContent[i], msg.Content)
		}
	}
}

func TestConversationHistory_SnapshotIsACopy(t *testing.T) {
	history := NewConversationHistory()
	history.AppendTurn("question", "answer")

	snapshot := history.Snapshot()
	snapshot[0].Content = "mutated"

	if history.Snapshot()[0].Content != "question" {
		t.Error("mutating a snapshot must not affect the history")
	}
}

func TestConversationHistory_SeedWithSystemMessage(t *testing.T) {
	history := NewConversationHistory()
	history.Append(Message{Role: RoleSystem, Content: "You are terse."})
	history.AppendTurn("hi", "yo")

	messages := history.Snapshot()
	if len(messages) != 3 || messages[0].Role != RoleSystem {
		t.Fatalf("expected system message first, got %+v", messages)
	}
}

func TestConversationHistory_Clear(t *testing.T) {
	history := NewConversationHistory()
	history.AppendTurn("a", "b")

	history.Clear()

	if history.Len() != 0 {
		t.Errorf("expected empty history, got %d messages", history.Len())
	}
}

func TestConversationHistory_ConcurrentAppends(t *testing.T) {
	history := NewConversationHistory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			history.AppendTurn("q", "a")
			_ = history.Snapshot()
			_ = history.Len()
		}()
	}
	wg.Wait()

	if history.Len() != 100 {
		t.Errorf("expected 100 messages, got %d", history.Len())
	}

	// Completed-exchange invariant: user and assistant alternate.
	for i, msg := range history.Snapshot() {
		want := RoleUser
		if i%2 == 1 {
			want = RoleAssistant
		}
		if msg.Role != want {
			t.Fatalf("message %d: expected role %v, got %v", i, want, msg.Role)
		}
	}
}
