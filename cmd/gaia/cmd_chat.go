// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/gaia-go/pkg/gaia"
	"github.com/AleutianAI/gaia-go/pkg/sse"
)

func runAskCommand(cmd *cobra.Command, args []string) error {
	client := buildClient()
	prompt := strings.Join(args, " ")

	result, err := client.Complete(cmd.Context(), gaia.CompletionRequest{
		Model:       cliConfig.Model,
		Prompt:      prompt,
		Temperature: flagTemperature,
		MaxTokens:   flagMaxTokens,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.Completion)
	fmt.Println(styleMeta.Render("model: " + result.Model))
	return nil
}

func runChatCommand(cmd *cobra.Command, args []string) error {
	client := buildClient()
	history := gaia.NewConversationHistory()
	reader := NewStdinReader()

	fmt.Println(styleMeta.Render(`Streaming chat. Type "exit" to leave.`))
	return chatLoop(cmd.Context(), reader, func(ctx context.Context, line string) error {
		messages := history.Snapshot()
		messages = append(messages, gaia.Message{Role: gaia.RoleUser, Content: line})

		session, err := client.StreamChat(ctx, gaia.ChatRequest{
			Model:       cliConfig.Model,
			Messages:    messages,
			Temperature: flagTemperature,
			MaxTokens:   flagMaxTokens,
		})
		if err != nil {
			return err
		}

		text, err := renderStream(ctx, session)
		if err != nil {
			return err
		}
		if shouldCommitTurn(text, session.State()) {
			history.AppendTurn(line, text)
		}
		return nil
	})
}

// shouldCommitTurn reports whether a drained stream's reply belongs in
// the conversation history. An interrupted stream that produced no
// tokens is dropped; a partial reply is kept so the next turn still
// has its context.
func shouldCommitTurn(text string, state gaia.SessionState) bool {
	return state == gaia.StateCompleted || text != ""
}

// chatLoop runs the shared prompt-read-send cycle until the user exits
// or input is exhausted. Per-turn failures are reported and the loop
// continues, so one bad request does not end the session.
func chatLoop(ctx context.Context, reader InputReader, turn func(ctx context.Context, line string) error) error {
	for {
		fmt.Print(stylePrompt.Render("you> ") + " ")
		line, err := reader.ReadLine()
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if isExitCommand(line) {
			return nil
		}

		if err := turn(ctx, line); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Println(styleError.Render("error: " + err.Error()))
		}
	}
}

// renderStream prints tokens as they arrive and returns the full reply.
// Ctrl-C cancels the in-flight stream without leaving the chat loop;
// the partial reply is kept.
func renderStream(ctx context.Context, session *gaia.StreamingChatSession) (string, error) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-interrupt:
			session.Cancel()
		case <-ctx.Done():
			session.Cancel()
		case <-done:
		}
	}()

	text, err := session.Consume(func(event *sse.StreamEvent) {
		if event.Type == sse.EventToken {
			fmt.Print(event.Token)
		}
	})
	fmt.Println()

	if errors.Is(err, gaia.ErrSessionCanceled) {
		fmt.Println(styleMeta.Render("(interrupted)"))
		return session.AccumulatedText(), nil
	}
	return text, err
}
