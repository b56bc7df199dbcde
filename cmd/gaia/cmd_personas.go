// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/gaia-go/pkg/gaia"
)

func runPersonaList(cmd *cobra.Command, args []string) error {
	client := buildClient()

	personas, err := client.ListPersonas(cmd.Context())
	if err != nil {
		return err
	}
	if len(personas) == 0 {
		fmt.Println("No personas defined.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMODEL")
	for _, persona := range personas {
		fmt.Fprintf(w, "%s\t%s\t%s\n", persona.Id, persona.Name, persona.Model)
	}
	return w.Flush()
}

func runPersonaShow(cmd *cobra.Command, args []string) error {
	client := buildClient()

	persona, err := client.GetPersona(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(styleSpeaker.Render(persona.Name) + " (" + persona.Id + ")")
	fmt.Println(styleMeta.Render("model: " + persona.Model))
	fmt.Println()
	fmt.Println(persona.SystemPrompt)
	fmt.Println()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	attrs := []struct {
		name  string
		value int
	}{
		{"initiative", persona.Initiative},
		{"talkativeness", persona.Talkativeness},
		{"confidence", persona.Confidence},
		{"curiosity", persona.Curiosity},
		{"empathy", persona.Empathy},
		{"creativity", persona.Creativity},
		{"humor", persona.Humor},
		{"adaptability", persona.Adaptability},
		{"patience", persona.Patience},
		{"skepticism", persona.Skepticism},
		{"optimism", persona.Optimism},
	}
	for _, attr := range attrs {
		if attr.value != 0 {
			fmt.Fprintf(w, "%s\t%d\n", attr.name, attr.value)
		}
	}
	return w.Flush()
}

func runPersonaCreate(cmd *cobra.Command, args []string) error {
	if personaName == "" || personaSystemPrompt == "" || personaModel == "" {
		return fmt.Errorf("--name, --system-prompt, and --model are required")
	}

	spec := gaia.PersonaSpec{
		Name:         personaName,
		SystemPrompt: personaSystemPrompt,
		Model:        personaModel,
	}
	for name, value := range personaAttrs {
		if err := setPersonaAttr(&spec.PersonaAttributes, name, value); err != nil {
			return err
		}
	}

	client := buildClient()
	persona, err := client.CreatePersona(cmd.Context(), spec)
	if err != nil {
		return err
	}

	fmt.Printf("Created persona %s (%s)\n", persona.Name, persona.Id)
	return nil
}

// setPersonaAttr maps an --attr name to its field.
func setPersonaAttr(attrs *gaia.PersonaAttributes, name string, value int) error {
	if value < 1 || value > 10 {
		return fmt.Errorf("attribute %s: value %d out of range 1-10", name, value)
	}
	switch name {
	case "initiative":
		attrs.Initiative = value
	case "talkativeness":
		attrs.Talkativeness = value
	case "confidence":
		attrs.Confidence = value
	case "curiosity":
		attrs.Curiosity = value
	case "empathy":
		attrs.Empathy = value
	case "creativity":
		attrs.Creativity = value
	case "humor":
		attrs.Humor = value
	case "adaptability":
		attrs.Adaptability = value
	case "patience":
		attrs.Patience = value
	case "skepticism":
		attrs.Skepticism = value
	case "optimism":
		attrs.Optimism = value
	default:
		return fmt.Errorf("unknown attribute %q", name)
	}
	return nil
}

func runPersonaChat(cmd *cobra.Command, args []string) error {
	client := buildClient()
	personaId := args[0]

	persona, err := client.GetPersona(cmd.Context(), personaId)
	if err != nil {
		return err
	}

	history := gaia.NewConversationHistory()
	reader := NewStdinReader()

	fmt.Println(styleMeta.Render(fmt.Sprintf(`Talking to %s. Type "exit" to leave.`, persona.Name)))
	return chatLoop(cmd.Context(), reader, func(ctx context.Context, line string) error {
		session, err := client.StreamPersonaTurn(ctx, personaId, line, history)
		if err != nil {
			return err
		}

		fmt.Print(styleSpeaker.Render(persona.Name+">") + " ")
		if _, err := renderStream(ctx, session); err != nil {
			return err
		}
		return nil
	})
}
