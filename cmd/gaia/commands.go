// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/gaia-go/pkg/gaia"
	"github.com/AleutianAI/gaia-go/pkg/logging"
)

// --- Global Command Variables ---
var (
	cliConfig  CLIConfig
	configPath string

	// Flag overrides; empty/zero means "use config".
	flagAPIBase string
	flagAPIKey  string
	flagModel   string
	flagTimeout int

	flagTemperature float64
	flagMaxTokens   int
	flagLogLevel    string

	// Persona create flags.
	personaName         string
	personaSystemPrompt string
	personaModel        string
	personaAttrs        map[string]int

	rootCmd = &cobra.Command{
		Use:   "gaia",
		Short: "A cli for talking to a Gaia conversational AI server",
		Long: `Gaia is a terminal client for the Gaia API: raw LLM access,
token streaming, and persona-based roleplay conversations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadCLIConfig(configPath)
			if err != nil {
				return err
			}
			cliConfig = loaded
			if flagAPIBase != "" {
				cliConfig.APIBase = flagAPIBase
			}
			if flagAPIKey != "" {
				cliConfig.APIKey = flagAPIKey
			}
			if flagModel != "" {
				cliConfig.Model = flagModel
			}
			if flagTimeout != 0 {
				cliConfig.TimeoutSeconds = flagTimeout
			}
			if flagLogLevel != "" {
				cliConfig.LogLevel = flagLogLevel
			}
			initStyles()
			return nil
		},
	}

	// --- Models ---
	modelsCmd = &cobra.Command{
		Use:   "models",
		Short: "List the models the server can route to",
		RunE:  runListModels, // Defined in cmd_models.go
	}

	// --- LLM ---
	askCmd = &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send a one-shot prompt and print the completion",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAskCommand, // Defined in cmd_chat.go
	}
	chatCmd = &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive streaming chat session",
		RunE:  runChatCommand, // Defined in cmd_chat.go
	}

	// --- Personas ---
	personasCmd = &cobra.Command{
		Use:   "personas",
		Short: "Manage and talk to personas",
	}
	personaListCmd = &cobra.Command{
		Use:   "list",
		Short: "List all personas",
		RunE:  runPersonaList, // Defined in cmd_personas.go
	}
	personaShowCmd = &cobra.Command{
		Use:   "show [id]",
		Short: "Show a persona's definition and attributes",
		Args:  cobra.ExactArgs(1),
		RunE:  runPersonaShow, // Defined in cmd_personas.go
	}
	personaCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a new persona",
		RunE:  runPersonaCreate, // Defined in cmd_personas.go
	}
	personaChatCmd = &cobra.Command{
		Use:   "chat [id]",
		Short: "Start an interactive streaming conversation with a persona",
		Args:  cobra.ExactArgs(1),
		RunE:  runPersonaChat, // Defined in cmd_personas.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(),
		"Path to the CLI config file")
	rootCmd.PersistentFlags().StringVar(&flagAPIBase, "api-base", "",
		"Base URL of the Gaia API (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "",
		"API key sent as a bearer token (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0,
		"Request timeout in seconds for non-streaming calls")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "",
		"Log level: debug, info, warn, error")

	for _, cmd := range []*cobra.Command{askCmd, chatCmd} {
		cmd.Flags().StringVarP(&flagModel, "model", "m", "",
			"Model id to use (overrides config)")
		cmd.Flags().Float64Var(&flagTemperature, "temperature", 0,
			fmt.Sprintf("Sampling temperature (default %v)", gaia.DefaultTemperature))
		cmd.Flags().IntVar(&flagMaxTokens, "max-tokens", 0,
			fmt.Sprintf("Maximum reply tokens (default %d)", gaia.DefaultMaxTokens))
	}

	personaCreateCmd.Flags().StringVar(&personaName, "name", "", "Persona name (required)")
	personaCreateCmd.Flags().StringVar(&personaSystemPrompt, "system-prompt", "",
		"System prompt defining the persona (required)")
	personaCreateCmd.Flags().StringVar(&personaModel, "model", "", "Backing model id (required)")
	personaCreateCmd.Flags().StringToIntVar(&personaAttrs, "attr", nil,
		"Behavioral attribute on a 1-10 scale, e.g. --attr empathy=8 (repeatable)")

	personasCmd.AddCommand(personaListCmd)
	personasCmd.AddCommand(personaShowCmd)
	personasCmd.AddCommand(personaCreateCmd)
	personasCmd.AddCommand(personaChatCmd)

	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(personasCmd)
}

// buildClient constructs a gaia.Client from the effective configuration.
func buildClient() *gaia.Client {
	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cliConfig.LogLevel),
		Service: "gaia-cli",
	})
	return gaia.New(gaia.Config{
		BaseURL: cliConfig.APIBase,
		APIKey:  cliConfig.APIKey,
		Timeout: time.Duration(cliConfig.TimeoutSeconds) * time.Second,
		Logger:  logger,
	})
}
