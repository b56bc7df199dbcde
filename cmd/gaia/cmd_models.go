// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func runListModels(cmd *cobra.Command, args []string) error {
	client := buildClient()

	models, err := client.ListModels(cmd.Context())
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Println("No models available.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROVIDER")
	for _, model := range models {
		fmt.Fprintf(w, "%s\t%s\t%s\n", model.Id, model.Name, model.Provider)
	}
	return w.Flush()
}
