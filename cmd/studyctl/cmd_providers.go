package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List providers that have a credential configured",
	RunE:  runProviders,
}

func runProviders(cmd *cobra.Command, _ []string) error {
	svc, _ := newService(cmd.Context())
	out := cmd.OutOrStdout()
	names := svc.Providers()
	if len(names) == 0 {
		fmt.Fprintln(out, "No providers configured. Set GROQ_API_KEY, ANTHROPIC_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY.")
		return nil
	}
	for _, n := range names {
		fmt.Fprintf(out, "%-8s %s\n", n, n.DisplayName())
	}
	return nil
}
