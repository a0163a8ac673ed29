package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emandor/studyhelp_service/internal/study"
	"github.com/emandor/studyhelp_service/internal/studyguide"
)

var generateFlags struct {
	provider string
	file     string
	out      string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a study guide from one text or PDF file",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.provider, "provider", "", "Provider id (groq, claude, openai, gemini); defaults to DEFAULT_PROVIDER or the first configured")
	f.StringVar(&generateFlags.file, "file", "", "Study material: a .pdf or a plain text file (required)")
	f.StringVar(&generateFlags.out, "out", "", "Write the exported study guide here instead of stdout")

	_ = generateCmd.MarkFlagRequired("file")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	svc, cfg := newService(ctx)

	content, err := loadMaterial(ctx, svc, generateFlags.file)
	if err != nil {
		return errors.New(studyguide.UserMessage(err))
	}

	provider := pickProvider(generateFlags.provider, cfg.DefaultProvider, svc)
	a, err := svc.Generate(ctx, content, provider)
	if err != nil {
		return errors.New(studyguide.UserMessage(err))
	}

	text := study.Export(a)
	if generateFlags.out == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	if err := os.WriteFile(generateFlags.out, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", generateFlags.out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d questions)\n", generateFlags.out, len(a.Questions))
	return nil
}
