package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emandor/studyhelp_service/internal/study"
	"github.com/emandor/studyhelp_service/internal/studyguide"
	"github.com/emandor/studyhelp_service/internal/telemetry"
)

var batchFlags struct {
	provider string
	outDir   string
	parallel int
}

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Generate one study guide per input file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchFlags.provider, "provider", "", "Provider id used for every file")
	f.StringVar(&batchFlags.outDir, "out-dir", ".", "Directory for the exported guides")
	f.IntVar(&batchFlags.parallel, "parallel", 2, "Files processed at once")
}

type batchResult struct {
	file, out string
	questions int
	msg       string
}

func runBatch(cmd *cobra.Command, files []string) error {
	ctx := cmd.Context()
	svc, cfg := newService(ctx)
	provider := pickProvider(batchFlags.provider, cfg.DefaultProvider, svc)
	log := telemetry.L()

	if err := os.MkdirAll(batchFlags.outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", batchFlags.outDir, err)
	}

	results := make([]batchResult, len(files))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(batchFlags.parallel, 1))
	for i, file := range files {
		g.Go(func() error {
			r := batchResult{file: file}
			defer func() {
				mu.Lock()
				results[i] = r
				mu.Unlock()
			}()

			content, err := loadMaterial(gCtx, svc, file)
			if err != nil {
				r.msg = studyguide.UserMessage(err)
				return nil
			}
			a, err := svc.Generate(gCtx, content, provider)
			if err != nil {
				r.msg = studyguide.UserMessage(err)
				return nil
			}

			r.out = filepath.Join(batchFlags.outDir, guideName(file))
			r.questions = len(a.Questions)
			if err := os.WriteFile(r.out, []byte(study.Export(a)), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", r.out, err)
			}
			log.Info().Str("file", file).Str("out", r.out).Msg("batch_file_done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.msg != "" {
			failed++
			fmt.Fprintf(out, "FAIL %s: %s\n", r.file, r.msg)
			continue
		}
		fmt.Fprintf(out, "OK   %s -> %s (%d questions)\n", r.file, r.out, r.questions)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
