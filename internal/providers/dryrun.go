package providers

import (
	"strings"

	"github.com/emandor/studyhelp_service/internal/telemetry"
)

const dryRunReply = `{"summary":"Simulated summary of the study material.",` +
	`"questions":[` +
	`{"type":"multiple_choice","question":"Simulated multiple choice question?",` +
	`"options":["A) First","B) Second","C) Third","D) Fourth"],"correct_answer":"A"},` +
	`{"type":"short_answer","question":"Simulated short answer question?","sample_answer":"Simulated answer."},` +
	`{"type":"analytical","question":"Simulated analytical question?","sample_answer":"Simulated reasoning."}]}`

// dryRun answers without calling the provider (PROVIDER_DRY_RUN).
func dryRun(name SourceName, p Prompt) Reply {
	log := telemetry.L().With().Str("provider", string(name)).Logger()
	log.Info().Msg("provider_dry_run")
	return Reply{
		Text:      dryRunReply,
		LatencyMs: 1,
		TokenUsage: map[string]any{
			"prompt_tokens":     len(strings.Fields(p.System + " " + p.User)),
			"completion_tokens": len(strings.Fields(dryRunReply)),
		},
	}
}
