package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/emandor/studyhelp_service/internal/study"
	"github.com/emandor/studyhelp_service/internal/telemetry"
)

// ErrStructural means a reply is not the JSON object the prompt asked for.
// It never leaves Normalize.
var ErrStructural = errors.New("reply is not a structured study artifact")

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// Normalize turns a raw provider reply into an artifact.
// Order: fenced json block -> strict parse -> paragraph fallback.
// It always returns a well-formed artifact.
func Normalize(raw string) study.Artifact {
	candidate := raw
	if s, ok := ExtractFenced(raw); ok {
		candidate = s
	}

	a, err := ParseStrict(candidate)
	if err == nil {
		logContractViolations(a)
		return a
	}

	log := telemetry.L()
	log.Debug().Err(err).Int("raw_len", len(raw)).Msg("normalize_fallback")
	return ParseFallback(raw)
}

// ExtractFenced returns the text between the first "```json" and the next
// "```". An unclosed fence runs to the end of raw.
func ExtractFenced(raw string) (string, bool) {
	start := strings.Index(raw, fenceOpen)
	if start < 0 {
		return "", false
	}
	start += len(fenceOpen)
	end := strings.Index(raw[start:], fenceClose)
	if end < 0 {
		return raw[start:], true
	}
	return raw[start : start+end], true
}

// ParseStrict decodes a JSON object with a "summary" string and a
// "questions" array of objects tagged by "type". Missing attributes stay at
// their zero value; anything else that does not fit is ErrStructural.
func ParseStrict(s string) (study.Artifact, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return study.Artifact{}, fmt.Errorf("%w: %v", ErrStructural, err)
	}
	if env == nil {
		return study.Artifact{}, fmt.Errorf("%w: null document", ErrStructural)
	}

	out := study.Empty()
	if raw, ok := env["summary"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &out.Summary); err != nil {
			return study.Artifact{}, fmt.Errorf("%w: summary is not a string", ErrStructural)
		}
	}

	if raw, ok := env["questions"]; ok && !isNull(raw) {
		var items []map[string]any
		if err := json.Unmarshal(raw, &items); err != nil {
			return study.Artifact{}, fmt.Errorf("%w: questions is not an array of objects", ErrStructural)
		}
		for i, m := range items {
			q, err := questionFrom(m)
			if err != nil {
				return study.Artifact{}, fmt.Errorf("%w: question %d: %v", ErrStructural, i, err)
			}
			out.Questions = append(out.Questions, q)
		}
	}
	return out, nil
}

func questionFrom(m map[string]any) (study.Question, error) {
	if m == nil {
		return study.Question{}, errors.New("not an object")
	}
	t, ok := m["type"].(string)
	if !ok {
		return study.Question{}, errors.New("missing type")
	}
	kind, ok := study.ParseKind(t)
	if !ok {
		return study.Question{}, fmt.Errorf("unknown type %q", t)
	}

	q := study.Question{Kind: kind}
	if v, ok := m["question"]; ok {
		q.Question = str(v)
	}
	if v, ok := m["options"]; ok {
		if list, isList := v.([]any); isList {
			for _, it := range list {
				q.Options = append(q.Options, str(it))
			}
		}
	}
	if v, ok := m["correct_answer"]; ok {
		q.CorrectAnswer = str(v)
	}
	if v, ok := m["sample_answer"]; ok {
		q.SampleAnswer = str(v)
	}
	return q, nil
}

// ParseFallback recovers an artifact from free text: the first blank-line
// separated block is the summary and every later non-blank block becomes a
// short answer question.
func ParseFallback(raw string) study.Artifact {
	parts := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n\n")

	out := study.Empty()
	out.Summary = strings.TrimSpace(parts[0])
	if out.Summary == "" {
		out.Summary = study.SummaryNotAvailable
	}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out.Questions = append(out.Questions, study.Question{
			Kind:         study.KindShortAnswer,
			Question:     p,
			SampleAnswer: study.AnswerNotProvided,
		})
	}
	return out
}

func logContractViolations(a study.Artifact) {
	problems := a.Validate()
	if len(problems) == 0 {
		return
	}
	log := telemetry.L()
	for i, err := range problems {
		log.Warn().Int("question", i).Err(err).Msg("question_contract_violation")
	}
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "True"
		}
		return "False"
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
