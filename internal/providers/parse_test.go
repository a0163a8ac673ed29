package providers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emandor/studyhelp_service/internal/study"
)

const cellsReply = `{"summary":"Cells are...","questions":[{"type":"multiple_choice","question":"What is the powerhouse of the cell?","options":["A) Nucleus","B) Mitochondria","C) Ribosome","D) Golgi"],"correct_answer":"B"}]}`

func cellsArtifact() study.Artifact {
	return study.Artifact{
		Summary: "Cells are...",
		Questions: []study.Question{{
			Kind:          study.KindMultipleChoice,
			Question:      "What is the powerhouse of the cell?",
			Options:       []string{"A) Nucleus", "B) Mitochondria", "C) Ribosome", "D) Golgi"},
			CorrectAnswer: "B",
		}},
	}
}

func TestNormalizeStrictReply(t *testing.T) {
	got := Normalize(cellsReply)
	if diff := cmp.Diff(cellsArtifact(), got); diff != "" {
		t.Fatalf("artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeFencedReplyWithProse(t *testing.T) {
	raw := "Sure! Here is your study guide:\n\n```json\n" + cellsReply + "\n```\n\nGood luck with your exam."
	if diff := cmp.Diff(cellsArtifact(), Normalize(raw)); diff != "" {
		t.Fatalf("artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFenced(t *testing.T) {
	cases := []struct {
		name, raw, want string
		ok              bool
	}{
		{"none", `{"summary":"x"}`, "", false},
		{"closed", "intro ```json{\"a\":1}``` outro", `{"a":1}`, true},
		{"first block wins", "```json A ``` mid ```json B ```", " A ", true},
		{"unclosed", "```json\n{\"a\":1}", "\n{\"a\":1}", true},
		{"untagged fence ignored", "```\n{\"a\":1}\n```", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractFenced(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseStrictDefaultsMissingAttributes(t *testing.T) {
	a, err := ParseStrict(`{"summary":"S","questions":[{"type":"short_answer","question":"Why?"},{"type":"multiple_choice","question":"Pick","correct_answer":1}]}`)
	require.NoError(t, err)

	want := study.Artifact{
		Summary: "S",
		Questions: []study.Question{
			{Kind: study.KindShortAnswer, Question: "Why?"},
			{Kind: study.KindMultipleChoice, Question: "Pick", CorrectAnswer: "1"},
		},
	}
	assert.Equal(t, want, a)
}

func TestParseStrictMissingTopLevelFields(t *testing.T) {
	a, err := ParseStrict(`{"questions":null}`)
	require.NoError(t, err)
	assert.Equal(t, study.Empty(), a)
	assert.NotNil(t, a.Questions)
}

func TestParseStrictStructuralFailures(t *testing.T) {
	for name, raw := range map[string]string{
		"prose":            "Cells are small.",
		"null":             "null",
		"array":            `[{"summary":"x"}]`,
		"summary number":   `{"summary":42,"questions":[]}`,
		"questions object": `{"summary":"x","questions":{"type":"short_answer"}}`,
		"question string":  `{"summary":"x","questions":["what?"]}`,
		"missing type":     `{"summary":"x","questions":[{"question":"what?"}]}`,
		"unknown type":     `{"summary":"x","questions":[{"type":"true_false","question":"what?"}]}`,
		"trailing text":    `{"summary":"x"} and more`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseStrict(raw)
			assert.ErrorIs(t, err, ErrStructural)
		})
	}
}

func TestNormalizeProseFallsBack(t *testing.T) {
	raw := "Cells are the basic unit of life.\n\nWhat organelle produces energy?"
	want := study.Artifact{
		Summary: "Cells are the basic unit of life.",
		Questions: []study.Question{{
			Kind:         study.KindShortAnswer,
			Question:     "What organelle produces energy?",
			SampleAnswer: study.AnswerNotProvided,
		}},
	}
	assert.Equal(t, want, Normalize(raw))
}

func TestNormalizeMalformedJSONFallsBackOnWholeReply(t *testing.T) {
	raw := "Here you go:\n\n```json\n{\"summary\": \"Cells\", \"questions\": [\n```\n\nHope this helps"
	a := Normalize(raw)
	assert.Equal(t, "Here you go:", a.Summary)
	require.Len(t, a.Questions, 2)
	assert.Equal(t, "```json\n{\"summary\": \"Cells\", \"questions\": [\n```", a.Questions[0].Question)
	assert.Equal(t, "Hope this helps", a.Questions[1].Question)
}

func TestParseFallback(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		summary string
		qs      []string
	}{
		{"empty", "", study.SummaryNotAvailable, nil},
		{"blank first block", "\n\nOnly a question?", study.SummaryNotAvailable, []string{"Only a question?"}},
		{"single block", "Just a summary.", "Just a summary.", nil},
		{"skips blank blocks", "Sum.\n\n\n\n  \n\nQ1\n\nQ2  ", "Sum.", []string{"Q1", "Q2"}},
		{"crlf", "Sum.\r\n\r\nQ1", "Sum.", []string{"Q1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := ParseFallback(tc.raw)
			assert.Equal(t, tc.summary, a.Summary)
			assert.NotEmpty(t, a.Summary)
			require.NotNil(t, a.Questions)
			require.Len(t, a.Questions, len(tc.qs))
			for i, q := range a.Questions {
				assert.Equal(t, study.KindShortAnswer, q.Kind)
				assert.Equal(t, tc.qs[i], q.Question)
				assert.Equal(t, study.AnswerNotProvided, q.SampleAnswer)
			}
		})
	}
}

func TestNormalizeKeepsContractViolations(t *testing.T) {
	a := Normalize(`{"summary":"S","questions":[{"type":"multiple_choice","question":"Q","options":["A) x","B) y"],"correct_answer":"C"}]}`)
	require.Len(t, a.Questions, 1)
	assert.Equal(t, []string{"A) x", "B) y"}, a.Questions[0].Options)
	assert.Error(t, a.Questions[0].Validate())
}
