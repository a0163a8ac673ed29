package study

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mitochondria() Question {
	return Question{
		Kind:          KindMultipleChoice,
		Question:      "What is the powerhouse of the cell?",
		Options:       []string{"A) Nucleus", "B) Mitochondria", "C) Ribosome", "D) Golgi"},
		CorrectAnswer: "B",
	}
}

func TestEmptyArtifactKeepsBothFields(t *testing.T) {
	a := Empty()
	assert.True(t, a.IsEmpty())
	require.NotNil(t, a.Questions)

	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"","questions":[]}`, string(b))
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"multiple_choice": KindMultipleChoice,
		" Short_Answer ":  KindShortAnswer,
		"analytical":      KindAnalytical,
	}
	for in, want := range cases {
		got, ok := ParseKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	_, ok := ParseKind("true_false")
	assert.False(t, ok)
}

func TestOptionLabel(t *testing.T) {
	cases := map[string]string{
		"A) Nucleus":   "A",
		"b. Ribosome":  "B",
		"(C) Golgi":    "C",
		"D: Lysosome":  "D",
		"Mitochondria": "",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, OptionLabel(in), in)
	}
}

func TestQuestionValidate(t *testing.T) {
	assert.NoError(t, mitochondria().Validate())

	lower := mitochondria()
	lower.CorrectAnswer = "b"
	assert.NoError(t, lower.Validate())

	three := mitochondria()
	three.Options = three.Options[:3]
	assert.ErrorIs(t, three.Validate(), ErrOptionCount)

	wrong := mitochondria()
	wrong.CorrectAnswer = "E"
	assert.ErrorIs(t, wrong.Validate(), ErrAnswerNotInOptions)

	blank := Question{Kind: KindShortAnswer, Question: "  "}
	assert.ErrorIs(t, blank.Validate(), ErrEmptyQuestion)

	short := Question{Kind: KindAnalytical, Question: "Why do cells divide?"}
	assert.NoError(t, short.Validate())
}

func TestArtifactValidateReportsByPosition(t *testing.T) {
	bad := mitochondria()
	bad.CorrectAnswer = "Z"
	a := Artifact{
		Summary:   "Cells are...",
		Questions: []Question{mitochondria(), bad},
	}

	problems := a.Validate()
	require.Len(t, problems, 1)
	assert.ErrorIs(t, problems[1], ErrAnswerNotInOptions)
}
