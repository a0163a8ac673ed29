package study

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindShortAnswer    Kind = "short_answer"
	KindAnalytical     Kind = "analytical"
)

// Placeholders used when a provider reply has to be recovered heuristically.
const (
	SummaryNotAvailable = "Summary not available"
	AnswerNotProvided   = "Answer not provided"
)

// MultipleChoiceOptions is the number of options a producer is asked for.
const MultipleChoiceOptions = 4

var (
	ErrEmptyQuestion      = errors.New("question text is empty")
	ErrOptionCount        = errors.New("multiple choice question must have 4 options")
	ErrAnswerNotInOptions = errors.New("correct answer does not label any option")
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindMultipleChoice, KindShortAnswer, KindAnalytical:
		return k, true
	}
	return "", false
}

// Question is one practice question. Options and CorrectAnswer are only
// meaningful for multiple choice; SampleAnswer for the other kinds.
type Question struct {
	Kind          Kind     `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	SampleAnswer  string   `json:"sample_answer,omitempty"`
}

// Validate checks the producer contract. Nothing in the pipeline rejects a
// question that fails it.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return ErrEmptyQuestion
	}
	if q.Kind != KindMultipleChoice {
		return nil
	}
	if len(q.Options) != MultipleChoiceOptions {
		return fmt.Errorf("%w: got %d", ErrOptionCount, len(q.Options))
	}
	for _, opt := range q.Options {
		if OptionLabel(opt) == strings.ToUpper(strings.TrimSpace(q.CorrectAnswer)) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrAnswerNotInOptions, q.CorrectAnswer)
}

// OptionLabel returns the leading label of an option such as "B) Mitochondria"
// or "b. Mitochondria", upper-cased. It returns "" when there is none.
func OptionLabel(opt string) string {
	opt = strings.TrimSpace(opt)
	if opt == "" {
		return ""
	}
	end := strings.IndexAny(opt, ").:")
	if end <= 0 || end > 2 {
		return ""
	}
	label := strings.TrimLeft(opt[:end], "(")
	if label == "" {
		return ""
	}
	return strings.ToUpper(label)
}

// Artifact is the canonical generation result. Summary and Questions are
// always set; an empty artifact has "" and a zero-length, non-nil slice.
type Artifact struct {
	Summary   string     `json:"summary"`
	Questions []Question `json:"questions"`
}

func Empty() Artifact {
	return Artifact{Summary: "", Questions: []Question{}}
}

func (a Artifact) IsEmpty() bool {
	return a.Summary == "" && len(a.Questions) == 0
}

// Validate returns the contract violation of every question, keyed by its
// zero-based position.
func (a Artifact) Validate() map[int]error {
	problems := map[int]error{}
	for i, q := range a.Questions {
		if err := q.Validate(); err != nil {
			problems[i] = err
		}
	}
	return problems
}
