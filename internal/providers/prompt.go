package providers

import (
	"strings"
)

// Prompt is the instruction sent to a model. System is empty for providers
// that get no separate system framing.
type Prompt struct {
	System string
	User   string
}

// output shape the normalizer's strict path understands
const RESPONSE_SHAPE = `Please format your response as JSON with the following structure:
{
    "summary": "Your summary here",
    "questions": [
        {
            "type": "multiple_choice",
            "question": "Question text",
            "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
            "correct_answer": "A"
        },
        {
            "type": "short_answer",
            "question": "Question text",
            "sample_answer": "Brief sample answer"
        },
        {
            "type": "analytical",
            "question": "Question text",
            "sample_answer": "Brief sample answer"
        }
    ]
}
The "correct_answer" must be the letter of one of the four options.`

const studyTask = `You are an AI study assistant helping high school students. Based on the following study material, please provide:

1. A concise summary (2-3 paragraphs) highlighting the key concepts and main points
2. 4-5 practice questions that test understanding of the material. Include a mix of:
   - Multiple choice questions (with 4 options each, mark the correct answer)
   - Short answer questions
   - One analytical/critical thinking question
`

var systemFraming = map[SourceName]string{
	SourceGroq:   "You are an expert AI study assistant. Always respond with valid JSON.",
	SourceOpenAI: "You are an AI study assistant helping high school students. Always respond with valid JSON.",
	SourceGemini: "You are an expert AI study assistant. Always respond with valid JSON.",
}

// BuildPrompt embeds the study material into the generation instruction.
// source only selects the system framing; the user text is the same for all.
func BuildPrompt(content string, source SourceName) Prompt {
	var b strings.Builder
	b.WriteString(studyTask)
	b.WriteString("\nStudy Material:\n")
	b.WriteString(strings.TrimSpace(content))
	b.WriteString("\n\n")
	b.WriteString(RESPONSE_SHAPE)
	b.WriteString("\n")
	return Prompt{System: systemFraming[source], User: b.String()}
}
