package study

import (
	"strconv"
	"strings"
)

// Export renders the artifact as the downloadable plain-text study guide.
// The output depends only on a, so equal artifacts export to equal bytes.
func Export(a Artifact) string {
	var b strings.Builder
	b.WriteString("# Study Summary\n\n")
	b.WriteString(a.Summary)
	b.WriteString("\n\n# Practice Questions\n\n")

	for i, q := range a.Questions {
		b.WriteString("\n## Question ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(q.Question)
		b.WriteByte('\n')

		if q.Kind == KindMultipleChoice && len(q.Options) > 0 {
			for _, opt := range q.Options {
				b.WriteString(opt)
				b.WriteByte('\n')
			}
			if q.CorrectAnswer != "" {
				b.WriteString("\n**Correct Answer:** ")
				b.WriteString(q.CorrectAnswer)
				b.WriteByte('\n')
			}
			continue
		}
		if q.SampleAnswer != "" {
			b.WriteString("\n**Sample Answer:** ")
			b.WriteString(q.SampleAnswer)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ExportFilename is the name offered for the downloaded study guide.
const ExportFilename = "study_guide.txt"
