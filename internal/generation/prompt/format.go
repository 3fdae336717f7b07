package prompt

import (
	"strings"

	"github.com/phrazzld/lms-api/internal/generation"
)

// FormatQuestions renders questions in the same block grammar the quiz prompts
// request, so the output can be fed back through the parser. Empty optional
// fields are omitted.
func FormatQuestions(questions []generation.ParsedQuestion) string {
	blocks := make([]string, 0, len(questions))
	for _, q := range questions {
		blocks = append(blocks, formatQuestion(q))
	}
	return strings.Join(blocks, "\n"+generation.BlockDelimiter+"\n")
}

func formatQuestion(q generation.ParsedQuestion) string {
	var lines []string
	lines = append(lines, generation.PrefixQuestion+" "+q.Text)

	switch q.Type {
	case generation.ShortAnswer:
		if q.SampleAnswer != "" {
			lines = append(lines, generation.PrefixSampleAnswer+" "+q.SampleAnswer)
		}
		return strings.Join(lines, "\n")
	case generation.MultipleChoice:
		for _, c := range q.Choices {
			if c.Letter == "" {
				continue
			}
			lines = append(lines, generation.ChoicePrefix(c.Letter[0])+" "+c.Text)
		}
	}

	if q.CorrectAnswer != nil {
		lines = append(lines, generation.PrefixCorrect+" "+q.CorrectAnswer.String())
	}
	if q.Explanation != "" {
		lines = append(lines, generation.PrefixExplanation+" "+q.Explanation)
	}
	return strings.Join(lines, "\n")
}
