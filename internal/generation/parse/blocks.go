package parse

import (
	"strings"

	"github.com/phrazzld/lms-api/internal/generation"
)

// fields collects prefixed values from a block. The first line carrying a
// given prefix wins; later duplicates are ignored.
type fields struct {
	values  map[string]string
	choices []generation.Choice
	seen    map[byte]bool
}

func scan(lines []string, prefixes []string, withChoices bool) fields {
	f := fields{values: make(map[string]string), seen: make(map[byte]bool)}

	for _, line := range lines {
		if withChoices {
			if letter, text, ok := choiceLine(line); ok {
				if !f.seen[letter] {
					f.seen[letter] = true
					f.choices = append(f.choices, generation.Choice{Letter: string(letter), Text: text})
				}
				continue
			}
		}
		for _, prefix := range prefixes {
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			if _, dup := f.values[prefix]; !dup {
				f.values[prefix] = strings.TrimSpace(strings.TrimPrefix(line, prefix))
			}
			break
		}
	}
	return f
}

// choiceLine recognizes "A) text" through "D) text".
func choiceLine(line string) (byte, string, bool) {
	for i := 0; i < len(generation.ChoiceLetters); i++ {
		letter := generation.ChoiceLetters[i]
		prefix := generation.ChoicePrefix(letter)
		if strings.HasPrefix(line, prefix) {
			return letter, strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return 0, "", false
}

func parseMultipleChoice(lines []string, order int) (generation.ParsedQuestion, bool) {
	f := scan(lines, []string{
		generation.PrefixQuestion,
		generation.PrefixCorrect,
		generation.PrefixExplanation,
	}, true)

	text := f.values[generation.PrefixQuestion]
	if text == "" || len(f.choices) == 0 {
		return generation.ParsedQuestion{}, false
	}

	q := generation.ParsedQuestion{
		Order:       order,
		Type:        generation.MultipleChoice,
		Text:        text,
		Choices:     f.choices,
		Explanation: f.values[generation.PrefixExplanation],
	}
	if correct := f.values[generation.PrefixCorrect]; correct != "" {
		q.CorrectAnswer = generation.LetterAnswer(correct)
	}
	return q, true
}

func parseTrueFalse(lines []string, order int) (generation.ParsedQuestion, bool) {
	f := scan(lines, []string{
		generation.PrefixQuestion,
		generation.PrefixCorrect,
		generation.PrefixExplanation,
	}, false)

	text := f.values[generation.PrefixQuestion]
	if text == "" {
		return generation.ParsedQuestion{}, false
	}

	return generation.ParsedQuestion{
		Order:         order,
		Type:          generation.TrueFalse,
		Text:          text,
		CorrectAnswer: generation.BoolAnswer(strings.EqualFold(f.values[generation.PrefixCorrect], "true")),
		Explanation:   f.values[generation.PrefixExplanation],
	}, true
}

func parseShortAnswer(lines []string, order int) (generation.ParsedQuestion, bool) {
	f := scan(lines, []string{
		generation.PrefixQuestion,
		generation.PrefixSampleAnswer,
	}, false)

	text := f.values[generation.PrefixQuestion]
	if text == "" {
		return generation.ParsedQuestion{}, false
	}

	return generation.ParsedQuestion{
		Order:        order,
		Type:         generation.ShortAnswer,
		Text:         text,
		SampleAnswer: f.values[generation.PrefixSampleAnswer],
	}, true
}
