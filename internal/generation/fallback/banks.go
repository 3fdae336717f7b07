package fallback

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phrazzld/lms-api/internal/generation"
)

//go:embed banks.yaml
var banksYAML []byte

type yamlChoice struct {
	Letter string `yaml:"letter"`
	Text   string `yaml:"text"`
}

type yamlQuestion struct {
	Text         string       `yaml:"text"`
	Choices      []yamlChoice `yaml:"choices"`
	Correct      string       `yaml:"correct"`
	Explanation  string       `yaml:"explanation"`
	SampleAnswer string       `yaml:"sample_answer"`
}

// Bank is a read-only set of demo questions keyed by type and category.
type Bank map[generation.QuestionType]map[Category][]generation.ParsedQuestion

var defaultBank = mustLoadBank(banksYAML)

// DefaultBank returns the embedded question bank.
func DefaultBank() Bank {
	return defaultBank
}

func mustLoadBank(data []byte) Bank {
	bank, err := LoadBank(data)
	if err != nil {
		panic(fmt.Sprintf("fallback: embedded bank: %v", err))
	}
	return bank
}

// LoadBank decodes a YAML question bank. Each record gets its 1-based bank
// position as Order, and is checked against the same structural rules the
// response parser applies.
func LoadBank(data []byte) (Bank, error) {
	var raw map[generation.QuestionType]map[Category][]yamlQuestion
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	bank := make(Bank, len(raw))
	for qt, categories := range raw {
		if !qt.Valid() {
			return nil, fmt.Errorf("unknown question type %q", qt)
		}
		bank[qt] = make(map[Category][]generation.ParsedQuestion, len(categories))
		for category, records := range categories {
			questions := make([]generation.ParsedQuestion, 0, len(records))
			for i, r := range records {
				q, err := r.toQuestion(qt, i+1)
				if err != nil {
					return nil, fmt.Errorf("%s/%s #%d: %w", qt, category, i+1, err)
				}
				questions = append(questions, q)
			}
			bank[qt][category] = questions
		}
	}
	return bank, nil
}

func (r yamlQuestion) toQuestion(qt generation.QuestionType, order int) (generation.ParsedQuestion, error) {
	if strings.TrimSpace(r.Text) == "" {
		return generation.ParsedQuestion{}, fmt.Errorf("question text is empty")
	}

	q := generation.ParsedQuestion{Order: order, Type: qt, Text: r.Text}
	switch qt {
	case generation.MultipleChoice:
		if len(r.Choices) == 0 || len(r.Choices) > generation.MaxChoicesPerBlock {
			return q, fmt.Errorf("want 1-%d choices, got %d", generation.MaxChoicesPerBlock, len(r.Choices))
		}
		for _, c := range r.Choices {
			if len(c.Letter) != 1 || !strings.Contains(generation.ChoiceLetters, c.Letter) {
				return q, fmt.Errorf("invalid choice letter %q", c.Letter)
			}
			q.Choices = append(q.Choices, generation.Choice{Letter: c.Letter, Text: c.Text})
		}
		q.CorrectAnswer = generation.LetterAnswer(r.Correct)
		q.Explanation = r.Explanation
	case generation.TrueFalse:
		q.CorrectAnswer = generation.BoolAnswer(strings.EqualFold(r.Correct, "true"))
		q.Explanation = r.Explanation
	case generation.ShortAnswer:
		q.SampleAnswer = r.SampleAnswer
	}
	return q, nil
}

// Select returns up to n questions of type qt for the category, in bank
// order. It never pads: fewer questions are returned when the bank is short.
// A category with no records for qt falls back to DefaultCategory.
func (b Bank) Select(qt generation.QuestionType, category Category, n int) []generation.ParsedQuestion {
	byCategory := b[qt]
	records, ok := byCategory[category]
	if !ok {
		records = byCategory[DefaultCategory]
	}
	if n > len(records) {
		n = len(records)
	}
	if n <= 0 {
		return []generation.ParsedQuestion{}
	}

	out := make([]generation.ParsedQuestion, n)
	for i := range out {
		out[i] = cloneQuestion(records[i])
	}
	return out
}

// cloneQuestion copies the slices and pointers of a bank record so callers
// cannot mutate shared state.
func cloneQuestion(q generation.ParsedQuestion) generation.ParsedQuestion {
	if q.Choices != nil {
		q.Choices = append([]generation.Choice(nil), q.Choices...)
	}
	if q.CorrectAnswer != nil {
		a := *q.CorrectAnswer
		if a.Truth != nil {
			v := *a.Truth
			a.Truth = &v
		}
		q.CorrectAnswer = &a
	}
	return q
}
