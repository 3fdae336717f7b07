package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies the type of content being generated.
type Kind string

// Supported content kinds.
const (
	KindLessonPlan  Kind = "lesson_plan"
	KindQuiz        Kind = "quiz"
	KindRubric      Kind = "rubric"
	KindExplanation Kind = "explanation"
	KindSyllabus    Kind = "syllabus"
)

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindLessonPlan, KindQuiz, KindRubric, KindExplanation, KindSyllabus:
		return true
	}
	return false
}

// Operation returns the rate-limit operation key for the kind. Each kind is
// throttled independently.
func (k Kind) Operation() string {
	switch k {
	case KindLessonPlan:
		return "generate_lesson_plan"
	case KindQuiz:
		return "generate_quiz_questions"
	case KindRubric:
		return "generate_assignment_rubric"
	case KindExplanation:
		return "explain_concept"
	case KindSyllabus:
		return "generate_course_syllabus"
	}
	return "generate_" + string(k)
}

// QuestionType is the format of a quiz question.
type QuestionType string

// Supported question types.
const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
)

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, TrueFalse, ShortAnswer:
		return true
	}
	return false
}

// Request defaults.
const (
	DefaultNumQuestions = 5
	DefaultGradeLevel   = "college"
)

// Request describes a single generation call. It is created per call and
// discarded once the Envelope has been returned.
//
// Topic carries the main free-text subject for every kind: the lesson topic,
// the quiz topic, the assignment description (rubric), the concept
// (explanation) or the course title (syllabus).
type Request struct {
	Kind  Kind
	Topic string

	// Lesson plan and syllabus
	Duration   string
	Difficulty string

	// Quiz
	NumQuestions int
	QuestionType QuestionType

	// Rubric
	GradingCriteria string

	// Explanation
	GradeLevel string

	// Syllabus, comma separated
	TopicsList string
}

// WithDefaults returns a copy of r with empty optional fields filled in.
func (r Request) WithDefaults() Request {
	if r.Kind == KindQuiz {
		if r.NumQuestions <= 0 {
			r.NumQuestions = DefaultNumQuestions
		}
		if r.QuestionType == "" {
			r.QuestionType = MultipleChoice
		}
	}
	if r.Kind == KindExplanation && strings.TrimSpace(r.GradeLevel) == "" {
		r.GradeLevel = DefaultGradeLevel
	}
	return r
}

// Validate checks the structural fields of the request. Empty free-text
// fields are allowed; templates render them as blank interpolations.
func (r Request) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, r.Kind)
	}
	if r.Kind == KindQuiz && !r.QuestionType.Valid() {
		return fmt.Errorf("unsupported question type %q", r.QuestionType)
	}
	return nil
}

// Choice is one lettered option of a multiple choice question.
type Choice struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Answer holds the correct answer of a question. Multiple choice answers are a
// letter; true/false answers are a boolean. It marshals to a JSON string or bool
// accordingly.
type Answer struct {
	Letter string
	Truth  *bool
}

// LetterAnswer returns a multiple choice answer.
func LetterAnswer(letter string) *Answer {
	return &Answer{Letter: letter}
}

// BoolAnswer returns a true/false answer.
func BoolAnswer(v bool) *Answer {
	return &Answer{Truth: &v}
}

// IsBool reports whether the answer is a true/false value.
func (a Answer) IsBool() bool {
	return a.Truth != nil
}

// String renders the answer the way it appears after a CORRECT: prefix.
func (a Answer) String() string {
	if a.Truth != nil {
		if *a.Truth {
			return "True"
		}
		return "False"
	}
	return a.Letter
}

// MarshalJSON implements json.Marshaler.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Truth != nil {
		return json.Marshal(*a.Truth)
	}
	return json.Marshal(a.Letter)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		a.Truth = &b
		a.Letter = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("answer must be a string or boolean: %w", err)
	}
	a.Letter = s
	a.Truth = nil
	return nil
}

// ParsedQuestion is a structured quiz question recovered from model output or
// taken from a fallback bank.
type ParsedQuestion struct {
	// Order is the 1-based position of the source block. It is informational
	// and may have gaps when invalid blocks were dropped.
	Order         int          `json:"order"`
	Type          QuestionType `json:"type"`
	Text          string       `json:"text"`
	Choices       []Choice     `json:"choices,omitempty"`
	CorrectAnswer *Answer      `json:"correct_answer,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
	SampleAnswer  string       `json:"sample_answer,omitempty"`
}

// Content is the payload of an Envelope. Text holds the raw model output (or
// the rendered demo content); Questions is populated for the quiz kind only.
type Content struct {
	Text      string           `json:"text"`
	Questions []ParsedQuestion `json:"questions,omitempty"`
}
